//go:build windows

package runner

import "os/exec"

// setProcessGroup is a no-op on Windows; descendants are not grouped.
func setProcessGroup(_ *exec.Cmd) {}

// killProcessGroup kills the direct child only.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
