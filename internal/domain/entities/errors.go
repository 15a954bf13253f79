package entities

import "fmt"

// The error taxonomy for external-tool failures. All of these are expected
// outcomes returned as values; panics are reserved for programmer errors.

// ProcessSpawnError means the external executable could not be launched at
// all (not found, permission denied).
type ProcessSpawnError struct {
	Executable string
	Err        error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Executable, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error { return e.Err }

// ProcessTimeoutError means the process exceeded its deadline and was
// killed. Partial output is preserved on the accompanying ProcessResult.
type ProcessTimeoutError struct {
	Executable string
	Timeout    string
}

func (e *ProcessTimeoutError) Error() string {
	return fmt.Sprintf("%q exceeded timeout of %s and was killed", e.Executable, e.Timeout)
}

// ValidationError reports invalid input rejected before any process spawn.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthenticationError means the remote rejected our credentials.
type AuthenticationError struct {
	Detail string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Detail
}

// NetworkError means the remote could not be reached.
type NetworkError struct {
	Detail string
}

func (e *NetworkError) Error() string {
	return "network failure: " + e.Detail
}

// NoUpstreamError means the current branch has no upstream configured.
type NoUpstreamError struct {
	Detail string
}

func (e *NoUpstreamError) Error() string {
	return "no upstream branch: " + e.Detail
}

// HookFailureError means a user hook script aborted the operation. Output
// is preserved verbatim for the caller.
type HookFailureError struct {
	Output string
}

func (e *HookFailureError) Error() string {
	return "hook rejected the operation"
}

// NothingToCommitError means a commit was requested with a clean tree. It
// is a benign short-circuit, not a failure surfaced to the end user.
type NothingToCommitError struct{}

func (e *NothingToCommitError) Error() string {
	return "nothing to commit"
}

// UnknownVCSError is the catch-all for unclassified tool failures. Detail
// is already credential-sanitized.
type UnknownVCSError struct {
	Detail string
}

func (e *UnknownVCSError) Error() string {
	return "git command failed: " + e.Detail
}
