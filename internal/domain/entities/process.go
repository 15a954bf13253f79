package entities

import "time"

// ProcessResult captures everything observed about one external command
// invocation. It is owned by the call that produced it and never shared
// across invocations.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration

	// TimedOut is true when the process was killed because it exceeded
	// its deadline. Partial output captured up to that point is kept.
	TimedOut bool
}
