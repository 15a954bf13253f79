package entities

// PublishPhase is the step of the commit+push sequence an operation is in
// or failed at.
type PublishPhase string

const (
	PhasePreparing  PublishPhase = "preparing"
	PhaseStaging    PublishPhase = "staging"
	PhaseCommitting PublishPhase = "committing"
	PhasePushing    PublishPhase = "pushing"
	PhaseSucceeded  PublishPhase = "succeeded"
	PhaseFailed     PublishPhase = "failed"
)

// CommitOperation is the ephemeral record of one user-initiated publish.
// It reports partial success: FailedAt names the step that broke, and
// CommittedLocally stays true once the commit lands even when the push
// later fails.
type CommitOperation struct {
	RepositoryID string
	Message      string
	Phase        PublishPhase

	// FailedAt is the phase that caused the transition to PhaseFailed.
	FailedAt PublishPhase
	Err      error

	// HookOutput carries verbatim hook script output when a hook
	// rejected the commit or push.
	HookOutput string

	// CommittedLocally is set the instant the commit succeeds and is
	// never reset, independent of later phases.
	CommittedLocally bool
}

// Succeeded reports whether the whole sequence completed.
func (o *CommitOperation) Succeeded() bool {
	return o.Phase == PhaseSucceeded
}
