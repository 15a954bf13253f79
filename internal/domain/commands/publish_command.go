package commands

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
)

// Publish is the interface for the commit+push orchestrator.
type Publish interface {
	Execute(ctx context.Context, repo entities.RepositoryConfig, message string) entities.CommitOperation
}

// PublishCommand sequences stage -> commit -> push as an explicit state
// machine. Failures are reported as a structured CommitOperation, never
// raised past this boundary, so the caller always learns which step failed
// and whether local history already advanced.
type PublishCommand struct {
	vcs repositories.VCSRepository
	log *logger.Entry
}

// NewPublishCommand creates a new PublishCommand on the given VCS layer.
func NewPublishCommand(vcs repositories.VCSRepository) *PublishCommand {
	return &PublishCommand{
		vcs: vcs,
		log: logger.WithField("component", "publish"),
	}
}

// Execute runs the full publish sequence for repo. An empty message is
// replaced with the generated suggestion. CommittedLocally becomes true
// the instant the commit lands and survives any later push failure.
func (it *PublishCommand) Execute(
	ctx context.Context,
	repo entities.RepositoryConfig,
	message string,
) entities.CommitOperation {
	op := entities.CommitOperation{
		RepositoryID: repo.ID,
		Message:      message,
		Phase:        entities.PhasePreparing,
	}

	if op.Message == "" {
		status, err := it.vcs.GetStatus(ctx, repo)
		if err != nil {
			return fail(op, entities.PhasePreparing, err)
		}
		op.Message = SuggestMessage(status)
		it.log.Debugf("Suggested message for %s: %q", repo.Name, op.Message)
	}

	op.Phase = entities.PhaseStaging
	if err := it.vcs.StageAll(ctx, repo.Path); err != nil {
		return fail(op, entities.PhaseStaging, err)
	}

	op.Phase = entities.PhaseCommitting
	if err := it.vcs.Commit(ctx, repo.Path, op.Message); err != nil {
		return fail(op, entities.PhaseCommitting, err)
	}
	op.CommittedLocally = true
	it.log.Infof("Committed locally in %s: %q", repo.Name, op.Message)

	op.Phase = entities.PhasePushing
	if err := it.vcs.Push(ctx, repo.Path, 0); err != nil {
		// The commit is safe locally even though the remote is not
		// updated; the result says so.
		return fail(op, entities.PhasePushing, err)
	}

	op.Phase = entities.PhaseSucceeded
	it.log.Infof("Pushed %s", repo.Name)
	return op
}

// fail transitions op to the failed terminal state, preserving hook output
// when a hook caused the failure.
func fail(op entities.CommitOperation, at entities.PublishPhase, err error) entities.CommitOperation {
	op.Phase = entities.PhaseFailed
	op.FailedAt = at
	op.Err = err

	var hookErr *entities.HookFailureError
	if errors.As(err, &hookErr) {
		op.HookOutput = hookErr.Output
	}
	return op
}
