package controllers

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/commands"
	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
)

// PublishController handles the "publish" subcommand: stage, commit, and
// push in one step.
type PublishController struct {
	command  commands.Publish
	settings repositories.SettingsRepository
}

// NewPublishController creates a new PublishController.
func NewPublishController(
	command commands.Publish,
	settings repositories.SettingsRepository,
) *PublishController {
	return &PublishController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the publish controller.
func (it *PublishController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "publish <id|name>",
		Short: "Stage, commit and push a repository's changes",
		Long: `Stage all changes, commit them, and push to the upstream.

Without -m a commit message is generated from the set of changed files.
When the push fails after the commit succeeded, the result says so: the
change is safe in local history even though the remote is not updated.`,
	}
}

// AddFlags registers the controller-specific flags.
func (it *PublishController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Commit message (default: generated)")
}

// Execute runs the publish sequence and reports the structured outcome.
func (it *PublishController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("A repository id or name is required")
		return
	}
	repo, ok := it.settings.FindRepository(args[0])
	if !ok {
		logger.Errorf("No managed repository matches %q", args[0])
		return
	}

	message, _ := cmd.Flags().GetString("message")
	op := it.command.Execute(ctx, repo, message)

	if op.Succeeded() {
		logger.Infof("%s: committed and pushed (%q)", repo.Name, op.Message)
		return
	}

	var nothing *entities.NothingToCommitError
	if errors.As(op.Err, &nothing) {
		logger.Infof("%s: nothing to commit", repo.Name)
		return
	}

	if op.CommittedLocally {
		logger.Warnf("%s: committed locally, but %s failed: %v", repo.Name, op.FailedAt, op.Err)
	} else {
		logger.Errorf("%s: %s failed: %v", repo.Name, op.FailedAt, op.Err)
	}
	if op.HookOutput != "" {
		logger.Warnf("Hook output:\n%s", op.HookOutput)
	}
}
