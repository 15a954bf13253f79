package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
	"github.com/zachmueller/multi-git-sub002/internal/scheduler"
)

// RemoveController handles the "remove" subcommand.
type RemoveController struct {
	settings  repositories.SettingsRepository
	scheduler *scheduler.Scheduler
}

// NewRemoveController creates a new RemoveController.
func NewRemoveController(
	settings repositories.SettingsRepository,
	sched *scheduler.Scheduler,
) *RemoveController {
	return &RemoveController{settings: settings, scheduler: sched}
}

// GetBind returns the Cobra command metadata for the remove controller.
func (it *RemoveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "remove <id|name>",
		Short: "Stop managing a repository",
		Long: `Remove a repository from the managed list.

The working tree itself is untouched; only the multigit record and its
fetch schedule are dropped. An in-flight fetch runs to completion.`,
	}
}

// Execute removes the repository.
func (it *RemoveController) Execute(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		logger.Error("A repository id or name is required")
		return
	}

	repo, ok := it.settings.FindRepository(args[0])
	if !ok {
		logger.Errorf("No managed repository matches %q", args[0])
		return
	}

	it.scheduler.UnscheduleRepository(repo.ID)
	if err := it.settings.RemoveRepository(repo.ID); err != nil {
		logger.Errorf("Failed to remove %q: %v", repo.Name, err)
		return
	}
	logger.Infof("Removed %q", repo.Name)
}
