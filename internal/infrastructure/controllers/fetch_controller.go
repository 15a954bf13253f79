package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
	"github.com/zachmueller/multi-git-sub002/internal/scheduler"
)

// FetchController handles the "fetch" subcommand: fetch one repository or
// all enabled ones.
type FetchController struct {
	settings  repositories.SettingsRepository
	scheduler *scheduler.Scheduler
}

// NewFetchController creates a new FetchController.
func NewFetchController(
	settings repositories.SettingsRepository,
	sched *scheduler.Scheduler,
) *FetchController {
	return &FetchController{settings: settings, scheduler: sched}
}

// GetBind returns the Cobra command metadata for the fetch controller.
func (it *FetchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fetch [id|name]",
		Short: "Fetch a repository now, or all of them",
		Long: `Run git fetch immediately.

With an argument, fetches that repository. Without one, fetches every
enabled repository one after another; a failure in one repository never
stops the rest of the batch.`,
	}
}

// Execute runs the fetch and reports per-repository outcomes.
func (it *FetchController) Execute(_ *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) > 0 {
		repo, ok := it.settings.FindRepository(args[0])
		if !ok {
			logger.Errorf("No managed repository matches %q", args[0])
			return
		}
		report(it.scheduler.FetchRepositoryNow(ctx, repo.ID))
		return
	}

	results := it.scheduler.FetchAllNow(ctx)
	if len(results) == 0 {
		logger.Info("No enabled repositories to fetch")
		return
	}
	for _, result := range results {
		report(result)
	}
}

func report(result entities.FetchResult) {
	switch {
	case result.Err != nil:
		logger.Errorf("%s: fetch failed: %v", result.RepositoryName, result.Err)
	case !result.Started:
		logger.Warnf("%s: fetch already in progress", result.RepositoryName)
	case result.RemoteAhead > 0:
		logger.Infof("%s: fetched, %d commit(s) behind the remote", result.RepositoryName, result.RemoteAhead)
	default:
		logger.Infof("%s: fetched, up to date", result.RepositoryName)
	}
}
