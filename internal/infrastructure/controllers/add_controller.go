package controllers

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
)

// AddController handles the "add" subcommand: put a repository under
// management.
type AddController struct {
	vcs      repositories.VCSRepository
	settings repositories.SettingsRepository
}

// NewAddController creates a new AddController.
func NewAddController(
	vcs repositories.VCSRepository,
	settings repositories.SettingsRepository,
) *AddController {
	return &AddController{vcs: vcs, settings: settings}
}

// GetBind returns the Cobra command metadata for the add controller.
func (it *AddController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "add <path>",
		Short: "Put a local git repository under management",
		Long: `Register a local git repository for background fetching.

The path must point inside an existing git working tree; the repository
root is resolved and stored. Fetching starts the next time the daemon
runs (or immediately if one is already running and restarted).`,
	}
}

// AddFlags registers the controller-specific flags.
func (it *AddController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Display name (default: directory name)")
	cmd.Flags().Duration("interval", 0, "Fetch interval between 1m and 1h (default: 5m)")
}

// Execute registers the repository.
func (it *AddController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("A repository path is required")
		return
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		logger.Errorf("Invalid path: %v", err)
		return
	}

	root, err := it.vcs.RepositoryRoot(ctx, path)
	if err != nil {
		logger.Errorf("Cannot add %s: %v", path, err)
		return
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(root)
	}
	interval, _ := cmd.Flags().GetDuration("interval")

	repo := entities.RepositoryConfig{
		ID:            uuid.NewString(),
		Path:          root,
		Name:          name,
		Enabled:       true,
		FetchInterval: interval,
	}
	if addErr := it.settings.AddRepository(repo); addErr != nil {
		logger.Errorf("Failed to add repository: %v", addErr)
		return
	}

	logger.Infof("Added %q (%s)", name, root)
}
