// Package infrastructure wires the driven-side implementations (process
// runner, git CLI, settings store, notifiers) into the DIG container.
package infrastructure

import (
	"os"

	"go.uber.org/dig"

	"github.com/zachmueller/multi-git-sub002/config"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/gitcli"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/notify"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/runner"
)

// newSettingsStore locates and loads the settings file. The
// MULTIGIT_CONFIG environment variable overrides the standard search
// locations.
func newSettingsStore() (*config.Store, error) {
	path := os.Getenv("MULTIGIT_CONFIG")
	if path == "" {
		path = config.FindConfigFile()
	}
	return config.NewStore(path)
}

// newNotifier picks the webhook notifier when one is configured, the
// log-only notifier otherwise.
func newNotifier(store *config.Store) repositories.NotificationRepository {
	if url := store.Notifications().WebhookURL; url != "" {
		return notify.NewWebhookNotifier(url)
	}
	return notify.NewLogNotifier()
}

// RegisterProviders registers all infrastructure providers with the DIG
// container.
func RegisterProviders(container *dig.Container) error {
	constructors := []interface{}{
		runner.NewExecRunner,
		func(impl *runner.ExecRunner) runner.Runner { return impl },

		gitcli.NewGitRepository,
		func(impl *gitcli.GitRepository) repositories.VCSRepository { return impl },

		newSettingsStore,
		func(impl *config.Store) repositories.SettingsRepository { return impl },

		newNotifier,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	return nil
}
