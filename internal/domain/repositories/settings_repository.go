package repositories

import (
	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// SettingsRepository is the persisted repository list and global options.
// The core never mutates repository records implicitly; every change goes
// through an explicit call here after an operation completes.
type SettingsRepository interface {
	ListRepositories() []entities.RepositoryConfig
	GetRepository(id string) (entities.RepositoryConfig, bool)

	// FindRepository resolves an id or display name to a repository.
	FindRepository(ref string) (entities.RepositoryConfig, bool)

	AddRepository(repo entities.RepositoryConfig) error
	RemoveRepository(id string) error

	// SetFetchState marks a repository as fetching/idle while an
	// operation is in flight, leaving the other status fields alone.
	SetFetchState(id string, state entities.FetchState) error

	// UpdateFetchStatus writes back the post-fetch status fields of one
	// repository.
	UpdateFetchStatus(id string, update entities.FetchUpdate) error

	NotificationsEnabled() bool
}
