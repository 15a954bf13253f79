package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// lockTimeout bounds how long a writer waits for the settings file lock.
const lockTimeout = 5 * time.Second

// Store is the file-backed settings store. It implements
// repositories.SettingsRepository. Writes are serialized through a file
// lock so a running daemon and a CLI invocation cannot corrupt the file.
type Store struct {
	path string

	mu  sync.RWMutex
	cfg *Config
}

// NewStore creates a store over the config file at path, loading its
// current contents.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Notifications returns the notification settings.
func (it *Store) Notifications() NotificationConfig {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.cfg.Notifications
}

// NotificationsEnabled reports whether notifications should be delivered.
func (it *Store) NotificationsEnabled() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.cfg.Notifications.Enabled
}

// ListRepositories returns a copy of the persisted repository list.
func (it *Store) ListRepositories() []entities.RepositoryConfig {
	it.mu.RLock()
	defer it.mu.RUnlock()

	out := make([]entities.RepositoryConfig, len(it.cfg.Repositories))
	copy(out, it.cfg.Repositories)
	return out
}

// GetRepository looks a repository up by id.
func (it *Store) GetRepository(id string) (entities.RepositoryConfig, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	for _, repo := range it.cfg.Repositories {
		if repo.ID == id {
			return repo, true
		}
	}
	return entities.RepositoryConfig{}, false
}

// FindRepository resolves an id or display name to a repository.
func (it *Store) FindRepository(ref string) (entities.RepositoryConfig, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	for _, repo := range it.cfg.Repositories {
		if repo.ID == ref || repo.Name == ref {
			return repo, true
		}
	}
	return entities.RepositoryConfig{}, false
}

// AddRepository validates and persists a new repository record.
func (it *Store) AddRepository(repo entities.RepositoryConfig) error {
	if repo.FetchInterval == 0 {
		repo.FetchInterval = DefaultFetchInterval
	}
	if err := entities.ValidateInterval(repo.FetchInterval); err != nil {
		return err
	}
	if !filepath.IsAbs(repo.Path) {
		return &entities.ValidationError{Field: "path", Reason: "must be absolute"}
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	for _, existing := range it.cfg.Repositories {
		if existing.Path == repo.Path {
			return &entities.ValidationError{
				Field:  "path",
				Reason: fmt.Sprintf("%s is already managed as %q", repo.Path, existing.Name),
			}
		}
	}

	it.cfg.Repositories = append(it.cfg.Repositories, repo)
	return it.save()
}

// RemoveRepository drops a repository record. Removing an unknown id is a
// no-op.
func (it *Store) RemoveRepository(id string) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	for i, repo := range it.cfg.Repositories {
		if repo.ID == id {
			it.cfg.Repositories = append(it.cfg.Repositories[:i], it.cfg.Repositories[i+1:]...)
			return it.save()
		}
	}
	return nil
}

// SetFetchState marks one repository's in-flight fetch state without
// touching the other status fields.
func (it *Store) SetFetchState(id string, state entities.FetchState) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	for i := range it.cfg.Repositories {
		if it.cfg.Repositories[i].ID == id {
			it.cfg.Repositories[i].LastFetchState = state
			return it.save()
		}
	}
	return &entities.ValidationError{Field: "repository", Reason: "unknown repository id " + id}
}

// UpdateFetchStatus writes back the post-fetch status fields of one
// repository.
func (it *Store) UpdateFetchStatus(id string, update entities.FetchUpdate) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	for i := range it.cfg.Repositories {
		if it.cfg.Repositories[i].ID != id {
			continue
		}
		repo := &it.cfg.Repositories[i]
		repo.LastFetchAt = update.FetchedAt
		repo.LastFetchState = update.State
		repo.LastFetchError = update.Error
		repo.RemoteAhead = update.RemoteAhead
		repo.RemoteChanges = update.RemoteChanges
		return it.save()
	}
	return &entities.ValidationError{Field: "repository", Reason: "unknown repository id " + id}
}

// save writes the config back to disk under the file lock. Callers hold
// it.mu.
func (it *Store) save() error {
	lockCtx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := flock.New(it.path + ".lock")
	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	if !locked {
		return fmt.Errorf("settings file %q is locked by another process", it.path)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := marshal(it.cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	if dir := filepath.Dir(it.path); dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create settings directory: %w", mkdirErr)
		}
	}

	// Write-then-rename keeps readers from ever seeing a partial file.
	tmp := it.path + ".tmp"
	if writeErr := os.WriteFile(tmp, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write settings: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, it.path); renameErr != nil {
		return fmt.Errorf("failed to replace settings file: %w", renameErr)
	}
	return nil
}
