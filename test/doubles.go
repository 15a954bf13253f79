// Package testdoubles provides hand-crafted test doubles (spies, stubs,
// dummies) for the domain interfaces.
package testdoubles

import (
	"context"
	"sync"
	"time"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// ---------------------------------------------------------------------------
// SpyVCSRepository
// ---------------------------------------------------------------------------

// SpyVCSRepository implements repositories.VCSRepository as a configurable
// spy. Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyVCSRepository struct {
	mu sync.Mutex

	// --- configured responses ---
	Repo       bool
	Root       string
	RootErr    error
	Status     *entities.RepositoryStatus
	StatusErr  error
	StageErr   error
	CommitErr  error
	PushErr    error
	FetchErr   error
	FetchErrs  map[string]error // per-path overrides, checked before FetchErr
	FetchDelay time.Duration    // simulated fetch duration

	// --- call tracking ---
	StagedPaths  []string
	Commits      []string // messages, in order
	PushedPaths  []string
	FetchedPaths []string
	StatusCalls  int
}

func (s *SpyVCSRepository) IsRepository(_ context.Context, _ string) bool {
	return s.Repo
}

func (s *SpyVCSRepository) RepositoryRoot(_ context.Context, path string) (string, error) {
	if s.RootErr != nil {
		return "", s.RootErr
	}
	if s.Root != "" {
		return s.Root, nil
	}
	return path, nil
}

func (s *SpyVCSRepository) GetStatus(
	_ context.Context,
	repo entities.RepositoryConfig,
) (*entities.RepositoryStatus, error) {
	s.mu.Lock()
	s.StatusCalls++
	s.mu.Unlock()

	if s.StatusErr != nil {
		return nil, s.StatusErr
	}
	if s.Status != nil {
		return s.Status, nil
	}
	return &entities.RepositoryStatus{
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		Path:           repo.Path,
		HasCommits:     true,
	}, nil
}

func (s *SpyVCSRepository) StageAll(_ context.Context, path string) error {
	s.mu.Lock()
	s.StagedPaths = append(s.StagedPaths, path)
	s.mu.Unlock()
	return s.StageErr
}

func (s *SpyVCSRepository) Commit(_ context.Context, _, message string) error {
	s.mu.Lock()
	s.Commits = append(s.Commits, message)
	s.mu.Unlock()
	return s.CommitErr
}

func (s *SpyVCSRepository) Push(_ context.Context, path string, _ time.Duration) error {
	s.mu.Lock()
	s.PushedPaths = append(s.PushedPaths, path)
	s.mu.Unlock()
	return s.PushErr
}

func (s *SpyVCSRepository) Fetch(_ context.Context, path string, _ time.Duration) error {
	if s.FetchDelay > 0 {
		time.Sleep(s.FetchDelay)
	}
	s.mu.Lock()
	s.FetchedPaths = append(s.FetchedPaths, path)
	s.mu.Unlock()
	if err, ok := s.FetchErrs[path]; ok {
		return err
	}
	return s.FetchErr
}

// FetchCount returns how many fetches actually ran.
func (s *SpyVCSRepository) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.FetchedPaths)
}

// ---------------------------------------------------------------------------
// SpySettingsRepository
// ---------------------------------------------------------------------------

// SpySettingsRepository implements repositories.SettingsRepository over an
// in-memory repository list.
type SpySettingsRepository struct {
	mu sync.Mutex

	Repos         []entities.RepositoryConfig
	NotifyEnabled bool

	// --- call tracking ---
	FetchUpdates map[string][]entities.FetchUpdate
	StateChanges map[string][]entities.FetchState
	RemovedIDs   []string
}

func (s *SpySettingsRepository) ListRepositories() []entities.RepositoryConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.RepositoryConfig, len(s.Repos))
	copy(out, s.Repos)
	return out
}

func (s *SpySettingsRepository) GetRepository(id string) (entities.RepositoryConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, repo := range s.Repos {
		if repo.ID == id {
			return repo, true
		}
	}
	return entities.RepositoryConfig{}, false
}

func (s *SpySettingsRepository) FindRepository(ref string) (entities.RepositoryConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, repo := range s.Repos {
		if repo.ID == ref || repo.Name == ref {
			return repo, true
		}
	}
	return entities.RepositoryConfig{}, false
}

func (s *SpySettingsRepository) AddRepository(repo entities.RepositoryConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Repos = append(s.Repos, repo)
	return nil
}

func (s *SpySettingsRepository) RemoveRepository(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RemovedIDs = append(s.RemovedIDs, id)
	for i, repo := range s.Repos {
		if repo.ID == id {
			s.Repos = append(s.Repos[:i], s.Repos[i+1:]...)
			break
		}
	}
	return nil
}

func (s *SpySettingsRepository) SetFetchState(id string, state entities.FetchState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StateChanges == nil {
		s.StateChanges = make(map[string][]entities.FetchState)
	}
	s.StateChanges[id] = append(s.StateChanges[id], state)
	return nil
}

func (s *SpySettingsRepository) UpdateFetchStatus(id string, update entities.FetchUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FetchUpdates == nil {
		s.FetchUpdates = make(map[string][]entities.FetchUpdate)
	}
	s.FetchUpdates[id] = append(s.FetchUpdates[id], update)
	for i := range s.Repos {
		if s.Repos[i].ID == id {
			s.Repos[i].LastFetchAt = update.FetchedAt
			s.Repos[i].LastFetchState = update.State
			s.Repos[i].LastFetchError = update.Error
			s.Repos[i].RemoteAhead = update.RemoteAhead
			s.Repos[i].RemoteChanges = update.RemoteChanges
		}
	}
	return nil
}

func (s *SpySettingsRepository) NotificationsEnabled() bool {
	return s.NotifyEnabled
}

// LastUpdate returns the most recent fetch status write-back for id.
func (s *SpySettingsRepository) LastUpdate(id string) (entities.FetchUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updates := s.FetchUpdates[id]
	if len(updates) == 0 {
		return entities.FetchUpdate{}, false
	}
	return updates[len(updates)-1], true
}

// ---------------------------------------------------------------------------
// SpyNotifier
// ---------------------------------------------------------------------------

// NotifiedEvent is one recorded notification.
type NotifiedEvent struct {
	Repository  string
	RemoteAhead int
}

// SpyNotifier implements repositories.NotificationRepository and records
// every delivered event.
type SpyNotifier struct {
	mu     sync.Mutex
	Events []NotifiedEvent
}

func (s *SpyNotifier) NotifyRemoteChanges(repositoryName string, remoteAhead int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, NotifiedEvent{Repository: repositoryName, RemoteAhead: remoteAhead})
}

// Count returns how many notifications went out.
func (s *SpyNotifier) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Events)
}
