// Package scheduler runs per-repository periodic fetches. It guarantees at
// most one in-flight fetch per repository and serializes batch fetches so
// many repositories never contend for the network and credential helpers
// at once.
package scheduler

import (
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/gitcli"
)

// TaskState is the scheduling state of one repository id.
type TaskState string

const (
	StateUnscheduled TaskState = "unscheduled"
	StateIdle        TaskState = "idle"
	StateFetching    TaskState = "fetching"
)

// task is one armed timer for a scheduled repository. A repository id has
// at most one live task at any time.
type task struct {
	interval time.Duration
	timer    *time.Timer
	nextRun  time.Time
}

// Scheduler is the explicit registry owning all fetch timers. It is
// constructed and torn down by the embedding process boundary; there is no
// package-level instance.
type Scheduler struct {
	vcs      repositories.VCSRepository
	settings repositories.SettingsRepository
	notifier repositories.NotificationRepository
	log      *logger.Entry

	mu       sync.Mutex
	tasks    map[string]*task
	fetching map[string]bool // exclusivity flags, shared by timers and manual triggers
}

// NewScheduler creates a new Scheduler over the given collaborators.
func NewScheduler(
	vcs repositories.VCSRepository,
	settings repositories.SettingsRepository,
	notifier repositories.NotificationRepository,
) *Scheduler {
	return &Scheduler{
		vcs:      vcs,
		settings: settings,
		notifier: notifier,
		log:      logger.WithField("component", "scheduler"),
		tasks:    make(map[string]*task),
		fetching: make(map[string]bool),
	}
}

// ScheduleRepository arms a periodic fetch timer for the repository.
// Intervals outside the allowed bounds are rejected, not clamped.
// Scheduling an already scheduled id replaces its timer.
func (it *Scheduler) ScheduleRepository(id string, interval time.Duration) error {
	if err := entities.ValidateInterval(interval); err != nil {
		return err
	}
	if _, ok := it.settings.GetRepository(id); !ok {
		return &entities.ValidationError{Field: "repository", Reason: "unknown repository id " + id}
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	if existing, ok := it.tasks[id]; ok {
		existing.timer.Stop()
	}

	t := &task{interval: interval, nextRun: time.Now().Add(interval)}
	t.timer = time.AfterFunc(interval, func() { it.onTimer(id) })
	it.tasks[id] = t

	it.log.Debugf("Scheduled %s every %s", id, interval)
	return nil
}

// UnscheduleRepository cancels the repository's timer. It is valid from
// any state, idempotent, and does not abort an in-flight fetch.
func (it *Scheduler) UnscheduleRepository(id string) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if t, ok := it.tasks[id]; ok {
		t.timer.Stop()
		delete(it.tasks, id)
		it.log.Debugf("Unscheduled %s", id)
	}
}

// State reports the scheduling state of one repository id.
func (it *Scheduler) State(id string) TaskState {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.fetching[id] {
		return StateFetching
	}
	if _, ok := it.tasks[id]; ok {
		return StateIdle
	}
	return StateUnscheduled
}

// onTimer fires on the repository's cadence: re-arm first, then run the
// fetch. The exclusivity flag stops overlap when a fetch outlives the
// interval.
func (it *Scheduler) onTimer(id string) {
	it.mu.Lock()
	t, ok := it.tasks[id]
	if ok {
		t.nextRun = time.Now().Add(t.interval)
		t.timer.Reset(t.interval)
	}
	it.mu.Unlock()
	if !ok {
		return // unscheduled between fire and lock
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := it.FetchRepositoryNow(ctx, id)
	if result.Err != nil {
		it.log.Warnf("Scheduled fetch of %s failed: %v", id, result.Err)
	}
}

// FetchRepositoryNow runs one fetch attempt for the repository. When a
// fetch for the same id is already in flight the attempt is rejected with
// Started=false and no side effects; this is a result, not an error.
func (it *Scheduler) FetchRepositoryNow(ctx context.Context, id string) entities.FetchResult {
	repo, ok := it.settings.GetRepository(id)
	if !ok {
		return entities.FetchResult{
			RepositoryID: id,
			Err:          &entities.ValidationError{Field: "repository", Reason: "unknown repository id " + id},
		}
	}

	it.mu.Lock()
	if it.fetching[id] {
		it.mu.Unlock()
		it.log.Debugf("Fetch of %s already in progress, skipping", repo.Name)
		return entities.FetchResult{RepositoryID: id, RepositoryName: repo.Name, Started: false}
	}
	it.fetching[id] = true
	it.mu.Unlock()

	defer func() {
		it.mu.Lock()
		delete(it.fetching, id)
		it.mu.Unlock()
	}()

	return it.fetch(ctx, repo)
}

// fetch performs the fetch, writes the status fields back through the
// settings store, and notifies on a newly detected remote-ahead increase.
// The caller holds the exclusivity flag.
func (it *Scheduler) fetch(ctx context.Context, repo entities.RepositoryConfig) entities.FetchResult {
	result := entities.FetchResult{
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		Started:        true,
	}

	if err := it.settings.SetFetchState(repo.ID, entities.FetchRunning); err != nil {
		it.log.Warnf("Failed to mark %s as fetching: %v", repo.Name, err)
	}

	previousAhead := repo.RemoteAhead
	fetchErr := it.vcs.Fetch(ctx, repo.Path, 0)

	update := entities.FetchUpdate{
		FetchedAt:     time.Now(),
		RemoteAhead:   previousAhead,
		RemoteChanges: repo.RemoteChanges,
	}

	if fetchErr != nil {
		result.Err = fetchErr
		update.State = entities.FetchFailed
		update.Error = gitcli.Sanitize(fetchErr.Error())
	} else {
		update.State = entities.FetchSucceeded
		if status, err := it.vcs.GetStatus(ctx, repo); err != nil {
			it.log.Warnf("Status after fetch of %s failed: %v", repo.Name, err)
		} else {
			update.RemoteAhead = status.RemoteAhead
			update.RemoteChanges = status.RemoteAhead > 0
		}
	}
	result.RemoteAhead = update.RemoteAhead

	if err := it.settings.UpdateFetchStatus(repo.ID, update); err != nil {
		it.log.Warnf("Failed to persist fetch status of %s: %v", repo.Name, err)
	}

	// Notify once per detected increase: a re-fetch that finds the same
	// remote-ahead count stays silent.
	if update.RemoteAhead > previousAhead && it.settings.NotificationsEnabled() {
		it.notifier.NotifyRemoteChanges(repo.Name, update.RemoteAhead)
	}

	return result
}

// FetchAllNow fetches every enabled repository sequentially and returns
// the ordered per-repository results. Serialization here is deliberate:
// it bounds the OS process count and keeps many fetches from contending
// for the same network and credential-helper resources. One failing
// repository never stops the batch.
func (it *Scheduler) FetchAllNow(ctx context.Context) []entities.FetchResult {
	var results []entities.FetchResult
	for _, repo := range it.settings.ListRepositories() {
		if !repo.Enabled {
			continue
		}
		results = append(results, it.FetchRepositoryNow(ctx, repo.ID))
	}
	return results
}

// StartAll schedules every enabled repository at its configured interval.
// Called once at process start.
func (it *Scheduler) StartAll() {
	for _, repo := range it.settings.ListRepositories() {
		if !repo.Enabled {
			continue
		}
		if err := it.ScheduleRepository(repo.ID, repo.FetchInterval); err != nil {
			it.log.Warnf("Not scheduling %s: %v", repo.Name, err)
		}
	}
}

// StopAll cancels every timer. In-flight fetches run to completion or to
// their timeout.
func (it *Scheduler) StopAll() {
	it.mu.Lock()
	defer it.mu.Unlock()

	for id, t := range it.tasks {
		t.timer.Stop()
		delete(it.tasks, id)
	}
	it.log.Debug("All fetch timers stopped")
}
