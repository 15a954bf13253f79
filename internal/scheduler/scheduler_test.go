//go:build unit

package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/scheduler"
	testdoubles "github.com/zachmueller/multi-git-sub002/test"
	"github.com/zachmueller/multi-git-sub002/test/domain/entitybuilders"
)

func newFixture(repos ...entities.RepositoryConfig) (
	*scheduler.Scheduler,
	*testdoubles.SpyVCSRepository,
	*testdoubles.SpySettingsRepository,
	*testdoubles.SpyNotifier,
) {
	vcs := &testdoubles.SpyVCSRepository{}
	settings := &testdoubles.SpySettingsRepository{Repos: repos, NotifyEnabled: true}
	notifier := &testdoubles.SpyNotifier{}
	return scheduler.NewScheduler(vcs, settings, notifier), vcs, settings, notifier
}

func managedRepo(id string) entities.RepositoryConfig {
	return entitybuilders.NewRepositoryConfigBuilder().
		WithID(id).
		WithName(id).
		WithPath("/tmp/" + id).
		BuildRepositoryConfig()
}

func TestScheduleRepository(t *testing.T) {
	t.Parallel()

	t.Run("should reject an interval below the minimum", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture(managedRepo("a"))

		// when
		err := sched.ScheduleRepository("a", 30*time.Second)

		// then
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("a"))
	})

	t.Run("should reject an interval above the maximum", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture(managedRepo("a"))

		// when
		err := sched.ScheduleRepository("a", 2*time.Hour)

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should accept an interval inside the bounds", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture(managedRepo("a"))
		defer sched.StopAll()

		// when
		err := sched.ScheduleRepository("a", 5*time.Minute)

		// then
		require.NoError(t, err)
		assert.Equal(t, scheduler.StateIdle, sched.State("a"))
	})

	t.Run("should reject an unknown repository id", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture()

		// when
		err := sched.ScheduleRepository("ghost", 5*time.Minute)

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestUnscheduleRepository(t *testing.T) {
	t.Parallel()

	t.Run("should be idempotent", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture(managedRepo("a"))
		require.NoError(t, sched.ScheduleRepository("a", 5*time.Minute))

		// when / then: twice in a row, no error, unscheduled both times
		sched.UnscheduleRepository("a")
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("a"))
		sched.UnscheduleRepository("a")
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("a"))
	})
}

func TestFetchRepositoryNow(t *testing.T) {
	t.Parallel()

	t.Run("should let exactly one concurrent fetch start per repository", func(t *testing.T) {
		t.Parallel()

		// given
		sched, vcs, _, _ := newFixture(managedRepo("a"))
		vcs.FetchDelay = 200 * time.Millisecond

		// when: several concurrent triggers against the same id
		const attempts = 5
		results := make([]entities.FetchResult, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = sched.FetchRepositoryNow(context.Background(), "a")
			}(i)
		}
		wg.Wait()

		// then
		started := 0
		for _, result := range results {
			if result.Started {
				started++
			} else {
				require.NoError(t, result.Err, "a rejected attempt is not an error")
			}
		}
		assert.Equal(t, 1, started)
		assert.Equal(t, 1, vcs.FetchCount(), "rejected attempts must have no side effects")
	})

	t.Run("should write status fields back after a successful fetch", func(t *testing.T) {
		t.Parallel()

		// given
		sched, vcs, settings, _ := newFixture(managedRepo("a"))
		vcs.Status = &entities.RepositoryStatus{RepositoryID: "a", HasCommits: true, RemoteAhead: 3}

		// when
		result := sched.FetchRepositoryNow(context.Background(), "a")

		// then
		require.True(t, result.Started)
		require.NoError(t, result.Err)
		assert.Equal(t, 3, result.RemoteAhead)

		update, ok := settings.LastUpdate("a")
		require.True(t, ok)
		assert.Equal(t, entities.FetchSucceeded, update.State)
		assert.Equal(t, 3, update.RemoteAhead)
		assert.True(t, update.RemoteChanges)
		assert.False(t, update.FetchedAt.IsZero())
		assert.Contains(t, settings.StateChanges["a"], entities.FetchRunning)
	})

	t.Run("should write an error status and keep the old count on failure", func(t *testing.T) {
		t.Parallel()

		// given
		repo := entitybuilders.NewRepositoryConfigBuilder().
			WithID("a").
			WithName("a").
			WithPath("/tmp/a").
			WithRemoteAhead(2).
			BuildRepositoryConfig()
		sched, vcs, settings, notifier := newFixture(repo)
		vcs.FetchErr = &entities.NetworkError{Detail: "connection refused"}

		// when
		result := sched.FetchRepositoryNow(context.Background(), "a")

		// then
		require.True(t, result.Started)
		var netErr *entities.NetworkError
		assert.ErrorAs(t, result.Err, &netErr)

		update, ok := settings.LastUpdate("a")
		require.True(t, ok)
		assert.Equal(t, entities.FetchFailed, update.State)
		assert.NotEmpty(t, update.Error)
		assert.Equal(t, 2, update.RemoteAhead, "failed fetch keeps the recorded count")
		assert.Equal(t, 0, notifier.Count())
	})

	t.Run("should return a validation error for an unknown id", func(t *testing.T) {
		t.Parallel()

		// given
		sched, _, _, _ := newFixture()

		// when
		result := sched.FetchRepositoryNow(context.Background(), "ghost")

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, result.Err, &validationErr)
	})
}

func TestNotifications(t *testing.T) {
	t.Parallel()

	t.Run("should notify once per detected increase and stay silent on re-fetch", func(t *testing.T) {
		t.Parallel()

		// given
		sched, vcs, _, notifier := newFixture(managedRepo("a"))
		vcs.Status = &entities.RepositoryStatus{RepositoryID: "a", HasCommits: true, RemoteAhead: 2}

		// when: first fetch detects the increase, second finds nothing new
		first := sched.FetchRepositoryNow(context.Background(), "a")
		second := sched.FetchRepositoryNow(context.Background(), "a")

		// then
		require.NoError(t, first.Err)
		require.NoError(t, second.Err)
		require.Equal(t, 1, notifier.Count())
		assert.Equal(t, testdoubles.NotifiedEvent{Repository: "a", RemoteAhead: 2}, notifier.Events[0])
	})

	t.Run("should not notify when notifications are disabled", func(t *testing.T) {
		t.Parallel()

		// given
		sched, vcs, settings, notifier := newFixture(managedRepo("a"))
		settings.NotifyEnabled = false
		vcs.Status = &entities.RepositoryStatus{RepositoryID: "a", HasCommits: true, RemoteAhead: 5}

		// when
		_ = sched.FetchRepositoryNow(context.Background(), "a")

		// then
		assert.Equal(t, 0, notifier.Count())
	})
}

func TestFetchAllNow(t *testing.T) {
	t.Parallel()

	t.Run("should continue past failures and keep repository order", func(t *testing.T) {
		t.Parallel()

		// given
		sched, vcs, _, _ := newFixture(managedRepo("a"), managedRepo("b"), managedRepo("c"))
		vcs.FetchErrs = map[string]error{
			"/tmp/b": &entities.AuthenticationError{Detail: "bad credentials"},
		}

		// when
		results := sched.FetchAllNow(context.Background())

		// then
		require.Len(t, results, 3)
		assert.Equal(t, []string{"/tmp/a", "/tmp/b", "/tmp/c"}, vcs.FetchedPaths)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.NoError(t, results[2].Err)
	})

	t.Run("should skip disabled repositories", func(t *testing.T) {
		t.Parallel()

		// given
		disabled := entitybuilders.NewRepositoryConfigBuilder().
			WithID("b").
			WithPath("/tmp/b").
			Disabled().
			BuildRepositoryConfig()
		sched, vcs, _, _ := newFixture(managedRepo("a"), disabled)

		// when
		results := sched.FetchAllNow(context.Background())

		// then
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].RepositoryID)
		assert.Equal(t, 1, vcs.FetchCount())
	})
}

func TestStartStopAll(t *testing.T) {
	t.Parallel()

	t.Run("should schedule every enabled repository and tear all down", func(t *testing.T) {
		t.Parallel()

		// given
		disabled := entitybuilders.NewRepositoryConfigBuilder().
			WithID("c").
			WithPath("/tmp/c").
			Disabled().
			BuildRepositoryConfig()
		sched, _, _, _ := newFixture(managedRepo("a"), managedRepo("b"), disabled)

		// when
		sched.StartAll()

		// then
		assert.Equal(t, scheduler.StateIdle, sched.State("a"))
		assert.Equal(t, scheduler.StateIdle, sched.State("b"))
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("c"))

		// when
		sched.StopAll()

		// then
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("a"))
		assert.Equal(t, scheduler.StateUnscheduled, sched.State("b"))
	})
}
