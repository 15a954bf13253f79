package entities

import (
	"fmt"
	"time"
)

// Fetch interval bounds enforced by the scheduler. Values outside this
// range are rejected, not clamped.
const (
	MinFetchInterval = 60 * time.Second
	MaxFetchInterval = time.Hour
)

// FetchState describes the persisted outcome of the most recent fetch.
type FetchState string

const (
	FetchIdle      FetchState = "idle"
	FetchRunning   FetchState = "fetching"
	FetchSucceeded FetchState = "success"
	FetchFailed    FetchState = "error"
)

// RepositoryConfig is the persisted record of a managed repository. It is
// owned by the settings store; the core references repositories by ID and
// mutates these fields only through explicit store updates after an
// operation completes.
type RepositoryConfig struct {
	ID            string
	Path          string
	Name          string
	Enabled       bool
	FetchInterval time.Duration

	LastFetchAt    time.Time
	LastFetchState FetchState
	LastFetchError string
	RemoteChanges  bool
	RemoteAhead    int
}

// ValidateInterval checks a fetch interval against the allowed bounds.
func ValidateInterval(interval time.Duration) error {
	if interval < MinFetchInterval || interval > MaxFetchInterval {
		return &ValidationError{
			Field: "fetch_interval",
			Reason: fmt.Sprintf(
				"interval %s is outside the allowed range [%s, %s]",
				interval, MinFetchInterval, MaxFetchInterval,
			),
		}
	}
	return nil
}

// FetchUpdate carries the status fields written back to a RepositoryConfig
// after a fetch attempt, successful or not.
type FetchUpdate struct {
	FetchedAt     time.Time
	State         FetchState
	Error         string
	RemoteAhead   int
	RemoteChanges bool
}

// FetchResult is the per-repository outcome of a single or batch fetch.
type FetchResult struct {
	RepositoryID   string
	RepositoryName string
	Started        bool // false when another fetch already held the slot
	RemoteAhead    int
	Err            error
}
