//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// RepositoryConfigBuilder helps create test repository records with a
// fluent interface.
type RepositoryConfigBuilder struct {
	*testkit.BaseBuilder
	id          string
	path        string
	name        string
	enabled     bool
	interval    time.Duration
	remoteAhead int
}

// NewRepositoryConfigBuilder creates a new builder with sensible defaults.
func NewRepositoryConfigBuilder() *RepositoryConfigBuilder {
	return &RepositoryConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          "repo-1",
		path:        "/tmp/repo-1",
		name:        "repo-1",
		enabled:     true,
		interval:    5 * time.Minute,
	}
}

// WithID sets the repository id.
func (b *RepositoryConfigBuilder) WithID(id string) *RepositoryConfigBuilder {
	b.id = id
	return b
}

// WithPath sets the working tree path.
func (b *RepositoryConfigBuilder) WithPath(path string) *RepositoryConfigBuilder {
	b.path = path
	return b
}

// WithName sets the display name.
func (b *RepositoryConfigBuilder) WithName(name string) *RepositoryConfigBuilder {
	b.name = name
	return b
}

// Disabled marks the repository as not enabled.
func (b *RepositoryConfigBuilder) Disabled() *RepositoryConfigBuilder {
	b.enabled = false
	return b
}

// WithInterval sets the fetch interval.
func (b *RepositoryConfigBuilder) WithInterval(interval time.Duration) *RepositoryConfigBuilder {
	b.interval = interval
	return b
}

// WithRemoteAhead sets the recorded remote-ahead count.
func (b *RepositoryConfigBuilder) WithRemoteAhead(count int) *RepositoryConfigBuilder {
	b.remoteAhead = count
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *RepositoryConfigBuilder) Build() interface{} {
	return b.BuildRepositoryConfig()
}

// BuildRepositoryConfig creates the record with a concrete return type.
func (b *RepositoryConfigBuilder) BuildRepositoryConfig() entities.RepositoryConfig {
	return entities.RepositoryConfig{
		ID:            b.id,
		Path:          b.path,
		Name:          b.name,
		Enabled:       b.enabled,
		FetchInterval: b.interval,
		RemoteAhead:   b.remoteAhead,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = "repo-1"
	b.path = "/tmp/repo-1"
	b.name = "repo-1"
	b.enabled = true
	b.interval = 5 * time.Minute
	b.remoteAhead = 0
	return b
}

// Clone creates a deep copy of the RepositoryConfigBuilder.
func (b *RepositoryConfigBuilder) Clone() testkit.Builder {
	return &RepositoryConfigBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		path:        b.path,
		name:        b.name,
		enabled:     b.enabled,
		interval:    b.interval,
		remoteAhead: b.remoteAhead,
	}
}
