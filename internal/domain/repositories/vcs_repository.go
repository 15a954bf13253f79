package repositories

import (
	"context"
	"time"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// VCSRepository abstracts the git command-line tool. The tool remains the
// source of truth for repository state; implementations translate raw
// output and exit codes into structured results or classified errors.
type VCSRepository interface {
	// IsRepository reports whether path is inside a git working tree.
	IsRepository(ctx context.Context, path string) bool

	// RepositoryRoot resolves the top-level directory of the working
	// tree containing path.
	RepositoryRoot(ctx context.Context, path string) (string, error)

	// GetStatus builds a fresh RepositoryStatus snapshot for the
	// repository described by repo.
	GetStatus(ctx context.Context, repo entities.RepositoryConfig) (*entities.RepositoryStatus, error)

	// StageAll stages every change in the working tree.
	StageAll(ctx context.Context, path string) error

	// Commit records the staged changes. A clean index yields
	// *entities.NothingToCommitError.
	Commit(ctx context.Context, path, message string) error

	// Push publishes local commits to the upstream.
	Push(ctx context.Context, path string, timeout time.Duration) error

	// Fetch updates all remote-tracking refs.
	Fetch(ctx context.Context, path string, timeout time.Duration) error
}
