// Package gitcli talks to the git command-line tool and translates its
// output into structured results. Git itself stays the source of truth for
// repository state; nothing here reimplements version-control internals.
package gitcli

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/runner"
)

// GitRepository implements repositories.VCSRepository by shelling out to
// the git binary through the process runner.
type GitRepository struct {
	runner runner.Runner
	log    *logger.Entry
}

// NewGitRepository creates a new GitRepository on top of the given runner.
func NewGitRepository(run runner.Runner) *GitRepository {
	return &GitRepository{
		runner: run,
		log:    logger.WithField("component", "gitcli"),
	}
}

// run invokes git with the given arguments in dir. Spawn and timeout
// failures come back as their typed errors; a non-zero exit is returned as
// data for the caller to classify.
func (it *GitRepository) run(
	ctx context.Context,
	dir string,
	timeout time.Duration,
	args ...string,
) (entities.ProcessResult, error) {
	result, err := it.runner.Run(ctx, runner.Spec{
		Executable: "git",
		Args:       args,
		Dir:        dir,
		Timeout:    timeout,
	})
	if err != nil {
		it.log.Warnf("git %s failed: %v", args[0], Sanitize(err.Error()))
	}
	return result, err
}

// IsRepository reports whether path is inside a git working tree.
func (it *GitRepository) IsRepository(ctx context.Context, path string) bool {
	result, err := it.run(ctx, path, 0, "rev-parse", "--git-dir")
	return err == nil && result.ExitCode == 0
}

// RepositoryRoot resolves the top-level directory of the working tree
// containing path.
func (it *GitRepository) RepositoryRoot(ctx context.Context, path string) (string, error) {
	result, err := it.run(ctx, path, 0, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &entities.ValidationError{
			Field:  "path",
			Reason: path + " is not inside a git repository",
		}
	}
	return strings.TrimSpace(result.Stdout), nil
}

// GetStatus builds a fresh RepositoryStatus snapshot. Ahead/behind counts
// silently stay zero when the branch has no upstream.
func (it *GitRepository) GetStatus(
	ctx context.Context,
	repo entities.RepositoryConfig,
) (*entities.RepositoryStatus, error) {
	branchResult, err := it.run(ctx, repo.Path, 0, "branch", "--show-current")
	if err != nil {
		return nil, err
	}
	if branchResult.ExitCode != 0 {
		return nil, classifyFailure(branchResult)
	}

	statusResult, err := it.run(ctx, repo.Path, 0, "status", "--porcelain=v1")
	if err != nil {
		return nil, err
	}
	if statusResult.ExitCode != 0 {
		return nil, classifyFailure(statusResult)
	}

	staged, unstaged, untracked := parseStatus(statusResult.Stdout)

	status := &entities.RepositoryStatus{
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		Path:           repo.Path,
		Branch:         parseBranch(branchResult.Stdout),
		Staged:         staged,
		Unstaged:       unstaged,
		Untracked:      untracked,
		HasCommits:     it.hasCommits(ctx, repo.Path),
		LastFetchState: repo.LastFetchState,
	}
	status.Unpushed, status.RemoteAhead = it.aheadBehind(ctx, repo.Path)

	return status, nil
}

// hasCommits reports whether HEAD resolves to a commit; false means the
// repository has no commits yet.
func (it *GitRepository) hasCommits(ctx context.Context, path string) bool {
	result, err := it.run(ctx, path, 0, "rev-parse", "--quiet", "--verify", "HEAD")
	return err == nil && result.ExitCode == 0
}

// aheadBehind counts local commits missing upstream and upstream commits
// missing locally. Both are zero when no upstream is configured.
func (it *GitRepository) aheadBehind(ctx context.Context, path string) (unpushed, remoteAhead int) {
	result, err := it.run(ctx, path, 0, "rev-list", "--count", "@{upstream}..HEAD")
	if err != nil || result.ExitCode != 0 {
		return 0, 0
	}
	unpushed = parseCount(result.Stdout)

	result, err = it.run(ctx, path, 0, "rev-list", "--count", "HEAD..@{upstream}")
	if err != nil || result.ExitCode != 0 {
		return unpushed, 0
	}
	return unpushed, parseCount(result.Stdout)
}

// StageAll stages every change in the working tree.
func (it *GitRepository) StageAll(ctx context.Context, path string) error {
	result, err := it.run(ctx, path, 0, "add", "-A")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifyFailure(result)
	}
	return nil
}

// Commit records the staged changes. A clean index short-circuits to
// *entities.NothingToCommitError.
func (it *GitRepository) Commit(ctx context.Context, path, message string) error {
	result, err := it.run(ctx, path, 0, "commit", "-m", message)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifyFailure(result)
	}
	it.log.Debugf("Committed in %s (%s)", path, result.Elapsed)
	return nil
}

// Push publishes local commits to the upstream. A zero timeout falls back
// to the network default.
func (it *GitRepository) Push(ctx context.Context, path string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = runner.NetworkTimeout
	}
	result, err := it.run(ctx, path, timeout, "push")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifyFailure(result)
	}
	it.log.Debugf("Pushed %s (%s)", path, result.Elapsed)
	return nil
}

// Fetch updates all remote-tracking refs, tags included, pruning deleted
// ones. A zero timeout falls back to the network default.
func (it *GitRepository) Fetch(ctx context.Context, path string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = runner.NetworkTimeout
	}
	result, err := it.run(ctx, path, timeout, "fetch", "--all", "--tags", "--prune")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifyFailure(result)
	}
	it.log.Debugf("Fetched %s (%s)", path, result.Elapsed)
	return nil
}
