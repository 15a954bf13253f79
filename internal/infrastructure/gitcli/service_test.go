//go:build unit

package gitcli_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/gitcli"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/runner"
	"github.com/zachmueller/multi-git-sub002/test/domain/entitybuilders"
)

// stubRunner returns canned results keyed by the leading git arguments. An
// unmatched invocation gets a zero-exit empty result.
type stubRunner struct {
	results map[string]entities.ProcessResult
	errs    map[string]error
	specs   []runner.Spec
}

func (s *stubRunner) Run(_ context.Context, spec runner.Spec) (entities.ProcessResult, error) {
	s.specs = append(s.specs, spec)
	key := strings.Join(spec.Args, " ")
	for prefix, err := range s.errs {
		if strings.HasPrefix(key, prefix) {
			return entities.ProcessResult{}, err
		}
	}
	for prefix, result := range s.results {
		if strings.HasPrefix(key, prefix) {
			return result, nil
		}
	}
	return entities.ProcessResult{ExitCode: 0}, nil
}

func (s *stubRunner) argLists() []string {
	out := make([]string, len(s.specs))
	for i, spec := range s.specs {
		out[i] = strings.Join(spec.Args, " ")
	}
	return out
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	t.Run("should assemble the full snapshot from the git invocations", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"branch --show-current":           {Stdout: "main\n"},
			"status --porcelain":              {Stdout: "M  staged.go\n M tree.go\n?? fresh.go\n"},
			"rev-list --count @{upstream}..":  {Stdout: "2\n"},
			"rev-list --count HEAD..":         {Stdout: "3\n"},
			"rev-parse --quiet --verify HEAD": {ExitCode: 0},
		}}
		repo := entitybuilders.NewRepositoryConfigBuilder().
			WithID("r1").
			WithName("api").
			WithPath("/work/api").
			BuildRepositoryConfig()
		it := gitcli.NewGitRepository(stub)

		// when
		status, err := it.GetStatus(context.Background(), repo)

		// then
		require.NoError(t, err)
		require.NotNil(t, status.Branch)
		assert.Equal(t, "main", *status.Branch)
		assert.Len(t, status.Staged, 1)
		assert.Len(t, status.Unstaged, 1)
		assert.Len(t, status.Untracked, 1)
		assert.True(t, status.HasCommits)
		assert.Equal(t, 2, status.Unpushed)
		assert.Equal(t, 3, status.RemoteAhead)
	})

	t.Run("should report zero counts when no upstream is configured", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"branch --show-current": {Stdout: "main\n"},
			"rev-list --count": {
				ExitCode: 128,
				Stderr:   "fatal: no upstream configured for branch 'main'",
			},
		}}
		repo := entitybuilders.NewRepositoryConfigBuilder().WithPath("/work/api").BuildRepositoryConfig()
		it := gitcli.NewGitRepository(stub)

		// when
		status, err := it.GetStatus(context.Background(), repo)

		// then
		require.NoError(t, err)
		assert.Zero(t, status.Unpushed)
		assert.Zero(t, status.RemoteAhead)
	})

	t.Run("should leave the branch nil on a detached head", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"branch --show-current": {Stdout: "\n"},
		}}
		repo := entitybuilders.NewRepositoryConfigBuilder().WithPath("/work/api").BuildRepositoryConfig()
		it := gitcli.NewGitRepository(stub)

		// when
		status, err := it.GetStatus(context.Background(), repo)

		// then
		require.NoError(t, err)
		assert.Nil(t, status.Branch)
	})

	t.Run("should propagate runner errors untouched", func(t *testing.T) {
		t.Parallel()

		// given
		spawnErr := &entities.ProcessSpawnError{Executable: "git"}
		stub := &stubRunner{errs: map[string]error{"branch": spawnErr}}
		repo := entitybuilders.NewRepositoryConfigBuilder().WithPath("/work/api").BuildRepositoryConfig()
		it := gitcli.NewGitRepository(stub)

		// when
		_, err := it.GetStatus(context.Background(), repo)

		// then
		assert.ErrorIs(t, err, spawnErr)
	})
}

func TestIsRepository(t *testing.T) {
	t.Parallel()

	t.Run("should report true inside a working tree and false outside", func(t *testing.T) {
		t.Parallel()

		// given
		inside := gitcli.NewGitRepository(&stubRunner{})
		outside := gitcli.NewGitRepository(&stubRunner{results: map[string]entities.ProcessResult{
			"rev-parse --git-dir": {ExitCode: 128, Stderr: "fatal: not a git repository"},
		}})

		// when / then
		assert.True(t, inside.IsRepository(context.Background(), "/work/api"))
		assert.False(t, outside.IsRepository(context.Background(), "/elsewhere"))
	})
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	t.Run("should trim the toplevel path", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"rev-parse --show-toplevel": {Stdout: "/work/api\n"},
		}}
		it := gitcli.NewGitRepository(stub)

		// when
		root, err := it.RepositoryRoot(context.Background(), "/work/api/internal")

		// then
		require.NoError(t, err)
		assert.Equal(t, "/work/api", root)
	})

	t.Run("should return a validation error outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"rev-parse --show-toplevel": {ExitCode: 128, Stderr: "fatal: not a git repository"},
		}}
		it := gitcli.NewGitRepository(stub)

		// when
		_, err := it.RepositoryRoot(context.Background(), "/elsewhere")

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCommit(t *testing.T) {
	t.Parallel()

	t.Run("should classify a clean index as nothing to commit", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"commit": {ExitCode: 1, Stdout: "nothing to commit, working tree clean"},
		}}
		it := gitcli.NewGitRepository(stub)

		// when
		err := it.Commit(context.Background(), "/work/api", "Update handler")

		// then
		var nothingErr *entities.NothingToCommitError
		assert.ErrorAs(t, err, &nothingErr)
	})
}

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("should fetch all remotes with tags and pruning on the network timeout", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{}
		it := gitcli.NewGitRepository(stub)

		// when
		err := it.Fetch(context.Background(), "/work/api", 0)

		// then
		require.NoError(t, err)
		require.Len(t, stub.specs, 1)
		assert.Equal(t, []string{"fetch", "--all", "--tags", "--prune"}, stub.specs[0].Args)
		assert.Equal(t, runner.NetworkTimeout, stub.specs[0].Timeout)
		assert.Equal(t, "/work/api", stub.specs[0].Dir)
	})

	t.Run("should classify an authentication failure", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{results: map[string]entities.ProcessResult{
			"fetch": {ExitCode: 128, Stderr: "fatal: Authentication failed for 'https://example.com/r.git'"},
		}}
		it := gitcli.NewGitRepository(stub)

		// when
		err := it.Fetch(context.Background(), "/work/api", 0)

		// then
		var authErr *entities.AuthenticationError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestStageAll(t *testing.T) {
	t.Parallel()

	t.Run("should stage the whole working tree", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubRunner{}
		it := gitcli.NewGitRepository(stub)

		// when
		err := it.StageAll(context.Background(), "/work/api")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"add -A"}, stub.argLists())
	})
}
