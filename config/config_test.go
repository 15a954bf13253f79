//go:build unit

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachmueller/multi-git-sub002/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".multigit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should yield an empty config for a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

		// then
		require.NoError(t, err)
		assert.Empty(t, cfg.Repositories)
		assert.False(t, cfg.Notifications.Enabled)
	})

	t.Run("should parse repositories with human-readable intervals", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repositories:
  - id: r1
    path: /work/api
    name: api
    enabled: true
    fetch_interval: 10m
notifications:
  enabled: true
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		require.Len(t, cfg.Repositories, 1)
		repo := cfg.Repositories[0]
		assert.Equal(t, "r1", repo.ID)
		assert.Equal(t, "/work/api", repo.Path)
		assert.Equal(t, 10*time.Minute, repo.FetchInterval)
		assert.True(t, cfg.Notifications.Enabled)
	})

	t.Run("should reject a malformed interval", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repositories:
  - id: r1
    path: /work/api
    fetch_interval: often
`)

		// when
		_, err := config.Load(path)

		// then
		assert.ErrorContains(t, err, "fetch_interval")
	})

	t.Run("should reject an out-of-bounds interval", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repositories:
  - id: r1
    path: /work/api
    fetch_interval: 10s
`)

		// when
		_, err := config.Load(path)

		// then
		assert.Error(t, err)
	})

	t.Run("should reject duplicate repository ids", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repositories:
  - id: r1
    path: /work/api
  - id: r1
    path: /work/web
`)

		// when
		_, err := config.Load(path)

		// then
		assert.ErrorContains(t, err, "duplicate id")
	})

	t.Run("should reject a relative repository path", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repositories:
  - id: r1
    path: work/api
`)

		// when
		_, err := config.Load(path)

		// then
		assert.ErrorContains(t, err, "absolute")
	})

	t.Run("should expand environment variables in the webhook url", func(t *testing.T) {
		// given
		require.NoError(t, os.Setenv("MG_TEST_WEBHOOK_HOST", "hooks.example.com"))
		t.Cleanup(func() { _ = os.Unsetenv("MG_TEST_WEBHOOK_HOST") })
		path := writeConfig(t, `
notifications:
  enabled: true
  webhook_url: https://${MG_TEST_WEBHOOK_HOST}/notify
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://hooks.example.com/notify", cfg.Notifications.WebhookURL)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("should prefer a file in the working directory", func(t *testing.T) {
		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".multigit.yaml"), []byte("{}"), 0o644))
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		// when
		found := config.FindConfigFile()

		// then
		assert.Equal(t, filepath.Join(".", ".multigit.yaml"), found)
	})
}
