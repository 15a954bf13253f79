// Package config is the persisted settings store: the managed repository
// list plus global options, kept in a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// DefaultFetchInterval is applied when a repository is added without an
// explicit interval.
const DefaultFetchInterval = 5 * time.Minute

// Config is the in-memory form of the settings file.
type Config struct {
	Repositories  []entities.RepositoryConfig
	Notifications NotificationConfig
}

// NotificationConfig controls how remote-change notifications go out.
type NotificationConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url,omitempty"` // empty means log-only
}

// fileConfig is the on-disk YAML shape. Durations are human-readable
// strings ("5m"), which yaml cannot decode into time.Duration directly.
type fileConfig struct {
	Repositories  []repoRecord       `yaml:"repositories"`
	Notifications NotificationConfig `yaml:"notifications"`
}

type repoRecord struct {
	ID            string `yaml:"id"`
	Path          string `yaml:"path"`
	Name          string `yaml:"name"`
	Enabled       bool   `yaml:"enabled"`
	FetchInterval string `yaml:"fetch_interval,omitempty"`

	LastFetchAt    time.Time `yaml:"last_fetch_at,omitempty"`
	LastFetchState string    `yaml:"last_fetch_state,omitempty"`
	LastFetchError string    `yaml:"last_fetch_error,omitempty"`
	RemoteChanges  bool      `yaml:"remote_changes,omitempty"`
	RemoteAhead    int       `yaml:"remote_ahead,omitempty"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment
// variables in the webhook URL. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var raw fileConfig
	if unmarshalErr := yaml.Unmarshal(data, &raw); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg := &Config{Notifications: raw.Notifications}
	cfg.Notifications.WebhookURL = expandEnv(cfg.Notifications.WebhookURL)

	for i, record := range raw.Repositories {
		repo, convertErr := fromRecord(record)
		if convertErr != nil {
			return nil, fmt.Errorf("repositories[%d]: %w", i, convertErr)
		}
		cfg.Repositories = append(cfg.Repositories, repo)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// marshal serializes a Config back to the on-disk YAML shape.
func marshal(cfg *Config) ([]byte, error) {
	raw := fileConfig{Notifications: cfg.Notifications}
	for _, repo := range cfg.Repositories {
		raw.Repositories = append(raw.Repositories, toRecord(repo))
	}
	return yaml.Marshal(&raw)
}

func fromRecord(record repoRecord) (entities.RepositoryConfig, error) {
	repo := entities.RepositoryConfig{
		ID:             record.ID,
		Path:           record.Path,
		Name:           record.Name,
		Enabled:        record.Enabled,
		LastFetchAt:    record.LastFetchAt,
		LastFetchState: entities.FetchState(record.LastFetchState),
		LastFetchError: record.LastFetchError,
		RemoteChanges:  record.RemoteChanges,
		RemoteAhead:    record.RemoteAhead,
	}
	if record.FetchInterval != "" {
		interval, err := time.ParseDuration(record.FetchInterval)
		if err != nil {
			return repo, fmt.Errorf("invalid fetch_interval %q: %w", record.FetchInterval, err)
		}
		repo.FetchInterval = interval
	}
	return repo, nil
}

func toRecord(repo entities.RepositoryConfig) repoRecord {
	record := repoRecord{
		ID:             repo.ID,
		Path:           repo.Path,
		Name:           repo.Name,
		Enabled:        repo.Enabled,
		LastFetchAt:    repo.LastFetchAt,
		LastFetchState: string(repo.LastFetchState),
		LastFetchError: repo.LastFetchError,
		RemoteChanges:  repo.RemoteChanges,
		RemoteAhead:    repo.RemoteAhead,
	}
	if repo.FetchInterval != 0 {
		record.FetchInterval = repo.FetchInterval.String()
	}
	return record
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path of the first file found, or the default location when
// none exists yet.
func FindConfigFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{"."}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config", "multigit"),
		)
	}

	patterns := []string{
		".multigit.yaml",
		".multigit.yml",
		"multigit.yaml",
		"multigit.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p
			}
		}
	}

	if homeDir != "" {
		return filepath.Join(homeDir, ".multigit.yaml")
	}
	return ".multigit.yaml"
}

// expandEnv replaces ${VAR} references with the environment value.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks structural requirements of a loaded config.
func validate(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Repositories))
	for i, repo := range cfg.Repositories {
		if repo.ID == "" {
			return fmt.Errorf("repositories[%d].id is required", i)
		}
		if seen[repo.ID] {
			return fmt.Errorf("repositories[%d]: duplicate id %q", i, repo.ID)
		}
		seen[repo.ID] = true

		if repo.Path == "" {
			return fmt.Errorf("repositories[%d].path is required", i)
		}
		if !filepath.IsAbs(repo.Path) {
			return fmt.Errorf("repositories[%d].path must be absolute, got %q", i, repo.Path)
		}
		if repo.FetchInterval != 0 {
			if err := entities.ValidateInterval(repo.FetchInterval); err != nil {
				return fmt.Errorf("repositories[%d]: %w", i, err)
			}
		}
	}
	return nil
}
