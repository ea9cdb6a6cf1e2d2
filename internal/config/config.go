package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repository configuration file, looked up at the
// repository root.
const FileName = ".forksync.yaml"

// DefaultRemote is the remote name used when the config does not override it.
const DefaultRemote = "upstream"

// DefaultBranch is the branch used when neither flags nor config name one.
const DefaultBranch = "main"

// EnvUpstreamURL overrides the configured upstream URL when set.
const EnvUpstreamURL = "FORKSYNC_UPSTREAM_URL"

// Config represents the per-repository forksync configuration
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// UpstreamConfig locates the canonical upstream repository
type UpstreamConfig struct {
	URL    string `yaml:"url"`
	Remote string `yaml:"remote"`
}

// DefaultsConfig sets fallbacks for flags left unspecified
type DefaultsConfig struct {
	Branch   string `yaml:"branch"`
	Strategy string `yaml:"strategy"`
}

// Load reads the configuration file at the repository root. A missing file
// is not an error: it yields an empty config so environment and built-in
// defaults still apply.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(repoRoot, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Validate checks the values the file is allowed to carry.
func (c *Config) Validate() error {
	switch c.Defaults.Strategy {
	case "", "merge", "rebase":
	default:
		return fmt.Errorf("defaults.strategy must be \"merge\" or \"rebase\", got %q", c.Defaults.Strategy)
	}
	return nil
}

// UpstreamURL resolves the canonical upstream URL: environment first, then
// the config file. Empty means unconfigured.
func (c *Config) UpstreamURL() string {
	if url := os.Getenv(EnvUpstreamURL); url != "" {
		return url
	}
	return c.Upstream.URL
}

// RemoteName returns the configured remote name or "upstream".
func (c *Config) RemoteName() string {
	if c.Upstream.Remote != "" {
		return c.Upstream.Remote
	}
	return DefaultRemote
}

// BranchOr returns the explicit branch if non-empty, then the configured
// default, then "main".
func (c *Config) BranchOr(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c.Defaults.Branch != "" {
		return c.Defaults.Branch
	}
	return DefaultBranch
}

// StrategyOr returns the explicit strategy if non-empty, then the configured
// default, then "merge".
func (c *Config) StrategyOr(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c.Defaults.Strategy != "" {
		return c.Defaults.Strategy
	}
	return "merge"
}
