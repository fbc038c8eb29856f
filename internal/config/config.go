package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.nuuslees)
	ConfigDir string

	// ConfigFile is the YAML file declaring groups and feeds
	ConfigFile string

	// DatabasePath is the SQLite database file for groups, feeds and articles
	DatabasePath string

	// LogFile receives the application log while the TUI owns the terminal
	LogFile string
)

const defaultConfig = `# nuuslees configuration
confirm_quit: true
sync_on_start: true
check_updates: false
groups: []
#  - name: Tech
#    desc: Technology news
#    feeds:
#      - link: https://go.dev/blog/feed.atom
`

// Initialize sets up the configuration directory and files
// It creates ~/.nuuslees/ and a commented config.yaml if they don't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "failed to get home directory")
	}

	ConfigDir = filepath.Join(homeDir, ".nuuslees")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "nuuslees.db")
	LogFile = filepath.Join(ConfigDir, "nuuslees.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return apperr.Wrapf(apperr.KindConfig, err, "failed to create directory %s", ConfigDir)
	}

	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		if err := os.WriteFile(ConfigFile, []byte(defaultConfig), FilePermissions); err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "failed to create config file")
		}
	}

	return nil
}

// Feed declares one feed of a group. Name and Desc override the values
// announced by the feed itself when set.
type Feed struct {
	Link string  `yaml:"link"`
	Name *string `yaml:"name,omitempty"`
	Desc *string `yaml:"desc,omitempty"`
}

// Group declares a named collection of feeds
type Group struct {
	Name  string `yaml:"name"`
	Desc  string `yaml:"desc,omitempty"`
	Feeds []Feed `yaml:"feeds"`
}

// Config is the read-only snapshot handed to every component at startup
type Config struct {
	ConfirmQuit      bool          `yaml:"confirm_quit"`
	SyncOnStart      bool          `yaml:"sync_on_start"`
	CheckUpdates     bool          `yaml:"check_updates"`
	TickRate         float64       `yaml:"tick_rate"`
	FrameRate        float64       `yaml:"frame_rate"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
	Groups           []Group       `yaml:"groups"`
}

// Default returns the configuration used for keys absent from the file
func Default() *Config {
	return &Config{
		ConfirmQuit:      true,
		SyncOnStart:      true,
		TickRate:         4,
		FrameRate:        30,
		FetchTimeout:     30 * time.Second,
		FetchConcurrency: 4,
	}
}

// Load reads and validates the YAML configuration at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrapf(apperr.KindConfig, err, "failed to read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks rates, group names and feed links
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return apperr.Errorf(apperr.KindConfig, "tick_rate must be positive, got %v", c.TickRate)
	}
	if c.FrameRate <= 0 {
		return apperr.Errorf(apperr.KindConfig, "frame_rate must be positive, got %v", c.FrameRate)
	}
	if c.FetchConcurrency < 1 {
		return apperr.Errorf(apperr.KindConfig, "fetch_concurrency must be at least 1, got %d", c.FetchConcurrency)
	}

	seen := make(map[string]bool, len(c.Groups))
	for i, g := range c.Groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return apperr.Errorf(apperr.KindConfig, "group %d has no name", i+1)
		}
		if seen[name] {
			return apperr.Errorf(apperr.KindConfig, "duplicate group %q", name)
		}
		seen[name] = true

		for j, f := range g.Feeds {
			if strings.TrimSpace(f.Link) == "" {
				return apperr.Errorf(apperr.KindConfig, "feed %d of group %q has no link", j+1, name)
			}
			u, err := url.Parse(f.Link)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return apperr.Errorf(apperr.KindConfig, "feed %d of group %q has an invalid link %q", j+1, name, f.Link)
			}
		}
	}

	return nil
}

// FeedCount returns the number of feeds declared across all groups
func (c *Config) FeedCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Feeds)
	}
	return n
}
