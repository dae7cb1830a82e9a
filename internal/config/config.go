package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ArtworkDir string `toml:"artwork_dir"`
	CacheDir   string `toml:"cache_dir"`
	LogDir     string `toml:"log_dir"`
}

// Catalog selects and tunes the title metadata providers.
type Catalog struct {
	Provider       string `toml:"provider"`
	CacheEnabled   bool   `toml:"cache_enabled"`
	CacheTTLHours  int    `toml:"cache_ttl_hours"`
	RequestTimeout int    `toml:"request_timeout"`
	UserAgent      string `toml:"user_agent"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Output controls how generated files are written.
type Output struct {
	Encoding  string `toml:"encoding"`
	Overwrite bool   `toml:"overwrite"`
}

// Defaults are applied when the matching generate flag is omitted.
type Defaults struct {
	Artwork  string `toml:"artwork"`
	Source   string `toml:"source"`
	Template string `toml:"template"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Tools names the external binaries nfog runs.
type Tools struct {
	MediaInfo string `toml:"mediainfo"`
}

// Config encapsulates all configuration values for nfog.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Catalog  Catalog  `toml:"catalog"`
	TMDB     TMDB     `toml:"tmdb"`
	Output   Output   `toml:"output"`
	Defaults Defaults `toml:"defaults"`
	Logging  Logging  `toml:"logging"`
	Tools    Tools    `toml:"tools"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nfog/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. A missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	var data []byte
	if exists {
		data, err = os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
	}
	cfg, err := Parse(bytes.NewReader(data), false)
	if err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// Parse decodes TOML from r over the defaults, then normalizes and validates
// the result. With strict set, unknown keys are rejected.
func Parse(r io.Reader, strict bool) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(r)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("parse config: %s", strings.TrimSpace(strictErr.String()))
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvePath reports where Load would read the configuration from and
// whether the file exists. NFOG_CONFIG applies when path is empty.
func ResolvePath(path string) (string, bool, error) {
	return resolveConfigPath(path)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		if env := strings.TrimSpace(os.Getenv("NFOG_CONFIG")); env != "" {
			path = env
		}
	}
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// EnsureDirectories creates the cache and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CachePath returns the catalog cache database location.
func (c *Config) CachePath() string {
	return filepath.Join(c.Paths.CacheDir, "catalog.db")
}

// CacheTTL returns how long cached catalog entries stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Catalog.CacheTTLHours) * time.Hour
}

// RequestTimeout returns the per-request HTTP timeout for catalog and
// preview lookups.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Catalog.RequestTimeout) * time.Second
}

// MediaInfoBinary returns the mediainfo executable name or path.
func (c *Config) MediaInfoBinary() string {
	return c.Tools.MediaInfo
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	if c.TMDB.APIKey != "" {
		c.TMDB.APIKey = "********"
	}
	return c
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
