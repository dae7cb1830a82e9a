package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeTMDB()
	c.normalizeOutput()
	c.normalizeDefaults()
	c.normalizeLogging()
	c.Tools.MediaInfo = strings.TrimSpace(c.Tools.MediaInfo)
	if c.Tools.MediaInfo == "" {
		c.Tools.MediaInfo = defaultMediaInfo
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ArtworkDir) == "" {
		c.Paths.ArtworkDir = defaultArtworkDir
	}
	if c.Paths.ArtworkDir, err = expandPath(c.Paths.ArtworkDir); err != nil {
		return fmt.Errorf("paths.artwork_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.Provider = strings.ToLower(strings.TrimSpace(c.Catalog.Provider))
	if c.Catalog.Provider == "" {
		c.Catalog.Provider = defaultCatalogProvider
	}
	if c.Catalog.RequestTimeout == 0 {
		c.Catalog.RequestTimeout = defaultRequestTimeout
	}
	c.Catalog.UserAgent = strings.TrimSpace(c.Catalog.UserAgent)
	if c.Catalog.UserAgent == "" {
		c.Catalog.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeTMDB() {
	if value, ok := os.LookupEnv("TMDB_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.TMDB.APIKey = value
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == sampleTMDBKey {
		c.TMDB.APIKey = ""
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeOutput() {
	c.Output.Encoding = strings.ToLower(strings.TrimSpace(c.Output.Encoding))
	if c.Output.Encoding == "" {
		c.Output.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Artwork = strings.TrimSpace(c.Defaults.Artwork)
	c.Defaults.Source = strings.TrimSpace(c.Defaults.Source)
	c.Defaults.Template = strings.TrimSpace(c.Defaults.Template)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
