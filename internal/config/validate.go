package config

import (
	"errors"
	"fmt"

	"nfog/internal/output"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if _, _, err := output.LookupEncoding(c.Output.Encoding); err != nil {
		return fmt.Errorf("output.encoding: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Provider {
	case "imdb", "tmdb":
	default:
		return fmt.Errorf("catalog.provider %q must be imdb or tmdb", c.Catalog.Provider)
	}
	return ensurePositiveMap(map[string]int{
		"catalog.request_timeout": c.Catalog.RequestTimeout,
	}, map[string]int{
		"catalog.cache_ttl_hours": c.Catalog.CacheTTLHours,
	})
}

func (c *Config) validateTMDB() error {
	if c.Catalog.Provider == "tmdb" && c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/nfog/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required when catalog.provider is tmdb. Set TMDB_API_KEY env var or edit %s (create with 'nfog config init')", defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func ensurePositiveMap(positive, nonNegative map[string]int) error {
	for key, value := range positive {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	for key, value := range nonNegative {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}
