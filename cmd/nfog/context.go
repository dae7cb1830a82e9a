package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"nfog/internal/catalog"
	"nfog/internal/catalog/cache"
	"nfog/internal/catalog/imdb"
	"nfog/internal/catalog/tmdb"
	"nfog/internal/config"
	"nfog/internal/generate"
	"nfog/internal/logging"
	"nfog/internal/media/mediainfo"
	"nfog/internal/preview"
	"nfog/internal/release"
)

const logFileName = "nfog.log"

// catalogFactory builds the catalog used by generate. The returned function
// releases resources such as the cache database.
type catalogFactory func(cfg *config.Config, logger *slog.Logger) (generate.Catalog, func() error, error)

type commandContext struct {
	configFlag   string
	logLevelFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce  sync.Once
	logger      *slog.Logger
	loggerClose func() error
	loggerErr   error

	// Collaborators, replaced in tests.
	probe       generate.Prober
	openCatalog catalogFactory
	previews    generate.PreviewFetcher
	now         func() time.Time
}

func newCommandContext() *commandContext {
	return &commandContext{
		openCatalog: openCatalog,
		now:         time.Now,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// resolvedConfigPath returns the config file location in effect, whether or
// not the file exists yet.
func (c *commandContext) resolvedConfigPath() (string, error) {
	path, _, err := config.ResolvePath(strings.TrimSpace(c.configFlag))
	return path, err
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if override := strings.TrimSpace(c.logLevelFlag); override != "" {
			level = override
		}
		paths := []string{"stderr"}
		if cfg.Paths.LogDir != "" {
			paths = append(paths, filepath.Join(cfg.Paths.LogDir, logFileName))
		}
		logger, closeFn, err := logging.New(logging.Options{
			Level:       level,
			Format:      cfg.Logging.Format,
			OutputPaths: paths,
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
		c.loggerClose = closeFn
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) close() error {
	if c.loggerClose == nil {
		return nil
	}
	closeFn := c.loggerClose
	c.loggerClose = nil
	return closeFn()
}

func (c *commandContext) prober(cfg *config.Config) generate.Prober {
	if c.probe != nil {
		return c.probe
	}
	binary := cfg.MediaInfoBinary()
	return generate.ProbeFunc(func(ctx context.Context, path string) (mediainfo.Result, error) {
		return mediainfo.Inspect(ctx, binary, path)
	})
}

func (c *commandContext) previewFetcher(cfg *config.Config) generate.PreviewFetcher {
	if c.previews != nil {
		return c.previews
	}
	client := &http.Client{Timeout: cfg.RequestTimeout()}
	userAgent := cfg.Catalog.UserAgent
	return func(ctx context.Context, pageURL string) ([]release.PreviewImage, error) {
		return preview.Fetch(ctx, client, pageURL, userAgent)
	}
}

// openCatalog registers IMDb, then TMDB when an API key is configured, each
// behind the lookup cache when it is enabled.
func openCatalog(cfg *config.Config, logger *slog.Logger) (generate.Catalog, func() error, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout()}
	providers := []catalog.Provider{
		imdb.New(imdb.WithHTTPClient(client), imdb.WithUserAgent(cfg.Catalog.UserAgent)),
	}
	if key := strings.TrimSpace(cfg.TMDB.APIKey); key != "" {
		tc, err := tmdb.New(key, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithHTTPClient(client))
		if err != nil {
			return nil, nil, fmt.Errorf("tmdb client: %w", err)
		}
		providers = append(providers, tmdb.NewProvider(tc))
	}

	closeFn := func() error { return nil }
	if cfg.Catalog.CacheEnabled {
		store, err := cache.Open(cfg.CachePath())
		if err != nil {
			logging.WarnWithContext(logger, "catalog cache unavailable", "cache_open",
				logging.String("path", cfg.CachePath()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "lookups continue uncached; remove the cache file if it is corrupt"),
			)
		} else {
			for i, p := range providers {
				providers[i] = cache.Wrap(p, store, cfg.CacheTTL(), logger)
			}
			closeFn = store.Close
		}
	}

	reg, err := catalog.NewRegistry(providers...)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return reg, closeFn, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
