package cache

import (
	"context"
	"log/slog"
	"time"

	"nfog/internal/catalog"
	"nfog/internal/logging"
)

type cachedProvider struct {
	inner  catalog.Provider
	store  *Store
	ttl    time.Duration
	logger *slog.Logger
}

// Wrap returns a provider that answers from store when a fresh entry exists
// and records successful lookups of inner. The wrapped provider keeps the
// inner provider's name.
func Wrap(inner catalog.Provider, store *Store, ttl time.Duration, logger *slog.Logger) catalog.Provider {
	if store == nil {
		return inner
	}
	return &cachedProvider{inner: inner, store: store, ttl: ttl, logger: logging.NewComponentLogger(logger, "catalog-cache")}
}

func (c *cachedProvider) Name() string { return c.inner.Name() }

func (c *cachedProvider) Lookup(ctx context.Context, q catalog.Query) (catalog.Title, error) {
	key := q.Key()
	title, ok, err := c.store.Get(ctx, c.inner.Name(), key, c.ttl)
	if err != nil {
		c.logger.Warn("catalog cache read failed",
			logging.String("provider", c.inner.Name()),
			logging.Error(err),
		)
	}
	if ok {
		c.logger.Debug("catalog cache hit", logging.String("provider", c.inner.Name()), logging.String("key", key))
		return title, nil
	}

	title, err = c.inner.Lookup(ctx, q)
	if err != nil {
		return catalog.Title{}, err
	}
	if err := c.store.Put(ctx, c.inner.Name(), key, title); err != nil {
		c.logger.Warn("catalog cache write failed",
			logging.String("provider", c.inner.Name()),
			logging.Error(err),
		)
	}
	return title, nil
}
