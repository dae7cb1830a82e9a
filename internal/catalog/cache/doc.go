// Package cache persists catalog lookups in SQLite so repeated NFO runs for
// the same release do not hit IMDb or TMDB again.
//
// Store owns the database; Wrap decorates any catalog.Provider with a
// read-through cache. Cache failures are logged and never fail a lookup.
package cache
