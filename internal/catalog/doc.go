// Package catalog resolves descriptive title metadata (name, type, years,
// spoken languages and season episode lists) from external catalogs.
//
// Providers implement a single Lookup method and are tried through a
// Registry in fallback order: the requested provider first, then every
// other registered provider. Each attempt is recorded so callers can explain
// why a fallback happened. Subpackages hold the IMDb scraper, the TMDB API
// client and an SQLite response cache that decorates any provider.
package catalog
