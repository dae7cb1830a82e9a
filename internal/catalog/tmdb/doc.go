// Package tmdb provides the minimal TMDB API client used for catalog
// lookups.
//
// It resolves IMDb IDs through the find endpoint, reads movie and TV details,
// season episode lists and TV external IDs, and exposes the result as a
// catalog.Provider. Options allow tests to supply custom HTTP clients without
// modifying production code.
package tmdb
