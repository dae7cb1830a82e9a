package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nfog/internal/language"
	"nfog/internal/release"
)

// ErrNotFound indicates the catalog has no entry for the requested IDs.
var ErrNotFound = errors.New("title not found")

// Episode is one entry of a season listing.
type Episode struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Title is the catalog view of a movie or series.
type Title struct {
	IMDbID    string    `json:"imdb_id"`
	TMDBID    string    `json:"tmdb_id,omitempty"`
	TVDBID    string    `json:"tvdb_id,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // lower-case, e.g. "movie", "tv series"
	Year      int       `json:"year,omitempty"`
	EndYear   int       `json:"end_year,omitempty"`
	Languages []string  `json:"languages,omitempty"`
	Season    int       `json:"season,omitempty"`
	Episodes  []Episode `json:"episodes,omitempty"`
}

// IsSeries reports whether the title is a TV series of any kind.
func (t Title) IsSeries() bool {
	return strings.Contains(t.Type, "series")
}

// Years renders "2020" for films and "2008-2013" or "2019-" for series.
func (t Title) Years() string {
	if t.Year == 0 {
		return ""
	}
	start := strconv.Itoa(t.Year)
	if !t.IsSeries() {
		return start
	}
	if t.EndYear == 0 {
		return start + "-"
	}
	if t.EndYear == t.Year {
		return start
	}
	return start + "-" + strconv.Itoa(t.EndYear)
}

// Episode returns episode n of the looked-up season.
func (t Title) Episode(n int) (Episode, bool) {
	for _, ep := range t.Episodes {
		if ep.Number == n {
			return ep, true
		}
	}
	return Episode{}, false
}

// Catalog converts the title to the render context's catalog block.
func (t Title) Catalog(season, episode int) release.Catalog {
	out := release.Catalog{
		Title:     t.Name,
		Type:      t.Type,
		Year:      t.Years(),
		Languages: language.NormalizeList(t.Languages),
		Season:    season,
		Episode:   episode,
	}
	if season > 0 && season == t.Season {
		out.EpisodeCount = len(t.Episodes)
		if ep, ok := t.Episode(episode); ok {
			out.EpisodeName = ep.Title
		}
	}
	return out
}

// Query identifies the title to look up. Season is zero for films.
type Query struct {
	IDs    release.IDs
	Season int
}

// Key returns a stable cache key for the query.
func (q Query) Key() string {
	return fmt.Sprintf("%s|%s|%s|s%d", q.IDs.IMDb, q.IDs.TMDB, q.IDs.TVDB, q.Season)
}

// Provider resolves a Query against one catalog.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, q Query) (Title, error)
}

// Error is a provider failure annotated with the stage it happened in.
type Error struct {
	Provider string
	Stage    string // "fetch", "parse" or "lookup"
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider=%s stage=%s: %v", e.Provider, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
