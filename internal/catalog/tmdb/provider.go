package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nfog/internal/catalog"
)

// Provider adapts a Client to catalog.Provider.
type Provider struct {
	client *Client
}

var _ catalog.Provider = (*Provider)(nil)

// NewProvider wraps client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (*Provider) Name() string { return "tmdb" }

// Lookup resolves the query by TMDB ID when present and through the IMDb
// find endpoint otherwise.
func (p *Provider) Lookup(ctx context.Context, q catalog.Query) (catalog.Title, error) {
	kind, id, err := p.resolve(ctx, q)
	if err != nil {
		return catalog.Title{}, err
	}
	switch kind {
	case "movie":
		return p.movie(ctx, id, q)
	default:
		return p.show(ctx, id, q)
	}
}

func (p *Provider) resolve(ctx context.Context, q catalog.Query) (string, int64, error) {
	if ref := strings.TrimSpace(q.IDs.TMDB); ref != "" {
		kind, rawID, ok := strings.Cut(ref, "/")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if !ok || err != nil || (kind != "movie" && kind != "tv") {
			return "", 0, p.fail("lookup", fmt.Errorf("malformed tmdb id %q", ref))
		}
		return kind, id, nil
	}
	if strings.TrimSpace(q.IDs.IMDb) == "" {
		return "", 0, p.fail("lookup", errors.New("imdb or tmdb id required"))
	}
	found, err := p.client.FindByIMDbID(ctx, q.IDs.IMDb)
	if err != nil {
		return "", 0, p.fail("fetch", err)
	}
	switch {
	case len(found.TVResults) > 0 && (q.Season > 0 || len(found.MovieResults) == 0):
		return "tv", found.TVResults[0].ID, nil
	case len(found.MovieResults) > 0:
		return "movie", found.MovieResults[0].ID, nil
	}
	return "", 0, p.fail("lookup", fmt.Errorf("%w: no tmdb match for %s", catalog.ErrNotFound, q.IDs.IMDb))
}

func (p *Provider) movie(ctx context.Context, id int64, q catalog.Query) (catalog.Title, error) {
	movie, err := p.client.GetMovieDetails(ctx, id)
	if err != nil {
		return catalog.Title{}, p.fail("fetch", err)
	}
	imdbID := movie.IMDbID
	if imdbID == "" {
		imdbID = q.IDs.IMDb
	}
	return catalog.Title{
		IMDbID:    imdbID,
		TMDBID:    fmt.Sprintf("movie/%d", movie.ID),
		TVDBID:    q.IDs.TVDB,
		Name:      movie.Title,
		Type:      "movie",
		Year:      yearOf(movie.ReleaseDate),
		Languages: languageCodes(movie.SpokenLanguages, movie.OriginalLanguage),
	}, nil
}

func (p *Provider) show(ctx context.Context, id int64, q catalog.Query) (catalog.Title, error) {
	show, err := p.client.GetTVDetails(ctx, id)
	if err != nil {
		return catalog.Title{}, p.fail("fetch", err)
	}
	title := catalog.Title{
		IMDbID:    q.IDs.IMDb,
		TMDBID:    fmt.Sprintf("tv/%d", show.ID),
		TVDBID:    q.IDs.TVDB,
		Name:      show.Name,
		Type:      "tv series",
		Year:      yearOf(show.FirstAirDate),
		Languages: languageCodes(show.SpokenLanguages, show.OriginalLanguage),
	}
	if strings.EqualFold(show.Type, "miniseries") {
		title.Type = "tv mini series"
	}
	if !show.InProduction {
		title.EndYear = yearOf(show.LastAirDate)
	}

	if title.IMDbID == "" || title.TVDBID == "" {
		ext, err := p.client.GetTVExternalIDs(ctx, show.ID)
		if err != nil {
			return catalog.Title{}, p.fail("fetch", err)
		}
		if title.IMDbID == "" {
			title.IMDbID = ext.IMDbID
		}
		if title.TVDBID == "" && ext.TVDBID > 0 {
			title.TVDBID = strconv.FormatInt(ext.TVDBID, 10)
		}
	}

	if q.Season > 0 {
		season, err := p.client.GetSeasonDetails(ctx, show.ID, q.Season)
		if err != nil {
			return catalog.Title{}, p.fail("fetch", err)
		}
		title.Season = q.Season
		for _, ep := range season.Episodes {
			if ep.EpisodeNumber > 0 {
				title.Episodes = append(title.Episodes, catalog.Episode{Number: ep.EpisodeNumber, Title: ep.Name})
			}
		}
	}
	return title, nil
}

func (p *Provider) fail(stage string, err error) error {
	return &catalog.Error{Provider: p.Name(), Stage: stage, Err: err}
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func languageCodes(spoken []Language, original string) []string {
	out := make([]string, 0, len(spoken)+1)
	seen := make(map[string]struct{}, len(spoken)+1)
	add := func(code string) {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	add(original)
	for _, l := range spoken {
		add(l.ISO6391)
	}
	return out
}
