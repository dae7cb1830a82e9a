package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nfog/internal/artwork"
	"nfog/internal/catalog"
	"nfog/internal/logging"
	"nfog/internal/media/mediainfo"
	"nfog/internal/output"
	"nfog/internal/release"
	"nfog/internal/templates"
)

// NoArtwork disables decoration when given as the artwork name.
const NoArtwork = "none"

// ErrUnknownTemplate and ErrUnknownArtwork report names missing from the registries.
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownArtwork  = errors.New("unknown artwork")
)

// Prober inspects a media file.
type Prober interface {
	Inspect(ctx context.Context, path string) (mediainfo.Result, error)
}

// ProbeFunc adapts a function to Prober.
type ProbeFunc func(ctx context.Context, path string) (mediainfo.Result, error)

// Inspect calls f.
func (f ProbeFunc) Inspect(ctx context.Context, path string) (mediainfo.Result, error) {
	return f(ctx, path)
}

// Catalog resolves title metadata, falling back across providers.
type Catalog interface {
	Lookup(ctx context.Context, requested string, q catalog.Query) (catalog.Title, string, []catalog.Attempt, error)
}

// PreviewFetcher expands a gallery link into thumbnail pairs.
type PreviewFetcher func(ctx context.Context, pageURL string) ([]release.PreviewImage, error)

// Request is one generate invocation.
type Request struct {
	Template  string
	MediaPath string
	IDs       release.IDs // empty fields fall back to tags in the media file
	Season    int
	Episode   int
	Provider  string
	Artwork   string
	Source    string
	Note      string
	Preview   string
	Banner    string
	Encoding  string
	OutputDir string // empty writes next to the media file
	Overwrite bool
	DryRun    bool // render without writing
}

// Result describes the rendered and written document.
type Result struct {
	ReleaseName string
	Path        string
	Text        string
	Provider    string
	Attempts    []catalog.Attempt
}

// Generator runs the probe, lookup, render and write pipeline.
type Generator struct {
	Templates templates.Registry
	Artworks  artwork.Registry
	Probe     Prober
	Catalog   Catalog
	Previews  PreviewFetcher // optional
	Now       func() time.Time
	Logger    *slog.Logger
}

// Run generates the description for req.
func (g *Generator) Run(ctx context.Context, req Request) (Result, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(g.Logger, "generate"))

	tmpl, ok := g.Templates.Get(req.Template)
	if !ok {
		return Result{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTemplate, req.Template, strings.Join(g.Templates.Names(), ", "))
	}
	art, err := g.artwork(req.Artwork)
	if err != nil {
		return Result{}, err
	}
	if err := checkEpisodeArgs(tmpl.Kind(), req.Season, req.Episode); err != nil {
		return Result{}, err
	}
	if _, _, err := output.LookupEncoding(req.Encoding); err != nil {
		return Result{}, err
	}

	probeStart := time.Now()
	media, err := g.Probe.Inspect(ctx, req.MediaPath)
	if err != nil {
		return Result{}, fmt.Errorf("inspect media: %w", err)
	}
	logger.Debug("media inspected",
		logging.String("path", req.MediaPath),
		logging.Int("tracks", len(media.Tracks())),
		logging.Duration("elapsed", time.Since(probeStart)),
	)

	ids := mergeIDs(req.IDs, media.IDs())
	if err := ids.Validate(); err != nil {
		return Result{}, err
	}

	title, used, attempts, err := g.Catalog.Lookup(ctx, req.Provider, catalog.Query{IDs: ids, Season: req.Season})
	for _, attempt := range attempts {
		if attempt.Err != nil {
			logging.WarnWithContext(logger, "catalog provider failed", "catalog_lookup",
				logging.String("provider", attempt.Provider),
				logging.Error(attempt.Err),
				logging.String(logging.FieldErrorHint, "check the ids and network access, or pick another provider with --provider"),
			)
		}
	}
	if err != nil {
		return Result{}, fmt.Errorf("catalog lookup: %w", err)
	}
	logger.Info("catalog title resolved",
		logging.String("provider", used),
		logging.String("title", title.Name),
		logging.String("year", title.Years()),
	)
	ids = fillIDs(ids, title)

	chapters, err := media.Chapters()
	if err != nil {
		return Result{}, err
	}

	annotations := release.Annotations{
		Source:  req.Source,
		Note:    req.Note,
		Preview: req.Preview,
		Banner:  req.Banner,
	}
	if tmpl.FileExt() == templates.ExtBBCode && g.Previews != nil && strings.TrimSpace(req.Preview) != "" {
		images, err := g.Previews(ctx, req.Preview)
		if err != nil {
			logging.WarnWithContext(logger, "preview gallery unavailable", "preview_fetch",
				logging.String("url", req.Preview),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "the preview link is kept as plain text"),
			)
		}
		annotations.PreviewImages = images
	}

	releaseName := tmpl.ReleaseName(req.MediaPath)
	rctx, err := release.Build(release.Input{
		ReleaseName: releaseName,
		IDs:         ids,
		Catalog:     title.Catalog(req.Season, req.Episode),
		Videos:      media.Videos(),
		Audios:      media.Audios(),
		Subtitles:   media.Subtitles(),
		Chapters:    chapters,
		Annotations: annotations,
	})
	if err != nil {
		return Result{}, err
	}

	doc, err := tmpl.Render(rctx)
	if err != nil {
		return Result{}, fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	text := doc.String()
	if art != nil {
		text, err = art.Compose(doc, artwork.Frame{
			FileExt:     tmpl.FileExt(),
			ReleaseName: releaseName,
			Generated:   g.now(),
		})
		if err != nil {
			return Result{}, fmt.Errorf("artwork %s: %w", art.Name(), err)
		}
	}

	result := Result{
		ReleaseName: releaseName,
		Text:        text,
		Provider:    used,
		Attempts:    attempts,
	}
	if req.DryRun {
		return result, nil
	}
	result.Path = output.Path(req.MediaPath, req.OutputDir, releaseName, tmpl.FileExt())
	if err := output.Write(result.Path, text, req.Encoding, req.Overwrite); err != nil {
		return Result{}, err
	}
	logger.Info("description written",
		logging.String("template", tmpl.Name()),
		logging.String("path", result.Path),
		logging.Int64("bytes", int64(len(text))),
		logging.Bool("overwrite", req.Overwrite),
		logging.String(logging.FieldEventType, "generate_complete"),
	)
	return result, nil
}

func (g *Generator) artwork(name string) (artwork.Artwork, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, NoArtwork) {
		return nil, nil
	}
	art, ok := g.Artworks.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownArtwork, name, strings.Join(g.Artworks.Names(), ", "))
	}
	return art, nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func checkEpisodeArgs(kind release.Kind, season, episode int) error {
	if season < 0 || episode < 0 {
		return fmt.Errorf("%w: season and episode must not be negative", release.ErrInvalidArgument)
	}
	switch kind {
	case release.KindSeason:
		if season == 0 {
			return fmt.Errorf("%w: season number", release.ErrMissingRequiredField)
		}
	case release.KindEpisode:
		if season == 0 || episode == 0 {
			return fmt.Errorf("%w: season and episode numbers", release.ErrMissingRequiredField)
		}
	}
	return nil
}

// mergeIDs prefers explicitly given IDs over those tagged in the file.
func mergeIDs(given, tagged release.IDs) release.IDs {
	out := release.IDs{
		IMDb: strings.TrimSpace(given.IMDb),
		TMDB: strings.TrimSpace(given.TMDB),
		TVDB: strings.TrimSpace(given.TVDB),
	}
	if out.IMDb == "" || out.IMDb == "-" {
		out.IMDb = tagged.IMDb
	}
	if out.TMDB == "" {
		out.TMDB = tagged.TMDB
	}
	if out.TVDB == "" {
		out.TVDB = tagged.TVDB
	}
	return out
}

// fillIDs completes missing IDs from what the provider reported.
func fillIDs(ids release.IDs, title catalog.Title) release.IDs {
	if ids.TMDB == "" {
		ids.TMDB = title.TMDBID
	}
	if ids.TVDB == "" {
		ids.TVDB = title.TVDBID
	}
	return ids
}
