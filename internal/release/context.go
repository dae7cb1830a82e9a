package release

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	xlang "golang.org/x/text/language"

	"nfog/internal/language"
	"nfog/internal/tracks"
)

// Kind is the shape of a release.
type Kind string

const (
	KindMovie   Kind = "Movie"
	KindSeason  Kind = "Season"
	KindEpisode Kind = "Episode"
)

// IDs are the external catalog identifiers of a title.
type IDs struct {
	IMDb string // "tt0487831"
	TMDB string // "movie/14836" or "tv/2490"
	TVDB string // "79216"
}

var (
	imdbIDPattern = regexp.MustCompile(`^tt\d{7,8}$`)
	tmdbIDPattern = regexp.MustCompile(`^(tv|movie)/\d+$`)
	tvdbIDPattern = regexp.MustCompile(`^\d+$`)
)

// Validate checks ID formats. The IMDb ID is required.
func (ids IDs) Validate() error {
	if strings.TrimSpace(ids.IMDb) == "" {
		return fmt.Errorf("%w: imdb id", ErrMissingRequiredField)
	}
	if !imdbIDPattern.MatchString(ids.IMDb) {
		return fmt.Errorf("%w: imdb id %q, expected e.g. tt0487831 or tt10810424", ErrInvalidID, ids.IMDb)
	}
	if ids.TMDB != "" && !tmdbIDPattern.MatchString(ids.TMDB) {
		return fmt.Errorf("%w: tmdb id %q, expected e.g. tv/2490 or movie/14836", ErrInvalidID, ids.TMDB)
	}
	if ids.TVDB != "" && !tvdbIDPattern.MatchString(ids.TVDB) {
		return fmt.Errorf("%w: tvdb id %q, expected e.g. 79216", ErrInvalidID, ids.TVDB)
	}
	return nil
}

// Catalog is the descriptive metadata of the title being released.
type Catalog struct {
	Title        string
	Type         string // catalog title type, e.g. "movie" or "tv series"
	Year         string // "2020" or a range such as "2008-2013"
	Languages    []string
	Season       int
	Episode      int
	EpisodeName  string
	EpisodeCount int // episodes in Season
}

// PreviewImage is one linked thumbnail of a screenshot gallery.
type PreviewImage struct {
	Link  string
	Thumb string
}

// Annotations are the user supplied free-text fields.
type Annotations struct {
	Source        string
	Note          string
	Preview       string
	Banner        string
	PreviewImages []PreviewImage
}

// Input carries everything Build needs.
type Input struct {
	ReleaseName string
	IDs         IDs
	Catalog     Catalog
	Videos      []tracks.Video
	Audios      []tracks.Audio
	Subtitles   []tracks.Subtitle
	Chapters    Chapters
	Annotations Annotations
}

// Context is the validated, read-only render input.
type Context struct {
	releaseName string
	ids         IDs
	catalog     Catalog
	videos      []tracks.Video
	audios      []tracks.Audio
	subtitles   []tracks.Subtitle
	chapters    Chapters
	annotations Annotations
	primary     xlang.Tag
}

// Build validates in and returns an immutable Context.
func Build(in Input) (*Context, error) {
	name := strings.TrimSpace(in.ReleaseName)
	if name == "" {
		return nil, fmt.Errorf("%w: release name", ErrMissingRequiredField)
	}
	if err := in.IDs.Validate(); err != nil {
		return nil, err
	}

	catalog := in.Catalog
	catalog.Languages = slices.Clone(in.Catalog.Languages)
	annotations := in.Annotations
	annotations.PreviewImages = slices.Clone(in.Annotations.PreviewImages)

	ctx := &Context{
		releaseName: name,
		ids:         in.IDs,
		catalog:     catalog,
		videos:      sortedByStream(in.Videos),
		audios:      sortedByStream(in.Audios),
		subtitles:   sortedByStream(in.Subtitles),
		chapters:    slices.Clone(in.Chapters),
		annotations: annotations,
	}
	ctx.primary = PrimaryLanguage(ctx.audios, catalog.Languages)
	return ctx, nil
}

// PrimaryLanguage returns the first determined audio language by stream
// order, else the first usable catalog language, else English.
func PrimaryLanguage(audios []tracks.Audio, catalogLanguages []string) xlang.Tag {
	for _, a := range sortedByStream(audios) {
		if tag, ok := language.Parse(a.Language); ok {
			return tag
		}
	}
	for _, code := range catalogLanguages {
		if tag, ok := language.Parse(code); ok {
			return tag
		}
	}
	return xlang.English
}

func sortedByStream[T tracks.Track](in []T) []T {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b T) int {
		return a.Base().StreamOrder - b.Base().StreamOrder
	})
	return out
}

func (c *Context) ReleaseName() string          { return c.releaseName }
func (c *Context) IDs() IDs                     { return c.ids }
func (c *Context) PrimaryLanguage() xlang.Tag   { return c.primary }
func (c *Context) Videos() []tracks.Video       { return slices.Clone(c.videos) }
func (c *Context) Audios() []tracks.Audio       { return slices.Clone(c.audios) }
func (c *Context) Subtitles() []tracks.Subtitle { return slices.Clone(c.subtitles) }
func (c *Context) Chapters() Chapters           { return slices.Clone(c.chapters) }

// Catalog returns a copy of the catalog metadata.
func (c *Context) Catalog() Catalog {
	out := c.catalog
	out.Languages = slices.Clone(c.catalog.Languages)
	return out
}

// Annotations returns a copy of the user annotations.
func (c *Context) Annotations() Annotations {
	out := c.annotations
	out.PreviewImages = slices.Clone(c.annotations.PreviewImages)
	return out
}

// Summarizer returns a track summarizer localized for the primary language.
func (c *Context) Summarizer() tracks.Summarizer {
	return tracks.NewSummarizer(c.primary)
}
