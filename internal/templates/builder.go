package templates

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nfog/internal/release"
	"nfog/internal/textlayout"
)

const (
	// ContentWidth is the wrap width of indented metadata and track lines.
	ContentWidth = 66
	// DecorativeWidth is the width of BBCode notes and artwork framing.
	DecorativeWidth = 70

	indent = "  "
)

// builder accumulates the lines of one render. It keeps the first error and
// ignores later writes so render code can stay linear.
type builder struct {
	lines []string
	err   error
}

func (b *builder) add(lines ...string) {
	if b.err != nil {
		return
	}
	b.lines = append(b.lines, lines...)
}

// block adds a multi-line string as separate lines.
func (b *builder) block(text string) {
	b.add(strings.Split(text, "\n")...)
}

func (b *builder) wrap(text string, width int, prefix string) {
	if b.err != nil {
		return
	}
	lines, err := textlayout.Wrap(text, width, prefix)
	if err != nil {
		b.fail(err)
		return
	}
	b.add(lines...)
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) document() (Document, error) {
	if b.err != nil {
		return Document{}, b.err
	}
	return NewDocument(b.lines), nil
}

// displayType renders a catalog type such as "tv series" as "TV Series".
func displayType(kind string) string {
	return strings.ReplaceAll(cases.Title(language.English).String(kind), "Tv", "TV")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "--"
	}
	return v
}

// metadata holds the label/value pairs of the header block in output order.
type metadata struct {
	labels []string
	values []string
}

func (m *metadata) set(label, value string) {
	m.labels = append(m.labels, label)
	m.values = append(m.values, value)
}

// lines pads labels to a shared column: "Title    : Example".
func (m *metadata) lines(prefix string) []string {
	out := make([]string, len(m.labels))
	for i, label := range m.labels {
		out[i] = fmt.Sprintf("%s%-8s : %s", prefix, label, m.values[i])
	}
	return out
}

// headerFields collects the metadata block shared by every flavour.
func headerFields(kind release.Kind, ctx *release.Context) (metadata, error) {
	cat := ctx.Catalog()
	ids := ctx.IDs()
	var m metadata

	m.set("Title", cat.Title)
	typ := cat.Type
	if strings.TrimSpace(typ) == "" {
		typ = string(kind)
	}
	typ = displayType(typ)
	if cat.Year != "" {
		typ += " (" + cat.Year + ")"
	}
	m.set("Type", typ)
	switch kind {
	case release.KindSeason:
		if cat.Season < 1 {
			return metadata{}, fmt.Errorf("season template: %w: season number", release.ErrMissingRequiredField)
		}
		line := strconv.Itoa(cat.Season)
		if cat.EpisodeCount > 0 {
			line += fmt.Sprintf(" (%d Episodes)", cat.EpisodeCount)
		}
		m.set("Season", line)
	case release.KindEpisode:
		if cat.Season < 1 || cat.Episode < 1 {
			return metadata{}, fmt.Errorf("episode template: %w: season and episode number", release.ErrMissingRequiredField)
		}
		line := fmt.Sprintf("%dx%d", cat.Season, cat.Episode)
		if cat.EpisodeName != "" {
			line += ` "` + cat.EpisodeName + `"`
		}
		m.set("Episode", line)
	}
	m.set("IMDb", "https://imdb.com/title/"+ids.IMDb)
	if ids.TMDB != "" {
		m.set("TMDB", "https://themoviedb.org/"+ids.TMDB)
	}
	if ids.TVDB != "" {
		m.set("TVDB", "https://thetvdb.com/?tab=series&id="+ids.TVDB)
	}
	m.set("Preview", orPlaceholder(ctx.Annotations().Preview))
	m.set("Chapters", yesNo(len(ctx.Chapters()) > 0))
	return m, nil
}
