package artwork

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"nfog/internal/templates"
	"nfog/internal/textlayout"
)

// Width is the nominal width of decorated output.
const Width = templates.DecorativeWidth

const (
	footerTimeLayout = "2006.01.02 15:04"
	releaseLabel     = "Release  : "
)

// Frame describes the output the artwork is composed for.
type Frame struct {
	FileExt     string // extension of the template being decorated
	ReleaseName string
	Generated   time.Time
}

// IsNFO reports whether the frame targets plain NFO output.
func (f Frame) IsNFO() bool {
	return strings.EqualFold(f.FileExt, templates.ExtNFO)
}

// Artwork decorates a rendered document.
type Artwork interface {
	Name() string
	Compose(doc templates.Document, frame Frame) (string, error)
}

// Registry is a read-only index of artworks by case-insensitive name.
type Registry struct {
	byName map[string]Artwork
	names  []string
}

// NewRegistry indexes artworks, rejecting empty and duplicate names.
func NewRegistry(artworks ...Artwork) (Registry, error) {
	byName := make(map[string]Artwork, len(artworks))
	names := make([]string, 0, len(artworks))
	for _, a := range artworks {
		if a == nil {
			return Registry{}, fmt.Errorf("artwork must not be nil")
		}
		name := strings.TrimSpace(a.Name())
		if name == "" {
			return Registry{}, fmt.Errorf("artwork name must not be empty")
		}
		key := strings.ToLower(name)
		if _, ok := byName[key]; ok {
			return Registry{}, fmt.Errorf("duplicate artwork %q", name)
		}
		byName[key] = a
		names = append(names, name)
	}
	sort.Strings(names)
	return Registry{byName: byName, names: names}, nil
}

// Get returns the artwork registered under name.
func (r Registry) Get(name string) (Artwork, bool) {
	if r.byName == nil {
		return nil, false
	}
	a, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Names lists registered artwork names in sorted order.
func (r Registry) Names() []string {
	return append([]string(nil), r.names...)
}

var closingTag = regexp.MustCompile(`\[/[A-Za-z]+\]$`)

// skipPadding reports lines that must not be padded: empty lines, lines
// made only of spaces and lines ending in a markup closing tag.
func skipPadding(line string) bool {
	return strings.Trim(line, " ") == "" || closingTag.MatchString(line)
}

// padLines left-justifies lines to Width, widening label lines such as
// "Release  : name" when the release name does not fit.
func padLines(lines []string, releaseName string) []string {
	labelWidth := max(Width, textlayout.Width(releaseLabel)+textlayout.Width(releaseName))
	out := make([]string, len(lines))
	for i, line := range lines {
		if skipPadding(line) {
			out[i] = line
			continue
		}
		width := Width
		if strings.Contains(line, " : ") {
			width = labelWidth
		}
		out[i] = textlayout.PadRight(line, width)
	}
	return out
}

// centered centers every line in Width columns, wrapping lines wider than
// that.
func centered(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		text, err := textlayout.CenterWrapped(line, Width, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.Split(text, "\n")...)
	}
	return out, nil
}

// withoutReleaseName drops the wrapped release name and the blank line after
// it, which framed art replaces with its own heading.
func withoutReleaseName(doc templates.Document) []string {
	lines := doc.Lines()
	for i, line := range lines {
		if line == "" {
			return lines[i+1:]
		}
	}
	return lines
}
