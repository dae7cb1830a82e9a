package templates

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"nfog/internal/release"
)

// Extensions of the written description file.
const (
	ExtNFO    = ".nfo"
	ExtBBCode = ".txt"
)

// Template renders one release shape in one flavour.
type Template interface {
	Name() string
	Kind() release.Kind
	FileExt() string
	// ReleaseName derives the release name from the path of the media file.
	ReleaseName(path string) string
	Render(ctx *release.Context) (Document, error)
}

// Registry is a read-only index of templates by case-insensitive name.
type Registry struct {
	byName map[string]Template
	names  []string
}

// NewRegistry indexes templates, rejecting empty and duplicate names.
func NewRegistry(templates ...Template) (Registry, error) {
	byName := make(map[string]Template, len(templates))
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		if t == nil {
			return Registry{}, fmt.Errorf("template must not be nil")
		}
		name := strings.TrimSpace(t.Name())
		if name == "" {
			return Registry{}, fmt.Errorf("template name must not be empty")
		}
		key := strings.ToLower(name)
		if _, ok := byName[key]; ok {
			return Registry{}, fmt.Errorf("duplicate template %q", name)
		}
		byName[key] = t
		names = append(names, name)
	}
	sort.Strings(names)
	return Registry{byName: byName, names: names}, nil
}

// Builtin returns the registry of all built-in templates.
func Builtin() Registry {
	reg, err := NewRegistry(
		Plain(release.KindMovie),
		Plain(release.KindSeason),
		Plain(release.KindEpisode),
		BBCode(release.KindMovie),
		BBCode(release.KindSeason),
		BBCode(release.KindEpisode),
	)
	if err != nil {
		panic(err)
	}
	return reg
}

// Get returns the template registered under name.
func (r Registry) Get(name string) (Template, bool) {
	if r.byName == nil {
		return nil, false
	}
	t, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names lists registered template names in sorted order.
func (r Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// releaseNameFor applies the naming convention of a release shape: seasons
// are named after their directory, single files after their stem.
func releaseNameFor(kind release.Kind, path string) string {
	if kind == release.KindSeason {
		return filepath.Base(filepath.Dir(filepath.Clean(path)))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
