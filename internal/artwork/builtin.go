package artwork

import (
	"strings"

	"nfog/internal/templates"
)

var classicArt = []string{
	`        _   _  _____  ___    ____`,
	`       | \ | ||  ___|/ _ \  / ___|`,
	`       |  \| || |_  | | | || |  _`,
	`       | |\  ||  _| | |_| || |_| |`,
	`       |_| \_||_|    \___/  \____|`,
}

var framedArt = []string{
	`  ┌────────────────────────────────────────────────────────────────┐`,
	`  │                                                                │`,
	`  │                  n   f   o   g      r e l e a s e              │`,
	`  │                                                                │`,
	`  └────────────────────────────────────────────────────────────────┘`,
}

const footerTag = "{ nfog }"

// Builtin returns the registry of the artworks shipped with nfog plus extra.
func Builtin(extra ...Artwork) (Registry, error) {
	return NewRegistry(append([]Artwork{Classic(), Framed()}, extra...)...)
}

// Classic prepends a heading above the document unchanged.
func Classic() Artwork {
	return Prepend("Classic", classicArt)
}

type prepend struct {
	name string
	art  []string
}

// Prepend returns an artwork placing art above the document. BBCode output
// is additionally centered and padded.
func Prepend(name string, art []string) Artwork {
	return prepend{name: name, art: append([]string(nil), art...)}
}

func (p prepend) Name() string { return p.name }

func (p prepend) Compose(doc templates.Document, frame Frame) (string, error) {
	lines := make([]string, 0, len(p.art)+1+doc.Len())
	lines = append(lines, p.art...)
	lines = append(lines, "")
	lines = append(lines, doc.Lines()...)
	if frame.IsNFO() {
		return strings.Join(lines, "\n"), nil
	}
	return alignCenter(padLines(lines, frame.ReleaseName)), nil
}

type framed struct{}

// Framed boxes the document between a heading and a centered timestamp
// footer.
func Framed() Artwork { return framed{} }

func (framed) Name() string { return "Framed" }

func (framed) Compose(doc templates.Document, frame Frame) (string, error) {
	footer := []string{footerTag, frame.Generated.Format(footerTimeLayout)}

	var lines []string
	if frame.IsNFO() {
		lines = append(lines, framedArt...)
		lines = append(lines, "")
		lines = append(lines, withoutReleaseName(doc)...)
		lines = append(lines, "")
		tail, err := centered(append([]string{"-- --"}, footer...))
		if err != nil {
			return "", err
		}
		lines = append(lines, tail...)
		return strings.Join(lines, "\n"), nil
	}

	lines = append(lines, framedArt...)
	lines = append(lines, "")
	lines = append(lines, doc.Lines()...)
	lines = append(lines, "", "[hr][/hr]", "")
	tail, err := centered(footer)
	if err != nil {
		return "", err
	}
	lines = append(lines, tail...)
	return alignCenter(padLines(lines, frame.ReleaseName)), nil
}

func alignCenter(lines []string) string {
	return "[align=center]\n" + strings.Join(lines, "\n") + "\n[/align]"
}
