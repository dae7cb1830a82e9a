package templates

import (
	"strings"

	"nfog/internal/release"
)

type plain struct {
	kind release.Kind
}

// Plain returns the text NFO template for kind.
func Plain(kind release.Kind) Template {
	return plain{kind: kind}
}

func (p plain) Name() string                   { return string(p.kind) }
func (p plain) Kind() release.Kind             { return p.kind }
func (p plain) FileExt() string                { return ExtNFO }
func (p plain) ReleaseName(path string) string { return releaseNameFor(p.kind, path) }

// Render produces the release name, the metadata block, the optional source
// and note blocks and the four track sections.
func (p plain) Render(ctx *release.Context) (Document, error) {
	fields, err := headerFields(p.kind, ctx)
	if err != nil {
		return Document{}, err
	}
	notes := ctx.Annotations()

	var b builder
	b.wrap(ctx.ReleaseName(), ContentWidth, indent)
	b.add("")
	b.add(fields.lines(indent)...)

	if strings.TrimSpace(notes.Source) != "" {
		b.add("", indent+"Source :")
		b.wrap(notes.Source, ContentWidth, indent)
	}
	if strings.TrimSpace(notes.Note) != "" {
		b.add("", indent+"Note :")
		b.wrap(notes.Note, ContentWidth, indent)
	}

	trackSections(&b, ctx)
	return b.document()
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
