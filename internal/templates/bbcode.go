package templates

import (
	"fmt"
	"strings"

	"nfog/internal/release"
	"nfog/internal/textlayout"
)

const (
	previewColumns = 2
	horizontalRule = "[hr][/hr]"
)

type bbcode struct {
	kind release.Kind
}

// BBCode returns the forum description template for kind. It centers an
// optional banner and the preview gallery above an unindented metadata block.
func BBCode(kind release.Kind) Template {
	return bbcode{kind: kind}
}

func (t bbcode) Name() string                   { return "bbcode/" + string(t.kind) }
func (t bbcode) Kind() release.Kind             { return t.kind }
func (t bbcode) FileExt() string                { return ExtBBCode }
func (t bbcode) ReleaseName(path string) string { return releaseNameFor(t.kind, path) }

func (t bbcode) Render(ctx *release.Context) (Document, error) {
	fields, err := headerFields(t.kind, ctx)
	if err != nil {
		return Document{}, err
	}
	notes := ctx.Annotations()

	var b builder
	b.add("[align=center]")
	if banner := strings.TrimSpace(notes.Banner); banner != "" {
		b.add(fmt.Sprintf("[img]%s[/img]", banner), "", horizontalRule, "")
	}
	if len(notes.PreviewImages) > 0 {
		cells := make([]string, len(notes.PreviewImages))
		for i, img := range notes.PreviewImages {
			cells[i] = fmt.Sprintf("[url=%s][img]%s[/img][/url]", img.Link, img.Thumb)
		}
		grid, err := textlayout.GridLayout(cells, previewColumns, 0)
		if err != nil {
			return Document{}, err
		}
		b.block(grid)
	}
	b.add("[/align]")

	var header metadata
	header.set("Release", ctx.ReleaseName())
	header.labels = append(header.labels, fields.labels...)
	header.values = append(header.values, fields.values...)
	header.set("Source", orPlaceholder(notes.Source))
	b.add("")
	b.add(header.lines("")...)

	if strings.TrimSpace(notes.Note) != "" {
		note, err := textlayout.WrapIndented(notes.Note, DecorativeWidth, "")
		if err != nil {
			return Document{}, err
		}
		b.add("")
		b.block("[note]" + note + "[/note]")
	}
	b.add("", horizontalRule)

	trackSections(&b, ctx)
	return b.document()
}
