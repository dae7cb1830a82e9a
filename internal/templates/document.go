package templates

import (
	"slices"
	"strings"
)

// Document is a rendered description. It is never modified after Render
// returns it.
type Document struct {
	lines []string
}

// NewDocument returns a document holding a copy of lines.
func NewDocument(lines []string) Document {
	return Document{lines: slices.Clone(lines)}
}

// Lines returns a copy of the document's lines.
func (d Document) Lines() []string { return slices.Clone(d.lines) }

// Len reports the number of lines.
func (d Document) Len() int { return len(d.lines) }

// String joins the lines with newlines.
func (d Document) String() string { return strings.Join(d.lines, "\n") }
