package textlayout

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// ErrInvalidArgument reports a non-positive width or an inconsistent wrap width.
var ErrInvalidArgument = errors.New("invalid argument")

const tabSize = 8

// Width returns the display width of s in columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// WrapIndented wraps text to width columns. A non-empty indent prefixes the
// first and every continuation line and counts toward width. Leading
// whitespace of the first line is kept, trailing whitespace is dropped and
// words longer than a full line are broken.
func WrapIndented(text string, width int, indent string) (string, error) {
	lines, err := Wrap(text, width, indent)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Wrap is WrapIndented returning the individual lines.
func Wrap(text string, width int, indent string) ([]string, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: wrap width %d must be at least 1", ErrInvalidArgument, width)
	}
	if text == "" {
		return nil, nil
	}
	return wrapChunks(splitChunks(normalizeWhitespace(text)), width, indent), nil
}

// normalizeWhitespace expands tabs and turns every other whitespace rune
// (including newlines) into a plain space.
func normalizeWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	col := 0
	for _, r := range text {
		switch {
		case r == '\t':
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
			col = 0
		case unicode.IsSpace(r):
			b.WriteByte(' ')
			col++
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// splitChunks splits text into alternating runs of spaces and non-spaces.
func splitChunks(text string) []string {
	var chunks []string
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || (text[i] == ' ') != (text[i-1] == ' ') {
			chunks = append(chunks, text[start:i])
			start = i
		}
	}
	return chunks
}

func isBlank(chunk string) bool {
	return strings.TrimSpace(chunk) == ""
}

func wrapChunks(chunks []string, width int, indent string) []string {
	avail := width - Width(indent)
	var lines []string

	for len(chunks) > 0 {
		var line []string
		lineWidth := 0

		// Continuation lines never start with whitespace.
		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}

		for len(chunks) > 0 {
			w := Width(chunks[0])
			if lineWidth+w > avail {
				break
			}
			line = append(line, chunks[0])
			lineWidth += w
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && Width(chunks[0]) > avail {
			room := avail - lineWidth
			if avail < 1 {
				room = 1
			}
			head, tail := splitAtWidth(chunks[0], room, lineWidth == 0)
			line = append(line, head)
			chunks[0] = tail
			if tail == "" {
				chunks = chunks[1:]
			}
		}

		for n := len(line); n > 0 && isBlank(line[n-1]); n = len(line) {
			line = line[:n-1]
		}
		if len(line) > 0 {
			lines = append(lines, indent+strings.Join(line, ""))
		}
	}
	return lines
}

// splitAtWidth returns the longest prefix of s that fits in width columns and
// the remainder. With force set at least one rune is taken so wrapping always
// makes progress.
func splitAtWidth(s string, width int, force bool) (string, string) {
	used := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			if i == 0 && force {
				size := len(string(r))
				return s[:size], s[size:]
			}
			return s[:i], s[i:]
		}
		used += w
	}
	return s, ""
}
