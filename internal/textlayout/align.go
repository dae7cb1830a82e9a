package textlayout

import (
	"fmt"
	"strings"
)

// Center pads line with spaces so it sits in the middle of width columns.
// When the padding is odd the extra space goes left only if width is odd,
// which keeps output identical to the classic str.center placement used by
// existing NFO artwork. Lines at least width wide are returned unchanged.
func Center(line string, width int) string {
	n := Width(line)
	if n >= width {
		return line
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + line + strings.Repeat(" ", margin-left)
}

// PadRight left-justifies line in width columns.
func PadRight(line string, width int) string {
	n := Width(line)
	if n >= width {
		return line
	}
	return line + strings.Repeat(" ", width-n)
}

// CenterWrapped wraps text at wrapWidth (width when zero) and centers every
// resulting line in width columns. Right padding is trimmed.
func CenterWrapped(text string, width, wrapWidth int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("%w: center width %d must be at least 1", ErrInvalidArgument, width)
	}
	if wrapWidth == 0 {
		wrapWidth = width
	}
	if wrapWidth < width {
		return "", fmt.Errorf("%w: wrap width %d is smaller than center width %d", ErrInvalidArgument, wrapWidth, width)
	}
	lines, err := Wrap(text, wrapWidth, "")
	if err != nil {
		return "", err
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(Center(line, width), " ")
	}
	return strings.Join(lines, "\n"), nil
}

// GridLayout places items into rows of columns items, joining cells with
// spacing spaces and separating rows with spacing blank lines.
func GridLayout(items []string, columns, spacing int) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	if columns < 1 {
		return "", fmt.Errorf("%w: grid columns %d must be at least 1", ErrInvalidArgument, columns)
	}
	if spacing < 0 {
		return "", fmt.Errorf("%w: grid spacing %d must not be negative", ErrInvalidArgument, spacing)
	}
	cellSep := strings.Repeat(" ", spacing)
	rows := make([]string, 0, (len(items)+columns-1)/columns)
	for start := 0; start < len(items); start += columns {
		end := min(start+columns, len(items))
		rows = append(rows, strings.Join(items[start:end], cellSep))
	}
	return strings.Join(rows, strings.Repeat("\n", spacing+1)), nil
}
