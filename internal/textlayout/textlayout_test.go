package textlayout

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapIndented(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		width  int
		indent string
		want   string
	}{
		{"greedy fill", "The quick brown fox jumps over the lazy dog", 10, "", "The quick\nbrown fox\njumps over\nthe lazy\ndog"},
		{"indent counts toward width", "The quick brown fox jumps over the lazy dog", 12, "  ", "  The quick\n  brown fox\n  jumps over\n  the lazy\n  dog"},
		{"leading whitespace kept", "  23.976 FPS (CFR)", 66, "  ", "    23.976 FPS (CFR)"},
		{"long word broken", "abcdefghij", 4, "", "abcd\nefgh\nij"},
		{"long word fills current line", "ab cdefghij", 5, "", "ab cd\nefghi\nj"},
		{"newlines become spaces", "one\ntwo", 20, "", "one two"},
		{"trailing whitespace dropped", "word   ", 20, "", "word"},
		{"empty text", "", 10, "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WrapIndented(tt.text, tt.width, tt.indent)
			if err != nil {
				t.Fatalf("WrapIndented returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("WrapIndented(%q, %d, %q) = %q, want %q", tt.text, tt.width, tt.indent, got, tt.want)
			}
		})
	}
}

func TestWrapIndentedRejectsNonPositiveWidth(t *testing.T) {
	for _, width := range []int{0, -3} {
		if _, err := WrapIndented("text", width, ""); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("width %d: expected ErrInvalidArgument, got %v", width, err)
		}
	}
}

func TestWrapIndentedIsIdempotent(t *testing.T) {
	text := "Encoded from the UHD Blu-ray with a custom audio sync fix applied to the second reel"
	for _, width := range []int{1, 7, 20, 66} {
		once, err := WrapIndented(text, width, "")
		if err != nil {
			t.Fatalf("first wrap: %v", err)
		}
		twice, err := WrapIndented(once, width, "")
		if err != nil {
			t.Fatalf("second wrap: %v", err)
		}
		if once != twice {
			t.Fatalf("width %d: re-wrap changed output\nonce:  %q\ntwice: %q", width, once, twice)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"ab", 7, "   ab  "},
		{"abcdef", 4, "abcdef"},
	}
	for _, tt := range tests {
		if got := Center(tt.line, tt.width); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
		}
	}
}

func TestCenterWrapped(t *testing.T) {
	got, err := CenterWrapped("ab", 7, 0)
	if err != nil {
		t.Fatalf("CenterWrapped returned error: %v", err)
	}
	if got != "   ab" {
		t.Fatalf("unexpected centered line %q", got)
	}

	text := "Greetings to everyone who keeps the scene alive with quality releases"
	out, err := CenterWrapped(text, 20, 0)
	if err != nil {
		t.Fatalf("CenterWrapped returned error: %v", err)
	}
	wrapped, _ := WrapIndented(text, 20, "")
	outLines := strings.Split(out, "\n")
	wrappedLines := strings.Split(wrapped, "\n")
	if len(outLines) != len(wrappedLines) {
		t.Fatalf("expected %d lines, got %d", len(wrappedLines), len(outLines))
	}
	for i, line := range outLines {
		if Width(line) > 20 {
			t.Fatalf("line %d exceeds width: %q", i, line)
		}
		if strings.TrimSpace(line) != wrappedLines[i] {
			t.Fatalf("line %d = %q, want centered %q", i, line, wrappedLines[i])
		}
	}
}

func TestCenterWrappedRejectsInvalidWidths(t *testing.T) {
	if _, err := CenterWrapped("x", 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero width, got %v", err)
	}
	if _, err := CenterWrapped("x", 10, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for narrow wrap width, got %v", err)
	}
}

func TestGridLayout(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		columns int
		spacing int
		want    string
	}{
		{"short last row", []string{"1", "2", "3"}, 2, 0, "12\n3"},
		{"spacing", []string{"1", "2", "3", "4"}, 2, 1, "1 2\n\n3 4"},
		{"single column", []string{"a", "b"}, 1, 0, "a\nb"},
		{"empty", nil, 3, 2, ""},
		{"empty ignores columns", []string{}, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GridLayout(tt.items, tt.columns, tt.spacing)
			if err != nil {
				t.Fatalf("GridLayout returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("GridLayout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("abc", 6); got != "abc   " {
		t.Fatalf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("PadRight should not truncate, got %q", got)
	}
}
