// Package textlayout provides the fixed-width text primitives every template
// and artwork composition builds on: greedy word wrapping with an indent
// prefix, centering, left-justification and grid layout.
//
// Widths are measured in terminal display columns (go-runewidth), so wide
// runes used by decorative artwork count as two columns. All functions are pure
// and safe for concurrent use.
package textlayout
