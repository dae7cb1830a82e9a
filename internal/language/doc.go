// Package language provides unified language code normalization and display
// names for track summaries.
//
// Codes from media probes and catalogs arrive as ISO 639-1, ISO 639-2 (both
// terminology and bibliographic forms), BCP 47 tags or "und". Everything is
// normalized to golang.org/x/text tags here so callers never parse codes
// themselves. Display names are localized relative to a release's primary
// language through x/text/language/display, falling back to English.
package language
