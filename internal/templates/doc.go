// Package templates renders a release.Context into the ordered lines of an
// NFO or BBCode description.
//
// Templates are looked up by name in a Registry instead of being loaded from
// user code. Each Render call builds its own line buffer and returns an
// immutable Document, or an error and no document at all.
package templates
