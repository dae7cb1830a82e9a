// Package generate wires the media probe, catalog lookup, templates, artwork
// and output writer into the single pipeline behind `nfog generate`.
//
// Collaborators are injected so the CLI can supply real implementations and
// tests can supply stubs.
package generate
