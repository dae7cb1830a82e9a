// Package release assembles the immutable render context a template
// consumes: catalog metadata, probed tracks, chapters, user annotations and
// the resolved primary language.
//
// Build validates external IDs, orders tracks by stream order and copies
// every slice, so a Context can be shared freely once returned.
package release
