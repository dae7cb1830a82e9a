// Package config loads, normalizes, and validates nfog configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the TMDB_API_KEY environment fallback. Edits made
// through the CLI go through the dotted-key helpers in edit.go, which
// validate the resulting document and write it under a file lock.
package config
