// Package main hosts the nfog CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into calls on the
// internal packages: generating descriptions, inspecting media files,
// listing templates and artwork, editing configuration, and moving settings
// between machines with export bundles. Configuration and logger setup are
// resolved once per invocation in commandContext so subcommands only deal
// with their own flags and output.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through commands or flags.
package main
