package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nfog/internal/bundle"
	"nfog/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Bundle the configuration and user artwork into an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			configPath, err := ctx.resolvedConfigPath()
			if err != nil {
				return err
			}
			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve export dir: %w", err)
			}
			b, err := bundle.Collect(configPath, cfg.Paths.ArtworkDir, ctx.now())
			if err != nil {
				return err
			}
			path, err := bundle.Export(b, dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if b.Config != "" {
				fmt.Fprintln(out, "Exported Configuration")
			}
			for _, name := range b.Names() {
				fmt.Fprintf(out, "Exported Artwork: %s\n", name)
			}
			fmt.Fprintf(out, " + Saved to: %s\n", path)
			return nil
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "import <file>",
		Short:       "Install the configuration and artwork from an export file",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve bundle path: %w", err)
			}
			b, err := bundle.Open(path)
			if err != nil {
				return err
			}
			configPath, err := ctx.resolvedConfigPath()
			if err != nil {
				return err
			}
			artworkDir, err := importArtworkDir(ctx, b)
			if err != nil {
				return err
			}
			if err := bundle.Apply(b, configPath, artworkDir); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(b.Config) != "" {
				fmt.Fprintln(out, "Imported Configuration")
			}
			for _, name := range b.Names() {
				fmt.Fprintf(out, "Imported Artwork: %s\n", name)
			}
			return nil
		},
	}
}

// importArtworkDir is the artwork directory of the bundled configuration
// when there is one, otherwise that of the current configuration.
func importArtworkDir(ctx *commandContext, b bundle.Bundle) (string, error) {
	if strings.TrimSpace(b.Config) != "" {
		cfg, err := config.Parse(strings.NewReader(b.Config), true)
		if err != nil {
			return "", fmt.Errorf("bundled config: %w", err)
		}
		return cfg.Paths.ArtworkDir, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Paths.ArtworkDir, nil
}
