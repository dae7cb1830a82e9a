package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nfog/internal/artwork"
	"nfog/internal/templates"
)

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "templates",
		Short:       "List the available templates",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := templates.Builtin()
			rows := make([][]string, 0, len(reg.Names()))
			for _, name := range reg.Names() {
				t, _ := reg.Get(name)
				rows = append(rows, []string{t.Name(), string(t.Kind()), t.FileExt()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Template", "Release", "Extension"}, rows, nil))
			return nil
		},
	}
}

func newArtworkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artwork",
		Short: "List the available artwork",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			user, err := artwork.LoadDir(cfg.Paths.ArtworkDir)
			if err != nil {
				return fmt.Errorf("load artwork: %w", err)
			}
			reg, err := artwork.Builtin(user...)
			if err != nil {
				return err
			}
			isUser := make(map[string]bool, len(user))
			for _, a := range user {
				isUser[strings.ToLower(a.Name())] = true
			}

			rows := make([][]string, 0, len(reg.Names()))
			for _, name := range reg.Names() {
				origin := "built-in"
				if isUser[strings.ToLower(name)] {
					origin = "user"
				}
				def := ""
				if strings.EqualFold(name, cfg.Defaults.Artwork) {
					def = "yes"
				}
				rows = append(rows, []string{name, origin, def})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Artwork", "Origin", "Default"}, rows, nil))
			fmt.Fprintf(out, "User artwork directory: %s\n", cfg.Paths.ArtworkDir)
			return nil
		},
	}
}
