package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nfog/internal/config"
	"nfog/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(cmd.Context(), []deps.Requirement{deps.MediaInfo(cfg.MediaInfoBinary())})

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				if !s.Available {
					state = "missing"
				}
				rows = append(rows, []string{s.Name, s.Command, state, dash(s.Version), dash(s.Detail)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Version", "Detail"}, rows, nil))

			path, _ := ctx.resolvedConfigPath()
			fmt.Fprintf(out, "Config: %s\n", path)
			fmt.Fprintf(out, "Catalog providers: %s\n", strings.Join(catalogProviders(cfg), ", "))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, s := range missing {
					names = append(names, s.Name)
				}
				return fmt.Errorf("missing required tools: %s (set tools.* in the config or install them)", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func catalogProviders(cfg *config.Config) []string {
	providers := []string{"imdb"}
	if strings.TrimSpace(cfg.TMDB.APIKey) != "" {
		providers = append(providers, "tmdb")
	} else {
		providers = append(providers, "tmdb (disabled: no api key)")
	}
	return providers
}
