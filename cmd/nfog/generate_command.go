package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nfog/internal/artwork"
	"nfog/internal/config"
	"nfog/internal/generate"
	"nfog/internal/logging"
	"nfog/internal/release"
	"nfog/internal/templates"
)

type generateOptions struct {
	tmdb      string
	tvdb      string
	artwork   string
	source    string
	note      string
	preview   string
	banner    string
	encoding  string
	provider  string
	outputDir string
	overwrite bool
	stdout    bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <template> <file> <imdb-id|-> [season] [episode]",
		Short: "Render a release description for a media file",
		Long: `Render a release description for a media file and write it next to the
file, named after the release.

Pass "-" as the template to use defaults.template from the configuration, and
"-" as the IMDb ID to read the ID tagged in the media file.`,
		Example: `  nfog generate Movie Example.2020.1080p.mkv tt0487831 --source BluRay
  nfog generate bbcode/Season Show.S01/Show.S01E01.mkv tt10810424 1 --artwork Framed
  nfog generate Episode Show.S01E02.mkv - 1 2 --tmdb tv/2490`,
		Args: cobra.RangeArgs(3, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := buildGenerateRequest(cfg, cmd, args, opts)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			arts, err := loadArtworks(cfg)
			if err != nil {
				return err
			}
			cat, closeCatalog, err := ctx.openCatalog(cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeCatalog(); cerr != nil {
					logger.Warn("close catalog cache", logging.Error(cerr))
				}
			}()

			gen := &generate.Generator{
				Templates: templates.Builtin(),
				Artworks:  arts,
				Probe:     ctx.prober(cfg),
				Catalog:   cat,
				Previews:  ctx.previewFetcher(cfg),
				Now:       ctx.now,
				Logger:    logger,
			}

			runCtx := logging.WithCorrelationID(cmd.Context(), uuid.NewString())
			result, err := gen.Run(runCtx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.stdout {
				fmt.Fprintln(out, result.Text)
				return nil
			}
			fmt.Fprintf(out, "Generated NFO for %s\n", result.ReleaseName)
			fmt.Fprintf(out, " + Saved to: %s\n", result.Path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tmdb, "tmdb", "", "TMDB ID such as movie/14836 or tv/2490")
	flags.StringVar(&opts.tvdb, "tvdb", "", "TVDB ID such as 79216")
	flags.StringVarP(&opts.artwork, "artwork", "a", "", `Artwork to decorate the output with ("none" disables the configured default)`)
	flags.StringVarP(&opts.source, "source", "s", "", "Source of the release, e.g. BluRay or WEB-DL")
	flags.StringVarP(&opts.note, "note", "n", "", "Free-form note")
	flags.StringVarP(&opts.preview, "preview", "p", "", "Screenshot gallery link or preview text")
	flags.StringVar(&opts.banner, "banner", "", "Banner image URL for BBCode output")
	flags.StringVarP(&opts.encoding, "encoding", "e", "", "Text encoding of the written file, e.g. utf-8 or cp437")
	flags.StringVar(&opts.provider, "provider", "", "Catalog provider to query first (imdb or tmdb)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory to write into instead of the media file's directory")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace an existing description file")
	flags.BoolVar(&opts.stdout, "stdout", false, "Print the description instead of writing a file")
	return cmd
}

// buildGenerateRequest merges positional arguments, flags and configured
// defaults. Flags win over defaults.
func buildGenerateRequest(cfg *config.Config, cmd *cobra.Command, args []string, opts generateOptions) (generate.Request, error) {
	templateName := strings.TrimSpace(args[0])
	if templateName == "-" || templateName == "" {
		templateName = strings.TrimSpace(cfg.Defaults.Template)
		if templateName == "" {
			return generate.Request{}, fmt.Errorf("no template given and defaults.template is not set")
		}
	}

	req := generate.Request{
		Template:  templateName,
		MediaPath: args[1],
		IDs: release.IDs{
			IMDb: strings.TrimSpace(args[2]),
			TMDB: strings.TrimSpace(opts.tmdb),
			TVDB: strings.TrimSpace(opts.tvdb),
		},
		Provider:  cfg.Catalog.Provider,
		Artwork:   cfg.Defaults.Artwork,
		Source:    cfg.Defaults.Source,
		Note:      opts.note,
		Preview:   opts.preview,
		Banner:    opts.banner,
		Encoding:  cfg.Output.Encoding,
		OutputDir: opts.outputDir,
		Overwrite: cfg.Output.Overwrite,
		DryRun:    opts.stdout,
	}

	var err error
	if len(args) > 3 {
		if req.Season, err = parsePositive("season", args[3]); err != nil {
			return generate.Request{}, err
		}
	}
	if len(args) > 4 {
		if req.Episode, err = parsePositive("episode", args[4]); err != nil {
			return generate.Request{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		req.Provider = opts.provider
	}
	if flags.Changed("artwork") {
		req.Artwork = opts.artwork
	}
	if flags.Changed("source") {
		req.Source = opts.source
	}
	if flags.Changed("encoding") {
		req.Encoding = opts.encoding
	}
	if flags.Changed("overwrite") {
		req.Overwrite = opts.overwrite
	}
	if req.OutputDir != "" {
		dir, err := config.ExpandPath(req.OutputDir)
		if err != nil {
			return generate.Request{}, fmt.Errorf("resolve output dir: %w", err)
		}
		req.OutputDir = dir
	}
	return req, nil
}

func parsePositive(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", release.ErrInvalidArgument, name, value)
	}
	return n, nil
}

// loadArtworks returns the built-in artwork plus the files in the configured
// artwork directory.
func loadArtworks(cfg *config.Config) (artwork.Registry, error) {
	extra, err := artwork.LoadDir(cfg.Paths.ArtworkDir)
	if err != nil {
		return artwork.Registry{}, fmt.Errorf("load artwork: %w", err)
	}
	return artwork.Builtin(extra...)
}
