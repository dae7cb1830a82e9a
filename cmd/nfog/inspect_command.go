package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nfog/internal/language"
	"nfog/internal/media/mediainfo"
	"nfog/internal/release"
	"nfog/internal/tracks"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the tracks and chapters nfog reads from a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			media, err := ctx.prober(cfg).Inspect(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("inspect media: %w", err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				_, err := out.Write(append(media.RawJSON(), '\n'))
				return err
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Type", "Stream", "Language", "Codec", "Summary"},
				trackRows(media),
				[]columnAlignment{alignLeft, alignRight},
			))

			chapters, err := media.Chapters()
			if err != nil {
				return err
			}
			if len(chapters) > 0 {
				rows := make([][]string, 0, len(chapters))
				for i, ch := range chapters {
					rows = append(rows, []string{strconv.Itoa(i + 1), ch.Clock(), ch.Label})
				}
				fmt.Fprintln(out, renderTable([]string{"#", "Start", "Chapter"}, rows, []columnAlignment{alignRight}))
			}

			if ids := media.IDs(); ids != (release.IDs{}) {
				fmt.Fprintf(out, "Tagged IDs: imdb=%s tmdb=%s tvdb=%s\n", dash(ids.IMDb), dash(ids.TMDB), dash(ids.TVDB))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw MediaInfo JSON")
	return cmd
}

func trackRows(media mediainfo.Result) [][]string {
	audios := media.Audios()
	summarizer := tracks.NewSummarizer(release.PrimaryLanguage(audios, nil))

	var rows [][]string
	add := func(kind string, t tracks.Track, summary string, err error) {
		if err != nil {
			summary = "error: " + err.Error()
		}
		base := t.Base()
		rows = append(rows, []string{
			kind,
			strconv.Itoa(base.StreamOrder),
			language.DisplayName(base.Language),
			t.Codec(),
			strings.ReplaceAll(summary, "\n", " "),
		})
	}
	for _, v := range media.Videos() {
		summary, err := summarizer.Video(v)
		add("Video", v, summary, err)
	}
	for _, a := range audios {
		summary, err := summarizer.Audio(a)
		add("Audio", a, summary, err)
	}
	for _, s := range media.Subtitles() {
		summary, err := summarizer.Subtitle(s)
		add("Subtitle", s, summary, err)
	}
	return rows
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
