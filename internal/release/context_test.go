package release

import (
	"errors"
	"testing"
	"time"

	"nfog/internal/tracks"
)

func validInput() Input {
	return Input{
		ReleaseName: "Example.2020.1080p.BluRay.x264-GRP",
		IDs:         IDs{IMDb: "tt0487831"},
		Catalog:     Catalog{Title: "Example", Type: "movie", Year: "2020", Languages: []string{"en"}},
	}
}

func TestIDsValidate(t *testing.T) {
	tests := []struct {
		name string
		ids  IDs
		want error
	}{
		{"valid seven digits", IDs{IMDb: "tt0487831"}, nil},
		{"valid eight digits with extras", IDs{IMDb: "tt10810424", TMDB: "tv/2490", TVDB: "79216"}, nil},
		{"missing imdb", IDs{}, ErrMissingRequiredField},
		{"bad imdb", IDs{IMDb: "0487831"}, ErrInvalidID},
		{"bad tmdb", IDs{IMDb: "tt0487831", TMDB: "2490"}, ErrInvalidID},
		{"bad tvdb", IDs{IMDb: "tt0487831", TVDB: "abc"}, ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ids.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuildRequiresReleaseName(t *testing.T) {
	in := validInput()
	in.ReleaseName = "  "
	if _, err := Build(in); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestBuildCopiesInputs(t *testing.T) {
	in := validInput()
	in.Audios = []tracks.Audio{{Common: tracks.Common{Format: "AAC", Language: "en"}, ChannelCount: 2}}
	in.Annotations.PreviewImages = []PreviewImage{{Link: "a", Thumb: "b"}}
	ctx, err := Build(in)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	in.Audios[0].Format = "FLAC"
	in.Catalog.Languages[0] = "fr"
	in.Annotations.PreviewImages[0].Link = "changed"

	if got := ctx.Audios()[0].Format; got != "AAC" {
		t.Fatalf("context observed caller mutation: %q", got)
	}
	if got := ctx.Catalog().Languages[0]; got != "en" {
		t.Fatalf("catalog languages mutated: %q", got)
	}
	if got := ctx.Annotations().PreviewImages[0].Link; got != "a" {
		t.Fatalf("preview images mutated: %q", got)
	}

	audios := ctx.Audios()
	audios[0].Format = "DTS"
	if got := ctx.Audios()[0].Format; got != "AAC" {
		t.Fatalf("accessor leaked internal slice: %q", got)
	}
}

func TestBuildSortsTracksByStreamOrder(t *testing.T) {
	in := validInput()
	in.Audios = []tracks.Audio{
		{Common: tracks.Common{StreamOrder: 3, Format: "AAC", Language: "de"}},
		{Common: tracks.Common{StreamOrder: 1, Format: "AC-3", Language: "und"}},
		{Common: tracks.Common{StreamOrder: 2, Format: "DTS", Language: "ja"}},
	}
	ctx, err := Build(in)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	audios := ctx.Audios()
	if audios[0].Format != "AC-3" || audios[1].Format != "DTS" || audios[2].Format != "AAC" {
		t.Fatalf("unexpected order: %+v", audios)
	}
	if ctx.PrimaryLanguage().String() != "ja" {
		t.Fatalf("expected japanese primary language, got %s", ctx.PrimaryLanguage())
	}
}

func TestPrimaryLanguageFallbacks(t *testing.T) {
	undetermined := []tracks.Audio{{Common: tracks.Common{Language: "und"}}}
	if got := PrimaryLanguage(undetermined, []string{"fr", "en"}); got.String() != "fr" {
		t.Fatalf("expected catalog fallback french, got %s", got)
	}
	if got := PrimaryLanguage(nil, nil); got.String() != "en" {
		t.Fatalf("expected english default, got %s", got)
	}
	if got := PrimaryLanguage(nil, []string{"und", "ger"}); got.String() != "de" {
		t.Fatalf("expected german, got %s", got)
	}
}

func TestChapterTimecodes(t *testing.T) {
	ch := Chapter{Start: time.Hour + 2*time.Minute + 3*time.Second + 456*time.Millisecond, Label: "Intro"}
	if got := ch.Timecode(); got != "1.02.03.456" {
		t.Fatalf("Timecode = %q", got)
	}
	if got := ch.Clock(); got != "01:02:03.456" {
		t.Fatalf("Clock = %q", got)
	}
}

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"_00_01_23_456", time.Minute + 23*time.Second + 456*time.Millisecond},
		{"1.02.03.004", time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond},
		{"00:00:10.000", 10 * time.Second},
	}
	for _, tt := range tests {
		got, err := ParseTimecode(tt.in)
		if err != nil {
			t.Fatalf("ParseTimecode(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTimecode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "1.2.3", "00.61.00.000", "aa.bb.cc.ddd"} {
		if _, err := ParseTimecode(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("ParseTimecode(%q) expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}
