package mediainfo

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const fixture = `{
  "creatingLibrary": {"name": "MediaInfoLib", "version": "24.01"},
  "media": {
    "@ref": "/media/Example.2020.mkv",
    "track": [
      {"@type": "General", "Format": "Matroska", "extra": {"IMDB": "tt0487831", "TMDB": "movie/14836"}},
      {"@type": "Video", "StreamOrder": "0", "Format": "HEVC", "Format_Profile": "Main 10",
       "BitRate": "24512000", "Width": "3840", "Height": "2160", "DisplayAspectRatio": "1.778",
       "FrameRate_Mode": "CFR", "FrameRate": "23.976", "FrameRate_Num": "24000", "FrameRate_Den": "1001",
       "ColorSpace": "YUV", "ChromaSubsampling": "4:2:0", "BitDepth": "10",
       "HDR_Format": "Dolby Vision / SMPTE ST 2086", "transfer_characteristics": "PQ",
       "Encoded_Library_Name": "x265"},
      {"@type": "Audio", "StreamOrder": "2", "Format": "AC-3", "BitRate": "192000",
       "Channels": "2", "Language": "de", "Title": "Stereo"},
      {"@type": "Audio", "StreamOrder": "1", "Format": "E-AC-3", "BitRate_Mode": "CBR", "BitRate": "640000",
       "Channels": "6", "ChannelLayout": "L R C LFE Ls Rs", "Language": "en"},
      {"@type": "Text", "StreamOrder": "3", "Format": "UTF-8", "Language": "en", "Title": "SDH"},
      {"@type": "Menu", "extra": {
        "_00_00_00_000": "en:Opening",
        "_00_05_10_250": "en:Chapter 2",
        "_01_02_03_004": ":Finale",
        "Encoded_Date": "UTC 2020-01-01"
      }}
    ]
  }
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Ref != "/media/Example.2020.mkv" {
		t.Fatalf("unexpected ref %q", result.Ref)
	}
	if len(result.Tracks()) != 6 {
		t.Fatalf("expected 6 tracks, got %d", len(result.Tracks()))
	}

	videos := result.Videos()
	if len(videos) != 1 {
		t.Fatalf("expected 1 video track, got %d", len(videos))
	}
	v := videos[0]
	if v.Width != 3840 || v.Height != 2160 || v.BitDepth != 10 || v.FrameRateNum != 24000 || v.FrameRateDen != 1001 {
		t.Fatalf("unexpected video numbers: %+v", v)
	}
	if v.HDRFormat != "Dolby Vision / SMPTE ST 2086" || v.WritingLibrary != "x265" || v.BitRate != 24512000 {
		t.Fatalf("unexpected video fields: %+v", v)
	}

	audios := result.Audios()
	if len(audios) != 2 {
		t.Fatalf("expected 2 audio tracks, got %d", len(audios))
	}
	if audios[1].ChannelLayout != "L R C LFE Ls Rs" || audios[1].StreamOrder != 1 || audios[1].BitRateMode != "CBR" {
		t.Fatalf("unexpected audio track: %+v", audios[1])
	}
	if audios[0].ChannelCount != 2 || audios[0].Language != "de" {
		t.Fatalf("unexpected audio track: %+v", audios[0])
	}

	subs := result.Subtitles()
	if len(subs) != 1 || subs[0].Format != "UTF-8" || subs[0].Title != "SDH" {
		t.Fatalf("unexpected subtitles: %+v", subs)
	}
}

func TestChapters(t *testing.T) {
	result, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	chapters, err := result.Chapters()
	if err != nil {
		t.Fatalf("Chapters returned error: %v", err)
	}
	if len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d: %+v", len(chapters), chapters)
	}
	want := []struct {
		start time.Duration
		label string
	}{
		{0, "Opening"},
		{5*time.Minute + 10*time.Second + 250*time.Millisecond, "Chapter 2"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "Finale"},
	}
	for i, w := range want {
		if chapters[i].Start != w.start || chapters[i].Label != w.label {
			t.Fatalf("chapter %d = %+v, want %v %q", i, chapters[i], w.start, w.label)
		}
	}
}

func TestChapterLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en:Opening", "Opening"},
		{"eng:Opening", "Opening"},
		{"pt-BR:Abertura", "Abertura"},
		{":Finale", "Finale"},
		{"Act: One", "Act: One"},
		{"Part 2: The Return", "Part 2: The Return"},
		{"  Chapter 3 ", "Chapter 3"},
	}
	for _, tt := range tests {
		if got := chapterLabel(tt.in); got != tt.want {
			t.Errorf("chapterLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIDs(t *testing.T) {
	result, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ids := result.IDs()
	if ids.IMDb != "tt0487831" || ids.TMDB != "movie/14836" || ids.TVDB != "" {
		t.Fatalf("unexpected ids: %+v", ids)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
	if _, err := Parse([]byte(`{"media":{"track":[]}}`)); err == nil {
		t.Fatal("expected error for empty track list")
	}
}

func TestChaptersWithoutMenu(t *testing.T) {
	result, err := Parse([]byte(`{"media":{"track":[{"@type":"General"}]}}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	chapters, err := result.Chapters()
	if err != nil || len(chapters) != 0 {
		t.Fatalf("expected no chapters, got %v %v", chapters, err)
	}
}

func TestInspectUsesBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "mediainfo")
	script := "#!/bin/sh\ncat <<'EOF'\n" + fixture + "\nEOF\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	result, err := Inspect(context.Background(), stub, "/media/Example.2020.mkv")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if len(result.Videos()) != 1 {
		t.Fatalf("expected parsed result from stub")
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw json to be retained")
	}
	if _, err := Inspect(context.Background(), stub, "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
