package mediainfo

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"nfog/internal/release"
	"nfog/internal/tracks"
)

// Result represents the parsed output from a mediainfo inspection.
type Result struct {
	Ref    string
	tracks []Track
	raw    []byte
}

// Track is one MediaInfo track with its fields kept as text.
type Track struct {
	Type   string
	fields map[string]string
	extra  []field
}

type field struct {
	key   string
	value string
}

type payload struct {
	Media struct {
		Ref   string                       `json:"@ref"`
		Track []map[string]json.RawMessage `json:"track"`
	} `json:"media"`
}

// Inspect executes mediainfo against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mediainfo"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("mediainfo inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "--Output=JSON", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("mediainfo inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("mediainfo inspect: %w", err)
	}
	return Parse(output)
}

// Parse decodes a MediaInfo JSON document.
func Parse(data []byte) (Result, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Result{}, fmt.Errorf("mediainfo parse: %w", err)
	}
	if len(p.Media.Track) == 0 {
		return Result{}, errors.New("mediainfo parse: no tracks in output")
	}
	result := Result{Ref: p.Media.Ref, raw: append([]byte(nil), data...)}
	for _, rawTrack := range p.Media.Track {
		track, err := decodeTrack(rawTrack)
		if err != nil {
			return Result{}, fmt.Errorf("mediainfo parse: %w", err)
		}
		result.tracks = append(result.tracks, track)
	}
	return result, nil
}

func decodeTrack(raw map[string]json.RawMessage) (Track, error) {
	t := Track{fields: make(map[string]string, len(raw))}
	for key, value := range raw {
		if key == "extra" {
			extra, err := decodeExtra(value)
			if err != nil {
				return Track{}, err
			}
			t.extra = extra
			continue
		}
		if text, ok := scalar(value); ok {
			t.fields[key] = text
		}
	}
	t.Type = t.fields["@type"]
	return t, nil
}

// decodeExtra keeps the document order of the extra object, which for the
// Menu track is chapter order.
func decodeExtra(value json.RawMessage) ([]field, error) {
	dec := json.NewDecoder(strings.NewReader(string(value)))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("extra: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("extra: expected object")
	}
	var out []field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("extra: %w", err)
		}
		key, _ := keyTok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("extra %q: %w", key, err)
		}
		if text, ok := scalar(v); ok {
			out = append(out, field{key: key, value: text})
		}
	}
	return out, nil
}

func scalar(value json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// RawJSON returns the raw mediainfo JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Tracks returns every track in document order.
func (r Result) Tracks() []Track {
	return slices.Clone(r.tracks)
}

// Field returns a raw MediaInfo field such as "Format" or "BitRate".
func (t Track) Field(key string) string {
	return strings.TrimSpace(t.fields[key])
}

// Extra returns a value of the track's extra object.
func (t Track) Extra(key string) string {
	for _, f := range t.extra {
		if f.key == key {
			return strings.TrimSpace(f.value)
		}
	}
	return ""
}

func (r Result) ofType(kind string) []Track {
	var out []Track
	for _, t := range r.tracks {
		if strings.EqualFold(t.Type, kind) {
			out = append(out, t)
		}
	}
	return out
}

// General returns the container track.
func (r Result) General() (Track, bool) {
	general := r.ofType("General")
	if len(general) == 0 {
		return Track{}, false
	}
	return general[0], true
}

// Videos converts the video tracks.
func (r Result) Videos() []tracks.Video {
	var out []tracks.Video
	for _, t := range r.ofType("Video") {
		out = append(out, tracks.Video{
			Common:                          t.common(),
			Width:                           parseInt(t.Field("Width")),
			Height:                          parseInt(t.Field("Height")),
			DisplayAspectRatio:              parseFloat(t.Field("DisplayAspectRatio")),
			FrameRate:                       parseFloat(t.Field("FrameRate")),
			FrameRateNum:                    parseInt(t.Field("FrameRate_Num")),
			FrameRateDen:                    parseInt(t.Field("FrameRate_Den")),
			FrameRateMode:                   t.Field("FrameRate_Mode"),
			ColorSpace:                      t.Field("ColorSpace"),
			ChromaSubsampling:               t.Field("ChromaSubsampling"),
			BitDepth:                        parseInt(t.Field("BitDepth")),
			HDRFormat:                       t.Field("HDR_Format"),
			TransferCharacteristics:         t.Field("transfer_characteristics"),
			TransferCharacteristicsOriginal: t.Field("transfer_characteristics_Original"),
			ScanType:                        t.Field("ScanType"),
		})
	}
	return out
}

// Audios converts the audio tracks.
func (r Result) Audios() []tracks.Audio {
	var out []tracks.Audio
	for _, t := range r.ofType("Audio") {
		out = append(out, tracks.Audio{
			Common:        t.common(),
			ChannelLayout: t.Field("ChannelLayout"),
			ChannelCount:  parseInt(t.Field("Channels")),
		})
	}
	return out
}

// Subtitles converts the text tracks.
func (r Result) Subtitles() []tracks.Subtitle {
	var out []tracks.Subtitle
	for _, t := range r.ofType("Text") {
		out = append(out, tracks.Subtitle{Common: t.common()})
	}
	return out
}

// Chapters reads the first Menu track. Labels lose their "xx:" language
// prefix. Entries whose key is not a timecode are ignored.
func (r Result) Chapters() (release.Chapters, error) {
	menus := r.ofType("Menu")
	if len(menus) == 0 {
		return nil, nil
	}
	var out release.Chapters
	for _, f := range menus[0].extra {
		if !isTimecodeKey(f.key) {
			continue
		}
		start, err := release.ParseTimecode(f.key)
		if err != nil {
			return nil, fmt.Errorf("mediainfo chapters: %w", err)
		}
		out = append(out, release.Chapter{Start: start, Label: chapterLabel(f.value)})
	}
	slices.SortStableFunc(out, func(a, b release.Chapter) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out, nil
}

// IDs returns catalog identifiers tagged on the container, if any.
func (r Result) IDs() release.IDs {
	general, ok := r.General()
	if !ok {
		return release.IDs{}
	}
	lookup := func(key string) string {
		if v := general.Extra(key); v != "" {
			return v
		}
		return general.Field(key)
	}
	ids := release.IDs{
		IMDb: strings.TrimPrefix(lookup("IMDB"), "imdb://"),
		TMDB: strings.TrimPrefix(lookup("TMDB"), "tmdb://"),
		TVDB: strings.TrimPrefix(lookup("TVDB"), "tvdb://"),
	}
	return ids
}

func (t Track) common() tracks.Common {
	library := t.Field("Encoded_Library_Name")
	if library == "" {
		library = t.Field("Encoded_Library")
	}
	return tracks.Common{
		StreamOrder:    parseInt(t.Field("StreamOrder")),
		Language:       t.Field("Language"),
		Title:          t.Field("Title"),
		Format:         t.Field("Format"),
		FormatProfile:  t.Field("Format_Profile"),
		WritingLibrary: library,
		BitRate:        int64(parseFloat(t.Field("BitRate"))),
		BitRateMode:    t.Field("BitRate_Mode"),
	}
}

// isTimecodeKey matches MediaInfo's chapter keys such as "_00_01_23_456".
func isTimecodeKey(key string) bool {
	digits := strings.ReplaceAll(key, "_", "")
	if len(digits) == 0 || !strings.HasPrefix(key, "_") {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// chapterLanguagePrefix matches the "en:" or "pt-BR:" tag Matroska muxers
// put in front of chapter names.
var chapterLanguagePrefix = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]+)?:`)

func chapterLabel(value string) string {
	value = chapterLanguagePrefix.ReplaceAllString(strings.TrimSpace(value), "")
	return strings.Trim(value, ": ")
}

// parseInt accepts values like "1920" and "2 / 1" (first value wins).
func parseInt(value string) int {
	return int(parseFloat(value))
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if i := strings.Index(cleaned, "/"); i >= 0 {
		cleaned = strings.TrimSpace(cleaned[:i])
	}
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return 0
}
