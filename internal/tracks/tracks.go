package tracks

import "strings"

// Common holds the fields every stream kind shares.
type Common struct {
	StreamOrder    int
	Language       string // raw probe code; empty or "und" when undetermined
	Title          string
	Format         string
	FormatProfile  string
	WritingLibrary string
	BitRate        int64 // bits per second, zero when unknown
	BitRateMode    string
}

// Track is implemented by Video, Audio and Subtitle.
type Track interface {
	Base() Common
	// Codec returns the display codec after shorthand remapping.
	Codec() string
}

// Video describes one video stream.
type Video struct {
	Common
	Width                           int
	Height                          int
	DisplayAspectRatio              float64
	FrameRate                       float64
	FrameRateNum                    int
	FrameRateDen                    int
	FrameRateMode                   string
	ColorSpace                      string
	ChromaSubsampling               string
	BitDepth                        int
	HDRFormat                       string // "/"-separated when several ranges are reported
	TransferCharacteristics         string
	TransferCharacteristicsOriginal string
	ScanType                        string
}

// Audio describes one audio stream.
type Audio struct {
	Common
	ChannelLayout string // space-separated roles, e.g. "L R C LFE Ls Rs"
	ChannelCount  int
}

// Subtitle describes one text or image subtitle stream.
type Subtitle struct {
	Common
}

var audioCodecs = map[string]string{
	"E-AC-3": "DD+",
	"AC-3":   "DD",
}

var subtitleCodecs = map[string]string{
	"UTF-8": "SubRip (SRT)",
}

func (v Video) Base() Common    { return v.Common }
func (a Audio) Base() Common    { return a.Common }
func (s Subtitle) Base() Common { return s.Common }

// Codec returns the video format unchanged.
func (v Video) Codec() string { return v.Format }

// Codec returns the P2P shorthand for Dolby formats and the raw format otherwise.
func (a Audio) Codec() string { return remap(audioCodecs, a.Format) }

// Codec returns "SubRip (SRT)" for UTF-8 text streams and the raw format otherwise.
func (s Subtitle) Codec() string { return remap(subtitleCodecs, s.Format) }

// Channels resolves the weighted channel count of the stream.
func (a Audio) Channels() float64 {
	return Channels(a.ChannelLayout, a.ChannelCount)
}

func remap(table map[string]string, format string) string {
	if mapped, ok := table[strings.TrimSpace(format)]; ok {
		return mapped
	}
	return format
}
