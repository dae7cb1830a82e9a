package tracks

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	xlang "golang.org/x/text/language"

	"nfog/internal/language"
)

// Summarizer renders track summaries with language names localized for the
// release's primary language.
type Summarizer struct {
	primary xlang.Tag
}

// NewSummarizer returns a summarizer localizing names for primary.
func NewSummarizer(primary xlang.Tag) Summarizer {
	return Summarizer{primary: primary}
}

// Video renders the two-line video summary.
func (s Summarizer) Video(v Video) (string, error) {
	if strings.TrimSpace(v.Format) == "" {
		return "", fmt.Errorf("video stream %d: %w: format", v.StreamOrder, ErrMissingRequiredField)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return "", fmt.Errorf("video stream %d: %w: dimensions", v.StreamOrder, ErrMissingRequiredField)
	}
	dynamicRange, err := DynamicRange(v.HDRFormat, v.TransferCharacteristics, v.TransferCharacteristicsOriginal)
	if err != nil {
		return "", fmt.Errorf("video stream %d: %w", v.StreamOrder, err)
	}

	var first strings.Builder
	first.WriteString("- ")
	first.WriteString(s.languagePrefix(v.Language))
	first.WriteString(v.Codec())
	if profile := strings.TrimSpace(v.FormatProfile); profile != "" {
		first.WriteString(" (" + profile + ")")
	}
	fmt.Fprintf(&first, " %dx%d (%s)", v.Width, v.Height, aspectRatio(v))
	first.WriteString(bitRateClause(v.Common))

	var second []string
	if fps := frameRate(v); fps != "" {
		second = append(second, fps+" FPS"+parenthesized(v.FrameRateMode))
	}
	if color := joinNonEmpty(" ", v.ColorSpace, v.ChromaSubsampling, bitDepth(v.BitDepth)); color != "" {
		second = append(second, color)
	}
	scan := strings.TrimSpace(v.ScanType)
	if scan == "" {
		scan = "Progressive"
	}
	second = append(second, dynamicRange, scan)

	return first.String() + "\n  " + strings.Join(second, ", "), nil
}

// Audio renders the one-line audio summary.
func (s Summarizer) Audio(a Audio) (string, error) {
	if strings.TrimSpace(a.Format) == "" {
		return "", fmt.Errorf("audio stream %d: %w: format", a.StreamOrder, ErrMissingRequiredField)
	}
	channels := a.Channels()
	if channels <= 0 {
		return "", fmt.Errorf("audio stream %d: %w: channels", a.StreamOrder, ErrMissingRequiredField)
	}
	line := "- " + s.languagePrefix(a.Language) + titlePrefix(s.TrackTitle(a)) +
		a.Codec() + " " + FormatChannels(channels) + bitRateClause(a.Common)
	return line, nil
}

// Subtitle renders the one-line subtitle summary.
func (s Summarizer) Subtitle(sub Subtitle) (string, error) {
	if strings.TrimSpace(sub.Format) == "" {
		return "", fmt.Errorf("subtitle stream %d: %w: format", sub.StreamOrder, ErrMissingRequiredField)
	}
	return "- " + s.languagePrefix(sub.Language) + titlePrefix(s.TrackTitle(sub)) + sub.Codec(), nil
}

func (s Summarizer) languagePrefix(code string) string {
	tag, ok := language.Parse(code)
	if !ok {
		return ""
	}
	return language.Name(tag, s.primary) + ", "
}

func titlePrefix(title string) string {
	if title == "" {
		return ""
	}
	return title + ", "
}

var bitRateModes = map[string]string{
	"CBR": "Constant",
	"VBR": "Variable",
}

// bitRateClause renders " @ 8 000 kb/s (Variable)", or nothing when the bit
// rate is unknown.
func bitRateClause(c Common) string {
	if c.BitRate <= 0 {
		return ""
	}
	mode := strings.TrimSpace(c.BitRateMode)
	if long, ok := bitRateModes[mode]; ok {
		mode = long
	}
	return " @ " + FormatBitRate(c.BitRate) + parenthesized(mode)
}

// FormatBitRate renders bits per second the way MediaInfo does: space-grouped
// kb/s below 10 Mb/s and one-decimal Mb/s above.
func FormatBitRate(bps int64) string {
	kbps := int(math.Round(float64(bps) / 1000))
	if kbps < 10000 {
		return humanize.FormatInteger("# ###.", kbps) + " kb/s"
	}
	return strconv.FormatFloat(float64(bps)/1e6, 'f', 1, 64) + " Mb/s"
}

func aspectRatio(v Video) string {
	ratio := v.DisplayAspectRatio
	if ratio <= 0 {
		ratio = float64(v.Width) / float64(v.Height)
	}
	switch {
	case math.Abs(ratio-4.0/3.0) < 0.01:
		return "4:3"
	case math.Abs(ratio-16.0/9.0) < 0.01:
		return "16:9"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64) + ":1"
}

func frameRate(v Video) string {
	rate := v.FrameRate
	if v.FrameRateNum > 0 && v.FrameRateDen > 0 {
		rate = float64(v.FrameRateNum) / float64(v.FrameRateDen)
	}
	if rate <= 0 {
		return ""
	}
	text := strconv.FormatFloat(rate, 'f', 3, 64)
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}

func bitDepth(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strconv.Itoa(depth) + "bps"
}

func parenthesized(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return " (" + value + ")"
}

func joinNonEmpty(sep string, values ...string) string {
	kept := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
