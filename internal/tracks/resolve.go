package tracks

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ChannelWeights lists layout roles that do not count as a full channel.
var ChannelWeights = map[string]float64{
	"LFE": 0.1,
}

// Channels sums a space-separated channel layout, counting each role as one
// channel unless ChannelWeights says otherwise. Without a layout the raw
// channel count is used. The result is rounded to one decimal.
func Channels(layout string, count int) float64 {
	roles := strings.Fields(layout)
	if len(roles) == 0 {
		return float64(count)
	}
	var sum float64
	for _, role := range roles {
		if w, ok := ChannelWeights[role]; ok {
			sum += w
			continue
		}
		sum++
	}
	return math.Round(sum*10) / 10
}

// FormatChannels renders a channel count as "5.1" or "2.0".
func FormatChannels(channels float64) string {
	return strconv.FormatFloat(channels, 'f', 1, 64)
}

var rangeLabels = map[string]string{
	"SMPTE ST 2086":       "HDR10",
	"HDR10":               "HDR10",
	"SMPTE ST 2094 App 4": "HDR10+",
	"HDR10+":              "HDR10+",
	"Dolby Vision":        "DV",
}

// DynamicRange maps an HDR format field to its canonical label. Several
// "/"-separated formats map in source order and join with a space, so
// "Dolby Vision / SMPTE ST 2086" becomes "DV HDR10". Without an HDR format
// the stream is "HLG" when either transfer characteristic says so and "SDR"
// otherwise. Unknown HDR tokens return ErrUnmappedRangeToken.
func DynamicRange(hdrFormat, transfer, transferOriginal string) (string, error) {
	var labels []string
	for _, token := range strings.Split(hdrFormat, "/") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		label, ok := rangeLabels[token]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnmappedRangeToken, token)
		}
		labels = append(labels, label)
	}
	if len(labels) > 0 {
		return strings.Join(labels, " "), nil
	}
	if strings.TrimSpace(transfer) == "HLG" || strings.TrimSpace(transferOriginal) == "HLG" {
		return "HLG", nil
	}
	return "SDR", nil
}
