package release

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chapter marks a named position in the runtime.
type Chapter struct {
	Start time.Duration
	Label string
}

// Chapters is ordered chronologically.
type Chapters []Chapter

// Timecode renders the canonical "H.MM.SS.mmm" key.
func (c Chapter) Timecode() string {
	h, m, s, ms := split(c.Start)
	return fmt.Sprintf("%d.%02d.%02d.%03d", h, m, s, ms)
}

// Clock renders "HH:MM:SS.mmm" for display.
func (c Chapter) Clock() string {
	h, m, s, ms := split(c.Start)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ParseTimecode reads a timecode whose four numeric fields are separated by
// any of '.', ':' or '_', such as "0.01.23.456" or "_00_01_23_456".
func ParseTimecode(value string) (time.Duration, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == '.' || r == ':' || r == '_'
	})
	if len(fields) != 4 {
		return 0, fmt.Errorf("%w: timecode %q", ErrInvalidArgument, value)
	}
	var parts [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: timecode %q", ErrInvalidArgument, value)
		}
		parts[i] = n
	}
	if parts[1] > 59 || parts[2] > 59 || parts[3] > 999 {
		return 0, fmt.Errorf("%w: timecode %q out of range", ErrInvalidArgument, value)
	}
	return time.Duration(parts[0])*time.Hour +
		time.Duration(parts[1])*time.Minute +
		time.Duration(parts[2])*time.Second +
		time.Duration(parts[3])*time.Millisecond, nil
}

func split(d time.Duration) (h, m, s, ms int64) {
	if d < 0 {
		d = 0
	}
	total := d.Milliseconds()
	ms = total % 1000
	total /= 1000
	s = total % 60
	total /= 60
	m = total % 60
	h = total / 60
	return h, m, s, ms
}
