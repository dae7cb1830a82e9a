package tracks

import (
	"strings"
	"unicode"

	"golang.org/x/text/language/display"

	"nfog/internal/language"
)

// genericChannelNames are channel descriptions that never add information to
// a summary line. Float layouts like "2.0" are deliberately not matched.
var genericChannelNames = []string{"mono", "stereo", "surround", "atmos"}

// TrackTitle returns the track's title when it carries information not
// already on the summary line, and "" otherwise.
//
// The title is redundant when it is blank or contains, case-insensitively,
// the language name (in English, in the primary language or in itself), the
// raw language code as a whole word, the format with or without punctuation,
// the shorthand codec, the first word of the writing library, or a generic
// channel description. This is a best-effort heuristic: "Spanish (Latin
// American, SDH)" is dropped even though it says more than the language.
func (s Summarizer) TrackTitle(t Track) string {
	base := t.Base()
	title := strings.TrimSpace(base.Title)
	if title == "" {
		return ""
	}
	lower := strings.ToLower(title)

	if code := strings.ToLower(strings.TrimSpace(base.Language)); code != "" && !language.IsUndetermined(code) {
		for _, word := range strings.FieldsFunc(lower, notAlphaNumeric) {
			if word == code {
				return ""
			}
		}
	}

	for _, hint := range s.titleHints(base, t.Codec()) {
		if hint != "" && strings.Contains(lower, strings.ToLower(hint)) {
			return ""
		}
	}
	return title
}

func (s Summarizer) titleHints(base Common, codec string) []string {
	hints := []string{
		base.Format,
		alphaNumeric(base.Format),
		codec,
		alphaNumeric(strings.ReplaceAll(codec, "+", "P")),
		firstWord(base.WritingLibrary),
	}
	if tag, ok := language.Parse(base.Language); ok {
		hints = append(hints,
			language.EnglishName(tag),
			language.Name(tag, s.primary),
			display.Self.Name(tag),
		)
	}
	return append(hints, genericChannelNames...)
}

func notAlphaNumeric(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func alphaNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if notAlphaNumeric(r) {
			return -1
		}
		return r
	}, s)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
