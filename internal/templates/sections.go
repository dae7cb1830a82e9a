package templates

import (
	"fmt"

	"nfog/internal/release"
)

const (
	videoHeader    = "──┤    Video    ├─────────────────────────────────────────────[ %02d ]──"
	audioHeader    = "──┤    Audio    ├─────────────────────────────────────────────[ %02d ]──"
	subtitleHeader = "──┤    Subtitles     ├────────────────────────────────────────[ %02d ]──"
	chapterHeader  = "──┤    Chapters    ├──────────────────────────────────────────[ %02d ]──"
)

// trackSections writes the Video, Audio, Subtitles and Chapters sections.
func trackSections(b *builder, ctx *release.Context) {
	s := ctx.Summarizer()

	videos := ctx.Videos()
	section(b, videoHeader, len(videos), func() {
		for _, v := range videos {
			summary, err := s.Video(v)
			if err != nil {
				b.fail(err)
				return
			}
			b.summary(summary)
		}
	})

	audios := ctx.Audios()
	section(b, audioHeader, len(audios), func() {
		for _, a := range audios {
			summary, err := s.Audio(a)
			if err != nil {
				b.fail(err)
				return
			}
			b.summary(summary)
		}
	})

	subtitles := ctx.Subtitles()
	section(b, subtitleHeader, len(subtitles), func() {
		for _, sub := range subtitles {
			summary, err := s.Subtitle(sub)
			if err != nil {
				b.fail(err)
				return
			}
			b.summary(summary)
		}
	})

	chapters := ctx.Chapters()
	section(b, chapterHeader, len(chapters), func() {
		for _, ch := range chapters {
			b.wrap(fmt.Sprintf("- %s %s", ch.Clock(), ch.Label), ContentWidth, indent)
		}
	})
}

func section(b *builder, header string, count int, body func()) {
	b.add("", fmt.Sprintf(header, count), "")
	if count == 0 {
		b.add(indent + "--")
		return
	}
	body()
}

// summary wraps each line of a track summary into the content column.
func (b *builder) summary(text string) {
	for _, line := range splitLines(text) {
		b.wrap(line, ContentWidth, indent)
	}
}
