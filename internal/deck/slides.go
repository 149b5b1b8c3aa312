package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Slide is one preview card derived from the editor text. This is a local
// approximation of the deck; the authoritative artifact comes from the
// generation pipeline.
type Slide struct {
	Title string
	Body  string
}

var blockBoundary = regexp.MustCompile(`\n[ \t]*\n+`)

// Split segments editor text into slides on blank-line boundaries. Within a
// block the first line becomes the title (synthesized as "Slide N" when the
// block starts blank) and the remaining lines join into the body. Empty or
// whitespace-only text yields no slides.
func Split(text string) []Slide {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, " \t\n")
	if text == "" {
		return nil
	}

	blocks := blockBoundary.Split(text, -1)
	slides := make([]Slide, 0, len(blocks))
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		title := strings.TrimSpace(lines[0])
		if title == "" {
			title = fmt.Sprintf("Slide %d", i+1)
		}
		body := ""
		if len(lines) > 1 {
			body = strings.Join(lines[1:], "\n")
		}
		slides = append(slides, Slide{Title: title, Body: body})
	}
	return slides
}
