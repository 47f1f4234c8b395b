package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dgallion1/deckdown/internal/deck"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns slide markdown bodies into HTML. Code blocks are rendered as
// plain <pre><code> and never interpreted.
type Renderer struct {
	md goldmark.Markdown

	// Stats tracks recent parse and render latencies as separate series.
	Stats *LatencyStats
}

func NewRenderer() *Renderer {
	return &Renderer{
		// GFM tables are needed for CSV-imported table slides.
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		Stats: NewLatencyStats(time.Hour),
	}
}

// SlideHTML renders the presented portion of a slide body as HTML.
func (r *Renderer) SlideHTML(s *deck.Slide) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s.Content()), &buf); err != nil {
		return "", fmt.Errorf("render slide: %w", err)
	}
	return buf.String(), nil
}

// DeckHTML renders a whole deck as a standalone HTML page: one <section
// class="slides"> per horizontal section, nested <section class="slide">
// per slide, speaker notes as <aside>.
func (r *Renderer) DeckHTML(d *deck.Deck) (string, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + html.EscapeString(d.Title) + "</title>\n")
	sb.WriteString("</head>\n<body>\n<div class=\"deck\">\n")

	for _, section := range d.Sections() {
		sb.WriteString("<section class=\"slides\">\n")
		for _, s := range section {
			sb.WriteString("<section class=\"slide\">\n")
			if len(s.TitlePath) > 0 {
				sb.WriteString("<header>" + html.EscapeString(strings.Join(s.TitlePath, " / ")) + "</header>\n")
			}
			body, err := r.SlideHTML(s)
			if err != nil {
				return "", err
			}
			sb.WriteString(body)
			if notes := s.Notes(); notes != "" {
				sb.WriteString("<aside class=\"notes\">" + html.EscapeString(notes) + "</aside>\n")
			}
			sb.WriteString("</section>\n")
		}
		sb.WriteString("</section>\n")
	}

	sb.WriteString("</div>\n</body>\n</html>\n")

	r.Stats.Record(OpRender, time.Since(start))
	return sb.String(), nil
}
