package render

import (
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// Summary aggregates deck statistics for the stats endpoint.
type Summary struct {
	Slides       int            `json:"slides"`
	Sections     int            `json:"sections"`
	TitledSlides int            `json:"titled_slides"`
	Words        int            `json:"words"`
	CodeBlocks   int            `json:"code_blocks"`
	Languages    map[string]int `json:"languages"`
}

// Summarize computes slide, section, word and code-block counts for a deck.
func (r *Renderer) Summarize(d *deck.Deck) Summary {
	sum := Summary{
		Slides:    len(d.Slides),
		Sections:  len(d.Sections()),
		Languages: map[string]int{},
	}

	for _, s := range d.Slides {
		if len(s.TitlePath) > 0 {
			sum.TitledSlides++
		}
		sum.Words += len(strings.Fields(s.Content()))

		for _, cb := range r.CodeBlocks(s) {
			sum.CodeBlocks++
			lang := cb.Language
			if lang == "" {
				lang = "plain"
			}
			sum.Languages[lang]++
		}
	}
	return sum
}
