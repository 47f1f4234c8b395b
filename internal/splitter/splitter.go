package splitter

import (
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// Config controls slide splitting behavior.
type Config struct {
	WordBudget int // Maximum words per slide body.
	MinWords   int // Continuations below this merge into the previous part.
}

// DefaultConfig returns sensible defaults for presentable slides.
func DefaultConfig() Config {
	return Config{
		WordBudget: 180,
		MinWords:   20,
	}
}

// SplitDeck returns a new deck where oversized slide bodies are split into
// continuation slides stacked vertically beneath the original, each carrying
// the same title path. Slides within budget are passed through untouched.
// This is applied to imported decks only; native deck sources keep their
// authored slide boundaries.
func SplitDeck(d *deck.Deck, cfg Config) *deck.Deck {
	if cfg.WordBudget <= 0 {
		cfg.WordBudget = 180
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = 20
	}

	out := &deck.Deck{Title: d.Title}
	for _, s := range d.Slides {
		if CountWords(s.Body) <= cfg.WordBudget {
			out.Slides = append(out.Slides, s)
			continue
		}

		parts := splitText(s.Body, cfg.WordBudget, cfg.MinWords)
		for i, part := range parts {
			trans := deck.TransitionVertical
			if i == 0 {
				trans = s.Transition
			}
			out.Slides = append(out.Slides, &deck.Slide{
				TitlePath:  s.TitlePath,
				Body:       part,
				Raw:        part,
				Transition: trans,
			})
		}
	}
	return out
}

// splitText breaks text into parts of at most budget words, preferring
// paragraph boundaries, then sentence boundaries within an oversized
// paragraph. A trailing part below minWords merges back into its predecessor.
func splitText(text string, budget, minWords int) []string {
	paragraphs := splitByParagraphs(text)

	var result []string
	var current strings.Builder
	currentWords := 0

	flush := func() {
		if currentWords > 0 {
			result = append(result, current.String())
			current.Reset()
			currentWords = 0
		}
	}

	for _, para := range paragraphs {
		paraWords := CountWords(para)

		if paraWords > budget {
			flush()
			result = append(result, splitBySentences(para, budget)...)
			continue
		}

		if currentWords+paraWords > budget {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		currentWords += paraWords
	}
	flush()

	// Merge a runt final part back into the previous one.
	if n := len(result); n > 1 && CountWords(result[n-1]) < minWords {
		result[n-2] += "\n\n" + result[n-1]
		result = result[:n-1]
	}

	if len(result) == 0 {
		return []string{text}
	}
	return result
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences breaks a large paragraph into sentence-based parts.
func splitBySentences(text string, budget int) []string {
	sentences := splitSentences(text)

	var result []string
	var current strings.Builder
	currentWords := 0

	for _, sent := range sentences {
		sentWords := CountWords(sent)

		if currentWords+sentWords > budget && currentWords > 0 {
			result = append(result, current.String())
			current.Reset()
			currentWords = 0
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentWords += sentWords
	}

	if currentWords > 0 {
		result = append(result, current.String())
	}
	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	return sentences
}
