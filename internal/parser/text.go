package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// TextImporter converts plain text into a deck: each blank-line-separated
// paragraph becomes a vertical slide within a single section.
type TextImporter struct{}

func (p *TextImporter) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	d := &deck.Deck{Title: trimExt(filename, ".txt")}
	for i, para := range paragraphs {
		para = escapeBody(para)
		trans := deck.TransitionVertical
		if i == 0 {
			trans = deck.TransitionNone
		}
		d.Slides = append(d.Slides, &deck.Slide{
			Body:       para,
			Raw:        para,
			Transition: trans,
		})
	}

	return d, nil
}
