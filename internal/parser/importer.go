package parser

import (
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// deckBuilder accumulates slides while an importer walks a structured
// document. Headings open new slides: level 1 starts a new section
// (horizontal), deeper levels stack vertically, and the heading chain becomes
// the slide's title path. Text seen before any heading lands on an untitled
// leading slide.
type deckBuilder struct {
	slides []*deck.Slide
	path   []string
	trans  deck.Transition
	body   strings.Builder
}

func newDeckBuilder() *deckBuilder {
	return &deckBuilder{trans: deck.TransitionNone}
}

// startSlide flushes the current slide and opens a new one for a heading at
// the given level (1-based).
func (b *deckBuilder) startSlide(level int, title string) {
	b.flush()

	if level < 1 {
		level = 1
	}
	if level <= len(b.path) {
		b.path = b.path[:level-1]
	}
	b.path = append(b.path, sanitizeTitle(title))

	if level == 1 {
		b.trans = deck.TransitionHorizontal
	} else {
		b.trans = deck.TransitionVertical
	}
}

// addText appends a paragraph of text to the current slide body.
func (b *deckBuilder) addText(t string) {
	t = escapeBody(strings.TrimSpace(t))
	if t == "" {
		return
	}
	if b.body.Len() > 0 {
		b.body.WriteString("\n\n")
	}
	b.body.WriteString(t)
}

// flush closes the current slide if it has a title or any content.
func (b *deckBuilder) flush() {
	body := b.body.String()
	if len(b.path) == 0 && body == "" {
		return
	}

	titlePath := make([]string, len(b.path))
	copy(titlePath, b.path)
	if len(titlePath) == 0 {
		titlePath = nil
	}

	b.slides = append(b.slides, &deck.Slide{
		TitlePath:  titlePath,
		Body:       body,
		Raw:        body,
		Transition: b.trans,
	})
	b.body.Reset()
	b.trans = deck.TransitionNone
}

// finish flushes the last slide and returns the imported deck.
func (b *deckBuilder) finish(title string) *deck.Deck {
	b.flush()
	d := &deck.Deck{Title: title, Slides: b.slides}
	for i, s := range d.Slides {
		if i == 0 {
			s.Transition = deck.TransitionNone
		} else if s.Transition == deck.TransitionNone {
			s.Transition = deck.TransitionVertical
		}
	}
	if d.Title == "" {
		d.Title = deriveTitle(d)
	}
	return d
}

// sanitizeTitle keeps imported headings encodable as @title directives:
// ":" is the path delimiter and "]" closes the bracket, so neither may
// survive inside a component.
func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(title, ":", " -")
	title = strings.ReplaceAll(title, "]", ")")
	title = strings.ReplaceAll(title, "[", "(")
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}
	return title
}

// escapeBody backslash-escapes imported body lines that would read as deck
// syntax once the slide is encoded and re-parsed: a line that is exactly
// "+++" or "---", or one starting with "@title[". Markdown treats the
// backslash as an escape of the following punctuation, so rendered output
// is unchanged.
func escapeBody(text string) string {
	if !strings.Contains(text, verticalSep) &&
		!strings.Contains(text, horizontalSep) &&
		!strings.Contains(text, directivePrefix) {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		content := strings.TrimSuffix(line, "\r")
		if content == verticalSep || content == horizontalSep || strings.HasPrefix(content, directivePrefix) {
			lines[i] = "\\" + line
		}
	}
	return strings.Join(lines, "\n")
}

// trimExt strips a filename extension for use as a deck title.
func trimExt(filename, ext string) string {
	return strings.TrimSuffix(filename, ext)
}
