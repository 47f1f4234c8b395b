package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/deckdown/internal/deck"
)

// ParseError reports a malformed @title directive. The parser does not
// recover: no partial deck is returned alongside it.
type ParseError struct {
	Slide     int    // Zero-based index of the offending slide.
	Directive string // Raw directive line as it appeared in the source.
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("slide %d: %s: %q", e.Slide, e.Reason, e.Directive)
}

const (
	directivePrefix = "@title["
	verticalSep     = "+++"
	horizontalSep   = "---"
)

// segment is one verbatim slice of the source between separator lines.
type segment struct {
	raw string // Segment text, byte-exact.
	sep string // Separator line (with terminator) that introduced it, "" for the first.
}

// ParseDeck converts a native deck source into a Deck. The source is scanned
// top to bottom once: a line that is exactly "+++" or "---" (a trailing CR is
// tolerated) ends the current slide segment. Each segment whose first line is
// a @title directive gets its bracket contents split on ":" as the title
// path; everything after the directive line is the body, preserved verbatim.
// Segments without a directive become untitled slides; consecutive untitled
// segments are never merged.
func ParseDeck(src []byte) (*deck.Deck, error) {
	segs := splitSegments(string(src))

	d := &deck.Deck{}
	for i, seg := range segs {
		s := &deck.Slide{
			Raw:        seg.raw,
			Body:       seg.raw,
			Separator:  seg.sep,
			Transition: transitionFor(seg.sep),
		}

		first, rest := firstLine(seg.raw)
		if strings.HasPrefix(lineContent(first), directivePrefix) {
			path, err := parseDirective(lineContent(first))
			if err != nil {
				return nil, &ParseError{
					Slide:     i,
					Directive: lineContent(first),
					Reason:    err.Error(),
				}
			}
			s.TitlePath = path
			s.Body = rest
		}

		d.Slides = append(d.Slides, s)
	}

	d.Title = deriveTitle(d)
	return d, nil
}

// splitSegments walks the source line by line, preserving exact bytes so the
// deck can reassemble the document without loss.
func splitSegments(src string) []segment {
	segs := []segment{{}}
	var cur strings.Builder

	rest := src
	for len(rest) > 0 {
		line := rest
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			line = rest[:nl+1]
		}
		rest = rest[len(line):]

		switch lineContent(line) {
		case verticalSep, horizontalSep:
			segs[len(segs)-1].raw = cur.String()
			cur.Reset()
			segs = append(segs, segment{sep: line})
		default:
			cur.WriteString(line)
		}
	}
	segs[len(segs)-1].raw = cur.String()
	return segs
}

// lineContent strips the line terminator, tolerating CRLF sources.
func lineContent(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// firstLine splits a segment into its first line (with terminator) and the rest.
func firstLine(seg string) (first, rest string) {
	if nl := strings.IndexByte(seg, '\n'); nl >= 0 {
		return seg[:nl+1], seg[nl+1:]
	}
	return seg, ""
}

// parseDirective applies the directive grammar to a line already known to
// start with "@title[": scan to the first closing bracket, then split the
// contents on ":". Trailing whitespace after the bracket is permitted.
func parseDirective(line string) ([]string, error) {
	inner := line[len(directivePrefix):]
	end := strings.IndexByte(inner, ']')
	if end < 0 {
		return nil, fmt.Errorf("missing closing bracket in @title directive")
	}
	if trailing := inner[end+1:]; strings.TrimRight(trailing, " \t") != "" {
		return nil, fmt.Errorf("unexpected content after @title directive")
	}

	contents := inner[:end]
	if contents == "" {
		return nil, fmt.Errorf("empty @title directive")
	}
	path := strings.Split(contents, ":")
	for _, component := range path {
		if component == "" {
			return nil, fmt.Errorf("empty title component in @title directive")
		}
	}
	return path, nil
}

func transitionFor(sep string) deck.Transition {
	switch lineContent(sep) {
	case verticalSep:
		return deck.TransitionVertical
	case horizontalSep:
		return deck.TransitionHorizontal
	default:
		return deck.TransitionNone
	}
}

// deriveTitle picks the deck title from the first titled slide.
func deriveTitle(d *deck.Deck) string {
	for _, s := range d.Slides {
		if len(s.TitlePath) > 0 {
			return s.TitlePath[0]
		}
	}
	return ""
}

// DeckSourceParser handles native deck-source markdown.
type DeckSourceParser struct{}

func (p *DeckSourceParser) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d, err := ParseDeck(src)
	if err != nil {
		return nil, err
	}
	if d.Title == "" {
		d.Title = strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")
	}
	return d, nil
}
