package deck

import "strings"

// Transition indicates how a slide was introduced in the source document.
type Transition int

const (
	// TransitionNone marks the first slide of a deck.
	TransitionNone Transition = iota
	// TransitionVertical follows a "+++" separator: a sub-slide within the
	// current section.
	TransitionVertical
	// TransitionHorizontal follows a "---" separator: the first slide of a
	// new section.
	TransitionHorizontal
)

func (t Transition) String() string {
	switch t {
	case TransitionVertical:
		return "vertical"
	case TransitionHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// Slide is one unit of presentation content.
type Slide struct {
	TitlePath []string // Hierarchical breadcrumb from the @title directive, e.g. ["Sequence", "Game"]. Empty for untitled slides.
	Body      string   // Verbatim segment text after the directive line (whole segment if untitled).
	Raw       string   // Verbatim segment text including the directive line.

	Transition Transition
	Separator  string // Verbatim separator line (with its terminator) that introduced this slide. Empty for the first slide and for imported decks.
}

// Title returns the last component of the title path, or "" for untitled slides.
func (s *Slide) Title() string {
	if len(s.TitlePath) == 0 {
		return ""
	}
	return s.TitlePath[len(s.TitlePath)-1]
}

// noteMarker starts the speaker-notes portion of a slide body when it appears
// alone on a line.
const noteMarker = "Note:"

// Content returns the presented portion of the body, excluding speaker notes.
func (s *Slide) Content() string {
	content, _ := splitNotes(s.Body)
	return content
}

// Notes returns the speaker notes, or "" when the body has no Note: line.
func (s *Slide) Notes() string {
	_, notes := splitNotes(s.Body)
	return notes
}

func splitNotes(body string) (content, notes string) {
	offset := 0
	rest := body
	for {
		line := rest
		nl := strings.IndexByte(rest, '\n')
		if nl >= 0 {
			line = rest[:nl]
		}
		if strings.TrimRight(line, " \t\r") == noteMarker {
			if nl < 0 {
				return body[:offset], ""
			}
			return body[:offset], rest[nl+1:]
		}
		if nl < 0 {
			return body, ""
		}
		offset += nl + 1
		rest = rest[nl+1:]
	}
}

// Deck is the full ordered collection of slides parsed from one document.
// A Deck is immutable after construction.
type Deck struct {
	Title  string
	Slides []*Slide
}

// Sections groups slides by horizontal transitions. A section starts at the
// first slide and at every slide introduced by "---".
func (d *Deck) Sections() [][]*Slide {
	var sections [][]*Slide
	for _, s := range d.Slides {
		if len(sections) == 0 || s.Transition == TransitionHorizontal {
			sections = append(sections, []*Slide{s})
			continue
		}
		sections[len(sections)-1] = append(sections[len(sections)-1], s)
	}
	return sections
}

// Reassemble reconstructs the source document byte-for-byte by concatenating
// each slide's verbatim segment with the separator line that introduced it.
// Only decks produced from a native deck source carry this guarantee; imported
// decks have no separators recorded and should be serialized with Encode.
func (d *Deck) Reassemble() string {
	var sb strings.Builder
	for _, s := range d.Slides {
		sb.WriteString(s.Separator)
		sb.WriteString(s.Raw)
	}
	return sb.String()
}

// Encode serializes the deck as canonical deck-source markdown: a @title
// directive line per titled slide, bodies verbatim, "+++" and "---" separator
// lines matching each slide's transition. Bodies must not contain lines that
// read as deck syntax (importers backslash-escape them); parsing the result
// then yields a structurally identical deck. Bodies that do not end in a
// newline gain one so the following separator sits on its own line.
func (d *Deck) Encode() string {
	var sb strings.Builder
	for i, s := range d.Slides {
		if i > 0 {
			if s.Transition == TransitionHorizontal {
				sb.WriteString("---\n")
			} else {
				sb.WriteString("+++\n")
			}
		}
		if len(s.TitlePath) > 0 {
			sb.WriteString("@title[")
			sb.WriteString(strings.Join(s.TitlePath, ":"))
			sb.WriteString("]\n")
		}
		sb.WriteString(s.Body)
		if i < len(d.Slides)-1 && !strings.HasSuffix(s.Body, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
