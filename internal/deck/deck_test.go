package deck

import (
	"reflect"
	"testing"
)

func TestSlide_NotesSplit(t *testing.T) {
	s := &Slide{Body: "Visible point one.\n\nNote:\nRemind them about __iter__.\n"}
	if got := s.Content(); got != "Visible point one.\n\n" {
		t.Errorf("expected content %q, got %q", "Visible point one.\n\n", got)
	}
	if got := s.Notes(); got != "Remind them about __iter__.\n" {
		t.Errorf("expected notes %q, got %q", "Remind them about __iter__.\n", got)
	}
}

func TestSlide_NoNotes(t *testing.T) {
	s := &Slide{Body: "Just content.\nNote: inline mention does not count.\n"}
	if s.Notes() != "" {
		t.Errorf("expected no notes, got %q", s.Notes())
	}
	if s.Content() != s.Body {
		t.Errorf("expected content to equal body, got %q", s.Content())
	}
}

func TestSlide_NoteMarkerAsLastLine(t *testing.T) {
	s := &Slide{Body: "content\nNote:"}
	if s.Content() != "content\n" {
		t.Errorf("expected content %q, got %q", "content\n", s.Content())
	}
	if s.Notes() != "" {
		t.Errorf("expected empty notes, got %q", s.Notes())
	}
}

func TestSlide_Title(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"Sequence"}, "Sequence"},
		{[]string{"Sequence", "Game"}, "Game"},
	}
	for _, tt := range tests {
		s := &Slide{TitlePath: tt.path}
		if got := s.Title(); got != tt.want {
			t.Errorf("path %v: expected %q, got %q", tt.path, tt.want, got)
		}
	}
}

func TestDeck_Sections(t *testing.T) {
	d := &Deck{Slides: []*Slide{
		{Transition: TransitionNone},
		{Transition: TransitionVertical},
		{Transition: TransitionHorizontal},
		{Transition: TransitionVertical},
		{Transition: TransitionVertical},
		{Transition: TransitionHorizontal},
	}}
	sections := d.Sections()
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	want := []int{2, 3, 1}
	for i, n := range want {
		if len(sections[i]) != n {
			t.Errorf("section %d: expected %d slides, got %d", i, n, len(sections[i]))
		}
	}
}

func TestDeck_EncodeIsStable(t *testing.T) {
	d := &Deck{Slides: []*Slide{
		{TitlePath: []string{"Iterable"}, Body: "duck typing\n", Transition: TransitionNone},
		{TitlePath: []string{"Iterable", "Iterator"}, Body: "next() protocol", Transition: TransitionVertical},
		{Body: "questions?\n", Transition: TransitionHorizontal},
	}}
	want := "@title[Iterable]\nduck typing\n+++\n@title[Iterable:Iterator]\nnext() protocol\n---\nquestions?\n"
	if got := d.Encode(); got != want {
		t.Errorf("encode mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestTransition_String(t *testing.T) {
	tests := []struct {
		tr   Transition
		want string
	}{
		{TransitionNone, "none"},
		{TransitionVertical, "vertical"},
		{TransitionHorizontal, "horizontal"},
	}
	for _, tt := range tests {
		if got := tt.tr.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestDeck_ReassembleConcatenatesRawSegments(t *testing.T) {
	d := &Deck{Slides: []*Slide{
		{Raw: "@title[A]\nbody\n"},
		{Raw: "more\n", Separator: "+++\n"},
		{Raw: "tail", Separator: "---\r\n"},
	}}
	want := "@title[A]\nbody\n+++\nmore\n---\r\ntail"
	if got := d.Reassemble(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSlide_ContentNotesRoundTrip(t *testing.T) {
	body := "a\nNote:\nb\n"
	s := &Slide{Body: body}
	rejoined := s.Content() + "Note:\n" + s.Notes()
	if !reflect.DeepEqual(rejoined, body) {
		t.Errorf("expected %q, got %q", body, rejoined)
	}
}
