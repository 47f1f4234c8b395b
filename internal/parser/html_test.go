package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/deckdown/internal/deck"
)

func TestHTMLImporter_HeadingsBecomeSlides(t *testing.T) {
	input := `<html><head><title>Python Protocols</title></head><body>
<h1>Iterable</h1>
<p>Anything with __iter__.</p>
<h2>Iterator</h2>
<p>Also has __next__.</p>
<h1>Sequence</h1>
<p>Indexable.</p>
</body></html>`

	p := &HTMLImporter{}
	d, err := p.Parse(strings.NewReader(input), "protocols.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Title != "Python Protocols" {
		t.Errorf("expected title from <title>, got %q", d.Title)
	}
	if len(d.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(d.Slides))
	}

	if !reflect.DeepEqual(d.Slides[0].TitlePath, []string{"Iterable"}) {
		t.Errorf("expected [Iterable], got %v", d.Slides[0].TitlePath)
	}
	if !reflect.DeepEqual(d.Slides[1].TitlePath, []string{"Iterable", "Iterator"}) {
		t.Errorf("expected [Iterable Iterator], got %v", d.Slides[1].TitlePath)
	}
	if d.Slides[1].Transition != deck.TransitionVertical {
		t.Errorf("expected h2 slide to be vertical, got %v", d.Slides[1].Transition)
	}
	if !reflect.DeepEqual(d.Slides[2].TitlePath, []string{"Sequence"}) {
		t.Errorf("expected [Sequence], got %v", d.Slides[2].TitlePath)
	}
	if d.Slides[2].Transition != deck.TransitionHorizontal {
		t.Errorf("expected h1 slide to start a section, got %v", d.Slides[2].Transition)
	}
	if !strings.Contains(d.Slides[0].Body, "Anything with __iter__.") {
		t.Errorf("expected body text, got %q", d.Slides[0].Body)
	}
}

func TestHTMLImporter_PreservesCodeAsFence(t *testing.T) {
	input := `<html><body><h1>Example</h1><pre>for x in range(3):
    print(x)</pre></body></html>`

	p := &HTMLImporter{}
	d, err := p.Parse(strings.NewReader(input), "example.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(d.Slides))
	}
	if !strings.Contains(d.Slides[0].Body, "```\nfor x in range(3):") {
		t.Errorf("expected fenced code in body, got %q", d.Slides[0].Body)
	}
}

func TestHTMLImporter_PreambleBecomesUntitledSlide(t *testing.T) {
	input := `<html><body><p>Before any heading.</p><h1>First</h1><p>After.</p></body></html>`

	p := &HTMLImporter{}
	d, err := p.Parse(strings.NewReader(input), "pre.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(d.Slides))
	}
	if len(d.Slides[0].TitlePath) != 0 {
		t.Errorf("expected untitled leading slide, got %v", d.Slides[0].TitlePath)
	}
	if d.Slides[0].Transition != deck.TransitionNone {
		t.Errorf("expected leading slide transition none, got %v", d.Slides[0].Transition)
	}
}

func TestHTMLImporter_SanitizesTitleDelimiters(t *testing.T) {
	input := `<html><body><h1>Iterators: the [basics]</h1><p>x</p></body></html>`

	p := &HTMLImporter{}
	d, err := p.Parse(strings.NewReader(input), "t.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	title := d.Slides[0].TitlePath[0]
	if strings.ContainsAny(title, ":]") {
		t.Errorf("expected sanitized title, got %q", title)
	}
}
