package splitter

import (
	"strings"
	"testing"

	"github.com/dgallion1/deckdown/internal/deck"
)

func TestSplitDeck_SmallSlidesPassThrough(t *testing.T) {
	d := &deck.Deck{Slides: []*deck.Slide{
		{TitlePath: []string{"Intro"}, Body: "short body"},
	}}
	out := SplitDeck(d, Config{WordBudget: 100, MinWords: 5})
	if len(out.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(out.Slides))
	}
	if out.Slides[0] != d.Slides[0] {
		t.Error("expected in-budget slide passed through unchanged")
	}
}

func TestSplitDeck_OversizedSlideSplits(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("word ", 60))
	body := para + "\n\n" + para + "\n\n" + para

	d := &deck.Deck{Slides: []*deck.Slide{
		{TitlePath: []string{"Big", "Topic"}, Body: body, Transition: deck.TransitionHorizontal},
	}}
	out := SplitDeck(d, Config{WordBudget: 100, MinWords: 10})

	if len(out.Slides) < 2 {
		t.Fatalf("expected split into multiple slides, got %d", len(out.Slides))
	}

	// First continuation keeps the original transition, the rest stack
	// vertically; every part carries the same title path.
	if out.Slides[0].Transition != deck.TransitionHorizontal {
		t.Errorf("expected first part to keep transition, got %v", out.Slides[0].Transition)
	}
	for i, s := range out.Slides {
		if i > 0 && s.Transition != deck.TransitionVertical {
			t.Errorf("part %d: expected vertical transition, got %v", i, s.Transition)
		}
		if len(s.TitlePath) != 2 || s.TitlePath[1] != "Topic" {
			t.Errorf("part %d: expected shared title path, got %v", i, s.TitlePath)
		}
		if got := CountWords(s.Body); got > 200 {
			t.Errorf("part %d: %d words is far over budget", i, got)
		}
	}
}

func TestSplitDeck_SentenceSplittingForGiantParagraph(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40))
	d := &deck.Deck{Slides: []*deck.Slide{{Body: para}}}

	out := SplitDeck(d, Config{WordBudget: 60, MinWords: 5})
	if len(out.Slides) < 3 {
		t.Fatalf("expected sentence-level split, got %d slides", len(out.Slides))
	}
	for i, s := range out.Slides {
		if !strings.HasSuffix(strings.TrimSpace(s.Body), ".") {
			t.Errorf("part %d: expected split on sentence boundary, got %q", i, s.Body)
		}
	}
}

func TestSplitDeck_RuntTailMergesBack(t *testing.T) {
	// 50-word paragraph plus a 3-word tail with a 50 budget: the tail is
	// below MinWords and must merge into the previous part.
	big := strings.TrimSpace(strings.Repeat("word ", 50))
	d := &deck.Deck{Slides: []*deck.Slide{{Body: big + "\n\ntiny tail here"}}}

	out := SplitDeck(d, Config{WordBudget: 50, MinWords: 10})
	if len(out.Slides) != 1 {
		t.Fatalf("expected runt tail merged, got %d slides", len(out.Slides))
	}
	if !strings.Contains(out.Slides[0].Body, "tiny tail here") {
		t.Errorf("expected tail content preserved, got %q", out.Slides[0].Body)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two\nthree", 3},
		{"  spaced   out  ", 2},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.text, tt.want, got)
		}
	}
}
