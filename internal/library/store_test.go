package library

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestStore_SaveAndLoadDeck(t *testing.T) {
	s := newTestStore(t)

	source := []byte("@title[Iterable]\nduck typing\n+++\n@title[Iterable:Iterator]\nnext()\n")
	id := DeckID(source)
	meta := Meta{
		ID:          id,
		Title:       "Iterable",
		Filename:    "iterable.md",
		ContentHash: ContentHashHex(source),
		Slides:      2,
		Sections:    1,
		CreatedAt:   time.Now(),
	}

	if err := s.Save(source, meta); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	d, gotMeta, err := s.LoadDeck(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(d.Slides) != 2 {
		t.Errorf("expected 2 slides after re-parse, got %d", len(d.Slides))
	}
	if gotMeta.Title != "Iterable" {
		t.Errorf("expected meta title %q, got %q", "Iterable", gotMeta.Title)
	}
	if gotMeta.ContentHash != meta.ContentHash {
		t.Errorf("expected content hash preserved")
	}

	raw, err := s.LoadSource(id)
	if err != nil {
		t.Fatalf("load source failed: %v", err)
	}
	if string(raw) != string(source) {
		t.Errorf("expected source preserved byte-for-byte")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := []byte("@title[Old]\nx\n")
	newer := []byte("@title[New]\ny\n")
	base := time.Now()

	if err := s.Save(older, Meta{ID: DeckID(older), Title: "Old", ContentHash: ContentHashHex(older), CreatedAt: base.Add(-time.Hour)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Save(newer, Meta{ID: DeckID(newer), Title: "New", ContentHash: ContentHashHex(newer), CreatedAt: base}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	metas, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(metas))
	}
	if metas[0].Title != "New" {
		t.Errorf("expected newest deck first, got %q", metas[0].Title)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	source := []byte("@title[Gone]\nz\n")
	id := DeckID(source)
	if err := s.Save(source, Meta{ID: id, Title: "Gone", ContentHash: ContentHashHex(source), CreatedAt: time.Now()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.LoadSource(id); err == nil {
		t.Error("expected load to fail after delete")
	}
	metas, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("expected empty library, got %d decks", len(metas))
	}
}

func TestStore_FindByHash(t *testing.T) {
	s := newTestStore(t)

	source := []byte("@title[Dup]\nsame content\n")
	hash := ContentHashHex(source)
	if err := s.Save(source, Meta{ID: DeckID(source), Title: "Dup", ContentHash: hash, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, ok := s.FindByHash(hash)
	if !ok {
		t.Fatal("expected hash hit")
	}
	if meta.Title != "Dup" {
		t.Errorf("expected %q, got %q", "Dup", meta.Title)
	}

	if _, ok := s.FindByHash("0000000000000000000000000000000000000000000000000000000000000000"); ok {
		t.Error("expected miss for unknown hash")
	}
}

func TestStore_RejectsBadIDs(t *testing.T) {
	s := newTestStore(t)

	bad := []string{"", "short", "../../etc/passwd", "ABCDEF0123456789", "zzzzzzzzzzzzzzzz"}
	for _, id := range bad {
		if _, err := s.LoadSource(id); err == nil {
			t.Errorf("expected rejection for id %q", id)
		}
		if err := s.Delete(id); err == nil {
			t.Errorf("expected delete rejection for id %q", id)
		}
	}
}

func TestDeckID_Is16HexChars(t *testing.T) {
	id := DeckID([]byte("hello world"))
	if len(id) != 16 {
		t.Fatalf("expected 16 chars, got %d", len(id))
	}
	if err := validateID(id); err != nil {
		t.Errorf("expected generated id to validate: %v", err)
	}
}
