package library

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/deckdown/internal/deck"
	"github.com/dgallion1/deckdown/internal/parser"
)

// Meta is the sidecar metadata stored next to each deck source.
type Meta struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"` // Original upload filename.
	ContentHash string    `json:"content_hash"`
	Slides      int       `json:"slides"`
	Sections    int       `json:"sections"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a filesystem-backed deck library. Each deck is a native deck
// source at <root>/<id>.md with a <root>/<id>.meta.json sidecar. Decks are
// re-parsed on load; the library never caches parsed structures.
type Store struct {
	root string
	log  *slog.Logger
}

func NewStore(root string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	return &Store{root: root, log: log}, nil
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// DeckID derives a deck's library ID from its content hash.
func DeckID(data []byte) string {
	return ContentHashHex(data)[:16]
}

// Save writes the deck source and its metadata sidecar.
func (s *Store) Save(source []byte, meta Meta) error {
	if err := validateID(meta.ID); err != nil {
		return err
	}
	if err := os.WriteFile(s.sourcePath(meta.ID), source, 0o644); err != nil {
		return fmt.Errorf("write deck source: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck meta: %w", err)
	}
	if err := os.WriteFile(s.metaPath(meta.ID), data, 0o644); err != nil {
		return fmt.Errorf("write deck meta: %w", err)
	}

	s.log.Info("deck saved", "deck_id", meta.ID, "title", meta.Title, "slides", meta.Slides)
	return nil
}

// LoadSource returns the raw deck source bytes.
func (s *Store) LoadSource(id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.sourcePath(id))
	if err != nil {
		return nil, fmt.Errorf("read deck source: %w", err)
	}
	return data, nil
}

// LoadDeck re-parses a stored deck source and returns it with its metadata.
func (s *Store) LoadDeck(id string) (*deck.Deck, *Meta, error) {
	source, err := s.LoadSource(id)
	if err != nil {
		return nil, nil, err
	}
	meta, err := s.Meta(id)
	if err != nil {
		return nil, nil, err
	}
	d, err := parser.ParseDeck(source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse stored deck %s: %w", id, err)
	}
	if d.Title == "" {
		d.Title = meta.Title
	}
	return d, meta, nil
}

// Meta reads a deck's metadata sidecar.
func (s *Store) Meta(id string) (*Meta, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, fmt.Errorf("read deck meta: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal deck meta: %w", err)
	}
	return &meta, nil
}

// List scans the library directory and returns all deck metadata, newest
// first. Sidecars that fail to decode are skipped with a warning.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	var metas []Meta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.root, entry.Name()))
		if err != nil {
			s.log.Warn("unreadable deck meta", "file", entry.Name(), "error", err)
			continue
		}
		var meta Meta
		if err := json.Unmarshal(data, &meta); err != nil {
			s.log.Warn("malformed deck meta", "file", entry.Name(), "error", err)
			continue
		}
		metas = append(metas, meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas, nil
}

// Delete removes a deck source and its sidecar.
func (s *Store) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := os.Remove(s.sourcePath(id)); err != nil {
		return fmt.Errorf("remove deck source: %w", err)
	}
	if err := os.Remove(s.metaPath(id)); err != nil {
		return fmt.Errorf("remove deck meta: %w", err)
	}
	s.log.Info("deck deleted", "deck_id", id)
	return nil
}

// FindByHash returns the first deck whose metadata carries the given content
// hash, for upload dedup.
func (s *Store) FindByHash(hash string) (*Meta, bool) {
	metas, err := s.List()
	if err != nil {
		s.log.Warn("hash lookup failed", "error", err)
		return nil, false
	}
	for i := range metas {
		if metas[i].ContentHash == hash {
			return &metas[i], true
		}
	}
	return nil, false
}

func (s *Store) sourcePath(id string) string {
	return filepath.Join(s.root, id+".md")
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.root, id+".meta.json")
}

// validateID rejects anything but the 16-hex-char IDs DeckID produces, which
// also keeps path traversal out of the library directory.
func validateID(id string) error {
	if len(id) != 16 {
		return fmt.Errorf("invalid deck id: %q", id)
	}
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return fmt.Errorf("invalid deck id: %q", id)
		}
	}
	return nil
}
