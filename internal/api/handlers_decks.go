package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/deckdown/internal/library"
	"github.com/dgallion1/deckdown/internal/parser"
	"github.com/dgallion1/deckdown/internal/pipeline"
	"github.com/dgallion1/deckdown/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleCreateDeck accepts a multipart upload. Native deck sources (.md) are
// parsed synchronously so directive errors come back with their slide index;
// other formats are queued as import jobs.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := readUpload(file, s.cfg.MaxUploadBytes)
	if err != nil {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	title := r.FormValue("title")
	force := r.FormValue("force") == "true"

	if parser.IsNativeDeckSource(filename) {
		s.createNativeDeck(w, data, filename, title, force)
		return
	}

	job := s.newImportJob(filename, title, force, data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/imports/%s/status", snap.ID),
	})
}

// createNativeDeck parses and stores a native deck source in-request.
func (s *Server) createNativeDeck(w http.ResponseWriter, data []byte, filename, title string, force bool) {
	start := time.Now()
	p := &parser.DeckSourceParser{}
	d, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error":     pe.Error(),
				"slide":     pe.Slide,
				"directive": pe.Directive,
			})
			return
		}
		jsonError(w, "parse failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.renderer.Stats.Record(render.OpParse, time.Since(start))

	if title != "" {
		d.Title = title
	}

	store := s.orchestrator.Library()
	hash := library.ContentHashHex(data)
	if !force {
		if existing, ok := store.FindByHash(hash); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"deck_id":   existing.ID,
				"title":     existing.Title,
				"duplicate": true,
			})
			return
		}
	}

	sum := s.renderer.Summarize(d)
	id := library.DeckID(data)
	meta := library.Meta{
		ID:          id,
		Title:       d.Title,
		Filename:    filename,
		ContentHash: hash,
		Slides:      sum.Slides,
		Sections:    sum.Sections,
		CreatedAt:   time.Now(),
	}
	if err := store.Save(data, meta); err != nil {
		jsonError(w, "failed to store deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"deck_id":  id,
		"title":    d.Title,
		"slides":   sum.Slides,
		"sections": sum.Sections,
	})
}

// handleListDecks lists all decks in the library.
func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	metas, err := s.orchestrator.Library().List()
	if err != nil {
		jsonError(w, "failed to list decks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []library.Meta{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"decks": metas})
}

// handleGetDeck returns a deck's full structure as JSON.
func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	d, meta, err := s.orchestrator.Library().LoadDeck(deckID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			jsonError(w, "deck not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	slides := make([]map[string]any, 0, len(d.Slides))
	for _, sl := range d.Slides {
		titlePath := sl.TitlePath
		if titlePath == nil {
			titlePath = []string{}
		}
		slides = append(slides, map[string]any{
			"title_path": titlePath,
			"transition": sl.Transition.String(),
			"content":    sl.Content(),
			"notes":      sl.Notes(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"deck_id":    meta.ID,
		"title":      d.Title,
		"filename":   meta.Filename,
		"created_at": meta.CreatedAt,
		"slides":     slides,
	})
}

// handleDeckHTML renders a deck as a standalone HTML page.
func (s *Server) handleDeckHTML(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	d, _, err := s.orchestrator.Library().LoadDeck(deckID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			jsonError(w, "deck not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := s.renderer.DeckHTML(d)
	if err != nil {
		jsonError(w, "failed to render deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// handleDeckStats returns slide/section/word/code-block counts for one deck.
func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	d, meta, err := s.orchestrator.Library().LoadDeck(deckID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			jsonError(w, "deck not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"deck_id": meta.ID,
		"title":   d.Title,
		"stats":   s.renderer.Summarize(d),
	})
}

// handleDeleteDeck removes a deck source and its metadata.
func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if err := s.orchestrator.Library().Delete(deckID); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			jsonError(w, "deck not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete deck: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": true, "deck_id": deckID})
}

func (s *Server) newImportJob(filename, title string, force bool, data []byte) *pipeline.Job {
	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     title,
		Force:     force,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	return job
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// readUpload reads at most maxBytes from an upload, rejecting larger files.
func readUpload(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", maxBytes)
	}
	return data, nil
}
