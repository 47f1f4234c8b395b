package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/deckdown/internal/library"
	"github.com/dgallion1/deckdown/internal/parser"
	"github.com/dgallion1/deckdown/internal/render"
	"github.com/dgallion1/deckdown/internal/splitter"
)

// Worker processes a single deck import job.
type Worker struct {
	store    *library.Store
	renderer *render.Renderer
	log      *slog.Logger
	splitCfg splitter.Config

	pdfFallback bool
}

func NewWorker(store *library.Store, renderer *render.Renderer, log *slog.Logger, splitCfg splitter.Config, pdfFallback bool) *Worker {
	return &Worker{
		store:       store,
		renderer:    renderer,
		log:         log,
		splitCfg:    splitCfg,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full import pipeline for a job:
// parse -> split -> render validation -> store.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	data := job.FileData()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfImp, ok := p.(*parser.PDFImporter); ok {
		pdfImp.FallbackPdftotext = w.pdfFallback
	}

	start := time.Now()
	d, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	w.renderer.Stats.Record(render.OpParse, time.Since(start))

	if job.Title != "" {
		d.Title = job.Title
	}
	if len(d.Slides) == 0 {
		log.Warn("no importable content")
		job.AddError("no importable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 1.5: Dedup check on the upload bytes.
	job.ContentHash = library.ContentHashHex(data)
	if !job.Force {
		if existing, ok := w.store.FindByHash(job.ContentHash); ok {
			log.Info("duplicate deck, skipping", "existing_deck_id", existing.ID)
			job.SetDeckID(existing.ID)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Split oversized imported slides. Native sources keep their
	// authored boundaries.
	native := parser.IsNativeDeckSource(job.Filename)
	if !native {
		job.SetStatus(StatusSplitting, "splitting")
		d = splitter.SplitDeck(d, w.splitCfg)
	}

	// Phase 3: Render validation.
	job.SetStatus(StatusRendering, "rendering")
	sum := w.renderer.Summarize(d)
	job.SetCounts(sum.Slides, sum.Sections, sum.Words)
	if _, err := w.renderer.DeckHTML(d); err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	// Phase 4: Store. Native sources are kept byte-exact; imports are
	// serialized as canonical deck source.
	job.SetStatus(StatusStoring, "storing")
	source := data
	if !native {
		source = []byte(d.Encode())
	}

	id := library.DeckID(data)
	meta := library.Meta{
		ID:          id,
		Title:       d.Title,
		Filename:    job.Filename,
		ContentHash: job.ContentHash,
		Slides:      sum.Slides,
		Sections:    sum.Sections,
		CreatedAt:   job.CreatedAt,
	}
	if err := w.store.Save(source, meta); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetDeckID(id)
	job.SetStatus(StatusCompleted, "done")
	log.Info("import complete", "deck_id", id, "slides", sum.Slides, "sections", sum.Sections)
}
