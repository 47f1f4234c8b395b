package render

import (
	"testing"
	"time"
)

func TestLatencyStatsSnapshotPercentiles(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	stats.Record(OpParse, 100*time.Millisecond)
	stats.Record(OpParse, 200*time.Millisecond)
	stats.Record(OpParse, 300*time.Millisecond)
	stats.Record(OpParse, 400*time.Millisecond)
	stats.Record(OpParse, 500*time.Millisecond)

	snap := stats.Snapshot()[OpParse]
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
}

func TestLatencyStatsKeepsOperationsSeparate(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	stats.Record(OpParse, 10*time.Millisecond)
	stats.Record(OpParse, 20*time.Millisecond)
	stats.Record(OpRender, 500*time.Millisecond)

	snap := stats.Snapshot()
	parse, ok := snap[OpParse]
	if !ok {
		t.Fatal("expected a parse series")
	}
	if parse.Count != 2 || parse.MaxMs != 20 {
		t.Errorf("parse series polluted: count=%d max=%d", parse.Count, parse.MaxMs)
	}
	render, ok := snap[OpRender]
	if !ok {
		t.Fatal("expected a render series")
	}
	if render.Count != 1 || render.MinMs != 500 {
		t.Errorf("render series polluted: count=%d min=%d", render.Count, render.MinMs)
	}
}

func TestLatencyStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewLatencyStats(10 * time.Millisecond)
	stats.Record(OpRender, 100*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := stats.Snapshot()[OpRender]; ok {
		t.Fatal("expected expired series to be dropped")
	}

	stats.Record(OpRender, 200*time.Millisecond)
	if snap := stats.Snapshot()[OpRender]; snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
}

func TestLatencyStatsClampsNegativeDuration(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	stats.Record(OpParse, -10*time.Millisecond)
	snap := stats.Snapshot()[OpParse]
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
