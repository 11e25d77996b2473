package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pagetrace/internal/segment"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func bundle(pageID int64, marker string, isSlate bool) PageBundle {
	fileID := segmentFileID(pageID)
	shoot := 1
	return PageBundle{
		Page: PageRecord{
			FileID: fileID, Path: "/pdfs/" + fileID + ".pdf", PageID: pageID,
			Bytes: 1024, SHA256: "deadbeef", PageCount: 1,
		},
		Image: ImageRecord{
			FileID: fileID, PreviewPath: "/previews/" + fileID + ".png",
			Width: 800, Height: 1200, PHash: "p:8f373714acfcf4d0", MeanLuma: 127.5, BlurScore: 85.2,
		},
		Assignment: AssignmentRecord{
			FileID: fileID, Location: "L1", Shoot: &shoot, Method: "range_seed", Confidence: 0.9,
		},
		Slate: SlateRecord{FileID: fileID, IsSlate: isSlate},
		Marker: MarkerRecord{
			FileID: fileID, HasMarker: marker != "", Marker: marker,
			OCRText: "[roi=left_band psm=10] " + marker,
		},
	}
}

func segmentFileID(id int64) string {
	const pad = "P00000000"
	s := ""
	for id > 0 {
		s = string(rune('0'+id%10)) + s
		id /= 10
	}
	return pad[:len(pad)-len(s)] + s
}

func TestSavePageUpsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := bundle(1, "B", false)
	if err := s.SavePage(ctx, b); err != nil {
		t.Fatalf("SavePage: %v", err)
	}
	if err := s.SavePage(ctx, b); err != nil {
		t.Fatalf("SavePage (reingest): %v", err)
	}

	n, err := s.PageCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("page count = %d after reingest, want 1", n)
	}

	stream, err := s.OrderedStream(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stream) != 1 {
		t.Fatalf("stream rows = %d", len(stream))
	}
	r := stream[0]
	if r.Marker != "B" || !r.HasMarker || r.Location != "L1" || r.Shoot == nil || *r.Shoot != 1 {
		t.Errorf("stream row = %+v", r)
	}
}

func TestOrderedStreamSortsByPageID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{5, 1, 3} {
		if err := s.SavePage(ctx, bundle(id, "B", false)); err != nil {
			t.Fatal(err)
		}
	}

	stream, err := s.OrderedStream(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stream) != 3 {
		t.Fatalf("rows = %d", len(stream))
	}
	for i, want := range []int64{1, 3, 5} {
		if stream[i].PageID != want {
			t.Errorf("stream[%d].PageID = %d, want %d", i, stream[i].PageID, want)
		}
	}
}

func TestReplaceSegmentsDropsPrevious(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	shoot := 1

	first := []segment.Segment{{
		ID: 1, Location: "L1", Shoot: &shoot, Marker: "B",
		StartPageID: 1, EndPageID: 5, StartFileID: "P00000001", EndFileID: "P00000005",
		FileCount: 5, Confidence: 0.8, Reason: segment.ResetEOF,
	}}
	if err := s.ReplaceSegments(ctx, first); err != nil {
		t.Fatalf("ReplaceSegments: %v", err)
	}

	second := []segment.Segment{
		{
			ID: 1, Location: "L1", Shoot: &shoot, Marker: "CC",
			StartPageID: 1, EndPageID: 2, StartFileID: "P00000001", EndFileID: "P00000002",
			FileCount: 2, Confidence: 0.6, Reason: segment.ResetMarkerChange,
		},
		{
			ID: 2, Location: "L1", Shoot: nil, Marker: "D",
			StartPageID: 3, EndPageID: 5, StartFileID: "P00000003", EndFileID: "P00000005",
			FileCount: 3, Confidence: 0.8, Reason: segment.ResetEOF,
		},
	}
	if err := s.ReplaceSegments(ctx, second); err != nil {
		t.Fatalf("ReplaceSegments (rebuild): %v", err)
	}

	got, err := s.Segments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("segments = %d, want 2 (previous contents must be discarded)", len(got))
	}
	if got[0].Marker != "CC" || got[0].Reason != segment.ResetMarkerChange {
		t.Errorf("segment[0] = %+v", got[0])
	}
	if got[1].Shoot != nil {
		t.Errorf("nil shoot not round-tripped: %+v", got[1])
	}
}

func TestSummaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePage(ctx, bundle(1, "B", false)); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePage(ctx, bundle(2, "B", false)); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePage(ctx, bundle(3, "", true)); err != nil {
		t.Fatal(err)
	}

	markers, err := s.TopMarkers(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 1 || markers[0].Marker != "B" || markers[0].Count != 2 {
		t.Errorf("markers = %+v", markers)
	}

	slates, err := s.SlateCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if slates != 1 {
		t.Errorf("slates = %d", slates)
	}

	unmarked, err := s.NoMarkerCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if unmarked != 1 {
		t.Errorf("unmarked = %d", unmarked)
	}

	groups, err := s.AssignmentSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || groups[0].Files != 3 {
		t.Errorf("groups = %+v", groups)
	}
}

func TestRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.LastRun(ctx); err != ErrNoRuns {
		t.Errorf("LastRun on empty db = %v, want ErrNoRuns", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	run := RunRecord{
		RunID: "7b0d0f3e-0000-4000-8000-000000000001", StartedAt: now.Add(-time.Minute), FinishedAt: now,
		Files: 10, Unmatched: 1, Failed: 2, Slates: 3, NoMarker: 4, NoFeatures: 1,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.LastRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.RunID != run.RunID || got.Files != 10 || got.NoFeatures != 1 {
		t.Errorf("LastRun = %+v", got)
	}
	if !got.FinishedAt.Equal(now) {
		t.Errorf("finished_at = %v, want %v", got.FinishedAt, now)
	}
}

func TestSchemaMismatchDetected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.sqlite")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	if _, err := Open(path); err == nil {
		t.Error("version 99 database accepted")
	}
}
