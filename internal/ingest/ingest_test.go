package ingest

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pagetrace/internal/config"
)

func testPipeline(t *testing.T, inputDir string) *Pipeline {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.InputDir = inputDir
	p, err := New(cfg, nil, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectSortsAndCountsUnmatched(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "scan_00000005.pdf")
	touch(t, dir, "scan_00000001.pdf")
	touch(t, dir, "scan_00000003.pdf")
	touch(t, dir, "cover-sheet.pdf") // no digits: malformed identity
	touch(t, dir, "notes.txt")       // not a PDF: ignored entirely

	p := testPipeline(t, dir)
	ids, unmatched, err := p.collect(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if unmatched != 1 {
		t.Errorf("unmatched = %d, want 1", unmatched)
	}
	if len(ids) != 3 {
		t.Fatalf("identities = %d, want 3", len(ids))
	}
	for i, want := range []int64{1, 3, 5} {
		if ids[i].ID != want {
			t.Errorf("ids[%d].ID = %d, want %d", i, ids[i].ID, want)
		}
	}
	if ids[0].FileID != "P00000001" {
		t.Errorf("FileID = %q", ids[0].FileID)
	}
}

func TestCollectWindowAndLimit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"scan_00000001.pdf", "scan_00000002.pdf", "scan_00000003.pdf",
		"scan_00000004.pdf", "scan_00000005.pdf",
	} {
		touch(t, dir, name)
	}
	p := testPipeline(t, dir)

	ids, _, err := p.collect(Options{StartID: 2, EndID: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0].ID != 2 || ids[2].ID != 4 {
		t.Errorf("windowed ids = %+v", ids)
	}

	ids, _, err = p.collect(Options{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[1].ID != 2 {
		t.Errorf("limited ids = %+v", ids)
	}
}

func TestCollectMissingDirFails(t *testing.T) {
	p := testPipeline(t, filepath.Join(t.TempDir(), "absent"))
	if _, _, err := p.collect(Options{}); err == nil {
		t.Error("missing input dir accepted")
	}
}
