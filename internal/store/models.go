package store

import "time"

// PageRecord is one row of the pages relation.
type PageRecord struct {
	FileID    string
	Path      string
	PageID    int64
	Bytes     int64
	SHA256    string
	PageCount int
}

// ImageRecord holds the rendered-preview features of a page.
type ImageRecord struct {
	FileID      string
	PreviewPath string
	Width       int
	Height      int
	PHash       string
	MeanLuma    float64
	BlurScore   float64
}

// AssignmentRecord is the seeded (location, shoot) assignment of a page.
type AssignmentRecord struct {
	FileID     string
	Location   string // empty = unknown, stored as NULL
	Shoot      *int
	Method     string
	Confidence float64
}

// SlateRecord is the stored slate observation of a page.
type SlateRecord struct {
	FileID   string
	IsSlate  bool
	Keywords string // comma-joined matched keywords
	OCRText  string
}

// MarkerRecord is the stored room-marker observation of a page.
type MarkerRecord struct {
	FileID    string
	HasMarker bool
	Marker    string
	OCRText   string
}

// PageBundle groups the five per-page rows written atomically on ingest.
type PageBundle struct {
	Page       PageRecord
	Image      ImageRecord
	Assignment AssignmentRecord
	Slate      SlateRecord
	Marker     MarkerRecord
}

// RunRecord summarizes one ingest run, doubling as the user-visible
// failure report.
type RunRecord struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Files       int // pages ingested
	Unmatched   int // filenames with malformed identities
	Failed      int // pages whose extraction failed
	Slates      int
	NoMarker    int
	NoFeatures  int // previews yielding no usable features
}

// StreamRow is one page of the ordered stream consumed by segmentation.
type StreamRow struct {
	PageID    int64
	FileID    string
	Location  string
	Shoot     *int
	IsSlate   bool
	HasMarker bool
	Marker    string
}
