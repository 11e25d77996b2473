// Package segment partitions the ordered page stream into contiguous runs
// sharing one (location, shoot, marker) triple. The build is a single
// forward fold with an explicit accumulator; closed segments are never
// revisited.
package segment

// ResetReason explains why a segment ended.
type ResetReason string

const (
	ResetLocationChange ResetReason = "location_change"
	ResetShootChange    ResetReason = "shoot_change"
	ResetSlate          ResetReason = "slate"
	ResetMarkerChange   ResetReason = "marker_change"
	ResetEOF            ResetReason = "eof"
)

// UnmarkedLabel is the marker sentinel for runs opened without any marker.
const UnmarkedLabel = "UNMARKED"

// UnknownLocation is substituted when a page carries no seeded location.
const UnknownLocation = "UNKNOWN"

// PageObs is one page of the ordered stream joined with its observations.
type PageObs struct {
	PageID    int64
	FileID    string
	Location  string
	Shoot     *int // nil when no shoot was seeded
	IsSlate   bool
	HasMarker bool
	Marker    string
}

// Segment is a maximal contiguous run of pages.
type Segment struct {
	ID          int64
	Location    string
	Shoot       *int
	Marker      string
	StartPageID int64
	EndPageID   int64
	StartFileID string
	EndFileID   string
	FileCount   int
	Confidence  float64
	Reason      ResetReason
}

// Options controls the post-pass filtering.
type Options struct {
	MinRun       int  // segments with fewer files are dropped
	KeepUnmarked bool // open and keep UNMARKED placeholder segments
}

// ValidMarker reports whether m is a legal room marker: one alphabetic
// letter, or two identical alphabetic letters ("B", "CC"). The doubling is a
// deliberate convention denoting a distinct room code, not OCR noise.
func ValidMarker(m string) bool {
	switch len(m) {
	case 1:
		return isAlpha(m[0])
	case 2:
		return m[0] == m[1] && isAlpha(m[0])
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// ConfidenceFor maps a segment's file count to a confidence tier. The
// mapping is non-decreasing in file count.
func ConfidenceFor(n int) float64 {
	switch {
	case n >= 20:
		return 0.92
	case n >= 8:
		return 0.90
	case n >= 3:
		return 0.80
	default:
		return 0.60
	}
}
