package report

import (
	"strings"
	"testing"

	"pagetrace/internal/roomgraph"
	"pagetrace/internal/segment"
	"pagetrace/internal/store"
)

func TestFormatIDRanges(t *testing.T) {
	cases := []struct {
		ids  []int64
		want string
	}{
		{nil, ""},
		{[]int64{7}, "7"},
		{[]int64{1, 2, 3, 4, 5}, "1-5"},
		{[]int64{1, 2, 3, 9}, "1-3, 9"},
		{[]int64{1, 3, 4, 8, 9}, "1, 3-4, 8-9"},
	}
	for _, tc := range cases {
		if got := formatIDRanges(tc.ids); got != tc.want {
			t.Errorf("formatIDRanges(%v) = %q, want %q", tc.ids, got, tc.want)
		}
	}
}

func TestSegmentsTable(t *testing.T) {
	shoot := 2
	out := Segments([]segment.Segment{{
		ID: 1, Location: "L1", Shoot: &shoot, Marker: "CC",
		StartFileID: "P00000001", EndFileID: "P00000005",
		FileCount: 5, Confidence: 0.8, Reason: segment.ResetMarkerChange,
	}})
	for _, want := range []string{"L1", "CC", "P00000001 .. P00000005", "0.80", "marker_change"} {
		if !strings.Contains(out, want) {
			t.Errorf("segment table missing %q:\n%s", want, out)
		}
	}
}

func TestSegmentsEmpty(t *testing.T) {
	if out := Segments(nil); !strings.Contains(out, "no segments") {
		t.Errorf("empty segment table = %q", out)
	}
}

func TestClustersTable(t *testing.T) {
	out := Clusters(roomgraph.Result{
		Nodes: 6, Edges: 3, Pairs: 15,
		Clusters: []roomgraph.Cluster{
			{PageIDs: []int64{1, 2, 3}},
			{PageIDs: []int64{5, 6}},
		},
	})
	for _, want := range []string{"6 pages", "15 pairs scored", "1-3", "5-6"} {
		if !strings.Contains(out, want) {
			t.Errorf("cluster report missing %q:\n%s", want, out)
		}
	}
}

func TestAssignmentsUnknownLocation(t *testing.T) {
	out := Assignments([]store.AssignmentGroup{{Location: "", Shoot: nil, Files: 4}})
	if !strings.Contains(out, segment.UnknownLocation) {
		t.Errorf("unseeded group not labeled UNKNOWN:\n%s", out)
	}
	if !strings.Contains(out, "-") {
		t.Errorf("nil shoot not rendered as dash:\n%s", out)
	}
}
