package roomgraph

import (
	"reflect"
	"testing"
)

// scoreTable builds a symmetric ScoreFunc from explicit pair scores.
func scoreTable(t *testing.T, scores map[[2]int64]int) ScoreFunc {
	t.Helper()
	return func(a, b int64) int {
		if s, ok := scores[[2]int64{a, b}]; ok {
			return s
		}
		if s, ok := scores[[2]int64{b, a}]; ok {
			return s
		}
		return 0
	}
}

func TestBuildClusters(t *testing.T) {
	// Two rooms {1,2,3} and {4,5}, page 6 isolated.
	score := scoreTable(t, map[[2]int64]int{
		{1, 2}: 40,
		{2, 3}: 30,
		{4, 5}: 25,
		{1, 6}: 10, // below threshold
	})

	res := Build([]int64{1, 2, 3, 4, 5, 6}, score, Options{InlierThreshold: 25})

	if res.Nodes != 6 {
		t.Errorf("nodes = %d", res.Nodes)
	}
	if res.Edges != 3 {
		t.Errorf("edges = %d", res.Edges)
	}
	if res.Pairs != 15 {
		t.Errorf("pairs = %d, want all 15", res.Pairs)
	}
	if len(res.Clusters) != 3 {
		t.Fatalf("clusters = %d, want 3", len(res.Clusters))
	}
	if !reflect.DeepEqual(res.Clusters[0].PageIDs, []int64{1, 2, 3}) {
		t.Errorf("largest cluster = %v", res.Clusters[0].PageIDs)
	}
	if !reflect.DeepEqual(res.Clusters[1].PageIDs, []int64{4, 5}) {
		t.Errorf("second cluster = %v", res.Clusters[1].PageIDs)
	}
	if !reflect.DeepEqual(res.Clusters[2].PageIDs, []int64{6}) {
		t.Errorf("singleton = %v", res.Clusters[2].PageIDs)
	}
}

func TestThresholdIsInclusive(t *testing.T) {
	score := scoreTable(t, map[[2]int64]int{{1, 2}: 25})
	res := Build([]int64{1, 2}, score, Options{InlierThreshold: 25})
	if res.Edges != 1 {
		t.Errorf("score == threshold must create an edge, edges = %d", res.Edges)
	}
}

func TestPairBudget(t *testing.T) {
	calls := 0
	score := func(a, b int64) int {
		calls++
		return 100
	}

	res := Build([]int64{1, 2, 3, 4, 5}, score, Options{InlierThreshold: 1, MaxPairs: 4})
	if calls != 4 || res.Pairs != 4 {
		t.Errorf("evaluated %d pairs (reported %d), want 4", calls, res.Pairs)
	}
}

func TestEmptyInput(t *testing.T) {
	res := Build(nil, func(a, b int64) int { return 0 }, Options{InlierThreshold: 1})
	if res.Nodes != 0 || len(res.Clusters) != 0 {
		t.Errorf("empty build: %+v", res)
	}
}
