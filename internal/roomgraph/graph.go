// Package roomgraph builds the content-based similarity graph over page
// previews and reports its connected components as candidate room clusters.
// This signal is independent of the OCR-driven segmentation and is never
// reconciled with it here; both go to the reviewer as peers.
package roomgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ScoreFunc returns the similarity score between two pages identified by
// their numeric IDs. It must be symmetric.
type ScoreFunc func(a, b int64) int

// Options controls the pairwise build.
type Options struct {
	InlierThreshold int // minimum score for an edge
	MaxPairs        int // 0 = evaluate every pair
}

// Cluster is one candidate room: a connected component of the graph.
type Cluster struct {
	PageIDs []int64 // sorted ascending
}

// Size returns the number of pages in the cluster.
func (c Cluster) Size() int { return len(c.PageIDs) }

// Result summarizes a graph build.
type Result struct {
	Nodes    int
	Edges    int
	Pairs    int // pairs actually evaluated
	Clusters []Cluster
}

// Build evaluates every unordered page pair (up to the pair budget) and
// connects pages whose score meets the threshold. Components are returned
// sorted by descending size; singleton pages form their own clusters.
//
// The pairwise loop is O(n²) by design; MaxPairs is the tractability valve
// for large corpora.
func Build(pageIDs []int64, score ScoreFunc, opts Options) Result {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range pageIDs {
		g.AddNode(simple.Node(id))
	}

	pairs := 0
	edges := 0
	budget := opts.MaxPairs

	for i := 0; i < len(pageIDs) && (budget == 0 || pairs < budget); i++ {
		for j := i + 1; j < len(pageIDs); j++ {
			if budget != 0 && pairs >= budget {
				break
			}
			pairs++
			w := score(pageIDs[i], pageIDs[j])
			if w >= opts.InlierThreshold {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(pageIDs[i]), simple.Node(pageIDs[j]), float64(w)))
				edges++
			}
		}
	}

	var clusters []Cluster
	for _, comp := range topo.ConnectedComponents(g) {
		ids := make([]int64, 0, len(comp))
		for _, n := range comp {
			ids = append(ids, n.ID())
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		clusters = append(clusters, Cluster{PageIDs: ids})
	}
	sort.SliceStable(clusters, func(a, b int) bool {
		if clusters[a].Size() != clusters[b].Size() {
			return clusters[a].Size() > clusters[b].Size()
		}
		return clusters[a].PageIDs[0] < clusters[b].PageIDs[0]
	})

	return Result{
		Nodes:    len(pageIDs),
		Edges:    edges,
		Pairs:    pairs,
		Clusters: clusters,
	}
}
