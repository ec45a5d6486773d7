package network

import "log/slog"

// MergeStats reports the diagnostics of a pairwise graph union.
type MergeStats struct {
	Nodes          int
	Edges          int
	SharedStations int
	IsolatedNodes  int
}

// Merge unions two independently built graphs into a combined network.
//
// Nodes from a are added first, so on a shared station identifier a's
// attributes win; each such collision is counted in SharedStations. Edges from
// b overwrite an existing edge between the same pair, the same duplicate-pair
// rule the builder applies within a single mode. No geometry is recomputed:
// this is a pure set union at the graph-model level.
//
// Merging more than two modes is a repeated pairwise merge.
func Merge(a, b *Graph, logger *slog.Logger) (*Graph, MergeStats) {
	var stats MergeStats

	combined := NewGraph()
	for _, n := range a.Nodes() {
		combined.AddNode(n)
	}
	for _, n := range b.Nodes() {
		if combined.HasNode(n.ID) {
			stats.SharedStations++
			continue
		}
		combined.AddNode(n)
	}

	for _, e := range a.Edges() {
		combined.AddEdge(e.From, e.To, e.LineID, e.Length)
	}
	for _, e := range b.Edges() {
		combined.AddEdge(e.From, e.To, e.LineID, e.Length)
	}

	stats.Nodes = combined.NodeCount()
	stats.Edges = combined.EdgeCount()
	stats.IsolatedNodes = combined.IsolatedCount()

	if logger != nil {
		logger.Info("networks merged",
			slog.Int("nodes", stats.Nodes),
			slog.Int("edges", stats.Edges),
			slog.Int("shared_stations", stats.SharedStations),
			slog.Int("isolated_nodes", stats.IsolatedNodes),
		)
	}

	return combined, stats
}
