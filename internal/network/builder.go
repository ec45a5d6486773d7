package network

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/paulmach/orb"

	"netbuild.opentransit.org/internal/geom"
)

// Station is the record capability the builder needs from a station row. Any
// source that can supply an identifier, a display name and a planar point
// satisfies it.
type Station interface {
	ID() string
	Name() string
	Location() orb.Point
}

// Line is the record capability for a route geometry row. The identifier is
// optional provenance; an empty ID is allowed and simply tags edges with "".
type Line interface {
	ID() string
	Geometry() orb.LineString
}

// BuildStats reports the diagnostics of a single-mode build. None of these
// conditions fail the build; they are surfaced so the caller can judge the
// quality of its input data.
type BuildStats struct {
	LinesProcessed    int
	LinesSkipped      int
	DuplicateStations int
	IsolatedNodes     int
}

// Build converts one mode's lines and stations into a weighted undirected
// graph. buffer is the association tolerance: a station belongs to a line when
// its distance to the line geometry is at most buffer, in CRS units.
//
// Every input station becomes a node, matched to a line or not. Per line, in
// input order, the matched stations are sorted by their arc-length projection
// onto the line and each consecutive pair gets an edge weighted by the
// projection-distance difference. Stations with equal projection distance keep
// their relative input order (stable sort). A line matching fewer than two
// stations contributes nothing and is counted as skipped.
//
// The only fatal condition is a station row with an empty identifier: that is
// a configuration error in the source data mapping and no partial graph is
// returned.
func Build(lines []Line, stations []Station, buffer float64, logger *slog.Logger) (*Graph, BuildStats, error) {
	var stats BuildStats

	if buffer <= 0 {
		return nil, stats, fmt.Errorf("buffer distance must be positive, got %v", buffer)
	}

	g := NewGraph()
	for i, station := range stations {
		if station.ID() == "" {
			return nil, stats, fmt.Errorf("station row %d has an empty identifier", i)
		}
		if !g.AddNode(Node{ID: station.ID(), Name: station.Name(), Location: station.Location()}) {
			stats.DuplicateStations++
		}
	}

	for _, line := range lines {
		if !buildLineEdges(g, line, stations, buffer) {
			stats.LinesSkipped++
			continue
		}
		stats.LinesProcessed++
	}

	stats.IsolatedNodes = g.IsolatedCount()

	if logger != nil {
		logger.Info("network built",
			slog.Int("nodes", g.NodeCount()),
			slog.Int("edges", g.EdgeCount()),
			slog.Int("lines_processed", stats.LinesProcessed),
			slog.Int("lines_skipped", stats.LinesSkipped),
			slog.Int("duplicate_stations", stats.DuplicateStations),
			slog.Int("isolated_nodes", stats.IsolatedNodes),
		)
	}

	return g, stats, nil
}

type lineMatch struct {
	stationID string
	along     float64
}

// buildLineEdges associates stations to one line and emits edges between
// consecutive matches. It reports false when the line cannot contribute any
// edge (fewer than two stations inside its buffer region).
func buildLineEdges(g *Graph, line Line, stations []Station, buffer float64) bool {
	shape := line.Geometry()
	if len(shape) < 2 {
		return false
	}

	var matches []lineMatch
	for _, station := range stations {
		proj := geom.Project(shape, station.Location())
		if proj.Distance <= buffer {
			matches = append(matches, lineMatch{stationID: station.ID(), along: proj.Along})
		}
	}
	if len(matches) < 2 {
		return false
	}

	// Ties on projection distance keep station input order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].along < matches[j].along
	})

	for i := 0; i < len(matches)-1; i++ {
		g.AddEdge(matches[i].stationID, matches[i+1].stationID, line.ID(), matches[i+1].along-matches[i].along)
	}
	return true
}
