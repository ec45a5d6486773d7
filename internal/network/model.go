// Package network builds and merges transit network graphs: undirected graphs
// whose nodes are stations and whose edges connect stations that are adjacent
// along a route geometry, weighted by along-line distance.
package network

import (
	"github.com/paulmach/orb"
)

// Node is a station in the network graph.
type Node struct {
	ID       string
	Name     string
	Location orb.Point
}

// Edge connects two stations that are consecutive along some line. From/To are
// stored in normalized (lexicographic) order; the pair is unordered.
type Edge struct {
	From   string
	To     string
	LineID string
	Length float64
}

type edgeKey struct {
	a, b string
}

func newEdgeKey(u, v string) edgeKey {
	if v < u {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// Graph is an undirected station graph. Node and edge iteration order is
// insertion order, which keeps exports and API listings deterministic.
//
// Writing an edge for a pair that already has one overwrites the existing
// edge's attributes. Multi-edges between the same pair are not preserved; this
// mirrors the reference behavior and is a documented limitation, not a bug.
type Graph struct {
	nodes     map[string]Node
	nodeOrder []string

	edges     map[edgeKey]Edge
	edgeOrder []edgeKey

	adjacency map[string][]string
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]Node),
		edges:     make(map[edgeKey]Edge),
		adjacency: make(map[string][]string),
	}
}

// AddNode inserts or replaces a node. It returns false when a node with the
// same identifier was already present; in that case the new attributes win
// (last-write-wins) but the node keeps its original position in the iteration
// order and all of its edges.
func (g *Graph) AddNode(n Node) bool {
	_, exists := g.nodes[n.ID]
	g.nodes[n.ID] = n
	if exists {
		return false
	}
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return true
}

// Node returns the node with the given identifier.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns all node identifiers in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// AddEdge inserts or overwrites the undirected edge between u and v. Both
// endpoints must already be nodes; unknown endpoints are rejected so an edge
// can never reference a station the graph does not know about.
func (g *Graph) AddEdge(u, v, lineID string, length float64) bool {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false
	}

	key := newEdgeKey(u, v)
	_, exists := g.edges[key]
	g.edges[key] = Edge{From: key.a, To: key.b, LineID: lineID, Length: length}
	if !exists {
		g.edgeOrder = append(g.edgeOrder, key)
		g.adjacency[key.a] = append(g.adjacency[key.a], key.b)
		if key.a != key.b {
			g.adjacency[key.b] = append(g.adjacency[key.b], key.a)
		}
	}
	return true
}

// Edge returns the edge between u and v, in either endpoint order.
func (g *Graph) Edge(u, v string) (Edge, bool) {
	e, ok := g.edges[newEdgeKey(u, v)]
	return e, ok
}

func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.edges[newEdgeKey(u, v)]
	return ok
}

// Edges returns all edges in first-insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, g.edges[key])
	}
	return out
}

// Neighbors returns the identifiers adjacent to id, in the order their edges
// were first added.
func (g *Graph) Neighbors(id string) []string {
	adj := g.adjacency[id]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// IsolatedCount returns the number of nodes with no incident edges. Isolated
// stations are kept in the graph on purpose: they are a data-quality signal
// for the caller, not something to prune.
func (g *Graph) IsolatedCount() int {
	count := 0
	for _, id := range g.nodeOrder {
		if len(g.adjacency[id]) == 0 {
			count++
		}
	}
	return count
}
