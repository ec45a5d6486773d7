package network

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphNodeInsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "c"})
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})

	assert.Equal(t, []string{"c", "a", "b"}, g.NodeIDs())

	// Re-adding keeps the original position.
	g.AddNode(Node{ID: "a", Name: "renamed"})
	assert.Equal(t, []string{"c", "a", "b"}, g.NodeIDs())

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, "renamed", n.Name)
}

func TestGraphEdgeIsUndirected(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "u"})
	g.AddNode(Node{ID: "v"})
	require.True(t, g.AddEdge("v", "u", "L", 42))

	assert.True(t, g.HasEdge("u", "v"))
	assert.True(t, g.HasEdge("v", "u"))

	e1, ok := g.Edge("u", "v")
	require.True(t, ok)
	e2, ok := g.Edge("v", "u")
	require.True(t, ok)
	assert.Equal(t, e1, e2)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestGraphRejectsEdgeWithUnknownEndpoint(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "known"})

	assert.False(t, g.AddEdge("known", "ghost", "L", 1))
	assert.False(t, g.AddEdge("ghost", "known", "L", 1))
	assert.Equal(t, 0, g.EdgeCount())
}

func TestGraphNeighborsAndDegree(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"hub", "a", "b", "c"} {
		g.AddNode(Node{ID: id, Location: orb.Point{}})
	}
	g.AddEdge("hub", "a", "L1", 1)
	g.AddEdge("hub", "b", "L1", 2)
	g.AddEdge("c", "hub", "L2", 3)

	assert.Equal(t, 3, g.Degree("hub"))
	assert.Equal(t, []string{"hub"}, g.Neighbors("a"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, g.Neighbors("hub"))
	assert.Equal(t, 0, g.Degree("missing"))
}

func TestGraphEdgeOverwriteKeepsSingleEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "u"})
	g.AddNode(Node{ID: "v"})

	g.AddEdge("u", "v", "first", 10)
	g.AddEdge("v", "u", "second", 20)

	assert.Equal(t, 1, g.EdgeCount())
	e, _ := g.Edge("u", "v")
	assert.Equal(t, "second", e.LineID)
	assert.Equal(t, 20.0, e.Length)

	// Overwriting must not duplicate adjacency entries.
	assert.Equal(t, []string{"v"}, g.Neighbors("u"))
}

func TestGraphIsolatedCount(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})
	assert.Equal(t, 3, g.IsolatedCount())

	g.AddEdge("a", "b", "L", 5)
	assert.Equal(t, 1, g.IsolatedCount())
}
