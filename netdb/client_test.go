package netdb

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbuild.opentransit.org/internal/appconf"
	"netbuild.opentransit.org/internal/network"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testGraph() *network.Graph {
	g := network.NewGraph()
	g.AddNode(network.Node{ID: "s0", Name: "First", Location: orb.Point{0, 10}})
	g.AddNode(network.Node{ID: "s1", Name: "Second", Location: orb.Point{400, -10}})
	g.AddNode(network.Node{ID: "loner", Name: "Isolated", Location: orb.Point{900, 900}})
	g.AddEdge("s0", "s1", "L1", 400)
	return g
}

func TestSaveAndLoadGraphRoundTrip(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	require.NoError(t, client.SaveGraph(ctx, "metro", testGraph()))

	loaded, err := client.LoadGraph(ctx, "metro")
	require.NoError(t, err)

	assert.Equal(t, []string{"s0", "s1", "loner"}, loaded.NodeIDs())
	assert.Equal(t, 1, loaded.EdgeCount())

	n, ok := loaded.Node("s0")
	require.True(t, ok)
	assert.Equal(t, "First", n.Name)
	assert.Equal(t, orb.Point{0, 10}, n.Location)

	e, ok := loaded.Edge("s0", "s1")
	require.True(t, ok)
	assert.Equal(t, "L1", e.LineID)
	assert.Equal(t, 400.0, e.Length)
}

func TestSaveGraphReplacesPreviousVersion(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	require.NoError(t, client.SaveGraph(ctx, "metro", testGraph()))

	smaller := network.NewGraph()
	smaller.AddNode(network.Node{ID: "only"})
	require.NoError(t, client.SaveGraph(ctx, "metro", smaller))

	loaded, err := client.LoadGraph(ctx, "metro")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, loaded.NodeIDs())
	assert.Equal(t, 0, loaded.EdgeCount())
}

func TestLoadGraphNotFound(t *testing.T) {
	client := testClient(t)

	_, err := client.LoadGraph(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListGraphs(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	require.NoError(t, client.SaveGraph(ctx, "metro", testGraph()))
	require.NoError(t, client.SaveGraph(ctx, "brt", network.NewGraph()))

	summaries, err := client.ListGraphs(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byName := map[string]GraphSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	assert.Equal(t, 3, byName["metro"].NodeCount)
	assert.Equal(t, 1, byName["metro"].EdgeCount)
	assert.Equal(t, 1, byName["metro"].IsolatedCount)
	assert.Equal(t, 0, byName["brt"].NodeCount)
}
