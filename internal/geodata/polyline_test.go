package geodata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"

	"netbuild.opentransit.org/internal/geom"
)

func TestLoadPolylineLines(t *testing.T) {
	route := polyline.EncodeCoords([][]float64{
		{38.5, -120.2},
		{40.7, -120.95},
		{43.252, -126.453},
	})
	stub := polyline.EncodeCoords([][]float64{
		{38.5, -120.2},
	})

	content := fmt.Sprintf("route-7,%s\nstub,%s\n", route, stub)
	path := writeTempFile(t, "routes.csv", content)

	lines, stats, err := LoadPolylineLines(path)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 2, stats.Read)
	assert.Equal(t, 1, stats.Dropped)

	assert.Equal(t, "route-7", lines[0].ID())
	assert.Len(t, lines[0].Geometry(), 3)
	assert.Greater(t, geom.Length(lines[0].Geometry()), 0.0)
}

func TestLoadPolylineLinesMissingFile(t *testing.T) {
	_, _, err := LoadPolylineLines("does-not-exist.csv")
	assert.Error(t, err)
}
