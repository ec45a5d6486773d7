package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbuild.opentransit.org/internal/appconf"
	"netbuild.opentransit.org/internal/logging"
)

const metroLinesFixture = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1000, 0]]},
		 "properties": {"route_id": "M1"}}
	]
}`

const metroStationsFixture = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 10]},
		 "properties": {"stop_id": "Central", "stop_name": "Central (metro)"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [400, -10]},
		 "properties": {"stop_id": "m1"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1000, 5]},
		 "properties": {"stop_id": "m2"}}
	]
}`

const brtLinesFixture = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 500], [800, 500]]},
		 "properties": {"route_id": "B7"}}
	]
}`

const brtStationsFixture = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [10, 480]},
		 "properties": {"stop_id": "Central", "stop_name": "Central (bus)"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [800, 510]},
		 "properties": {"stop_id": "b1"}}
	]
}`

func fixtureConfig(t *testing.T) appconf.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	cfg := appconf.Config{
		Env:       "test",
		OutputDir: dir,
		DBPath:    ":memory:",
		Modes: []appconf.ModeConfig{
			{
				Name:           "metro",
				Format:         "geojson",
				LinesPath:      write("metro_lines.geojson", metroLinesFixture),
				StationsPath:   write("metro_stations.geojson", metroStationsFixture),
				BufferDistance: 50,
				CRS:            "planar",
				LineIDKey:      "route_id",
				StationIDKey:   "stop_id",
				StationNameKey: "stop_name",
			},
			{
				Name:           "brt",
				Format:         "geojson",
				LinesPath:      write("brt_lines.geojson", brtLinesFixture),
				StationsPath:   write("brt_stations.geojson", brtStationsFixture),
				BufferDistance: 100,
				CRS:            "planar",
				LineIDKey:      "route_id",
				StationIDKey:   "stop_id",
				StationNameKey: "stop_name",
			},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func testLogger() *slog.Logger {
	return logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelError)
}

func TestRunPipelineBuildsAndMergesModes(t *testing.T) {
	cfg := fixtureConfig(t)
	application := NewApplication(cfg, testLogger())
	defer application.Close()

	require.NoError(t, application.RunPipeline(context.Background()))

	assert.Equal(t, []string{"metro", "brt", "combined"}, application.NetworkNames())

	metro, ok := application.Network("metro")
	require.True(t, ok)
	assert.Equal(t, 3, metro.NodeCount())
	assert.Equal(t, 2, metro.EdgeCount())

	combined, ok := application.Network("combined")
	require.True(t, ok)
	assert.Equal(t, 4, combined.NodeCount(), "shared Central collapses into one node")

	central, ok := combined.Node("Central")
	require.True(t, ok)
	assert.Equal(t, "Central (metro)", central.Name, "first-processed mode wins node attributes")
}

func TestRunPipelineWritesAdjacencyFiles(t *testing.T) {
	cfg := fixtureConfig(t)
	application := NewApplication(cfg, testLogger())
	defer application.Close()

	require.NoError(t, application.RunPipeline(context.Background()))

	for _, name := range []string{"metro", "brt", "combined"} {
		path := filepath.Join(cfg.OutputDir, name+"_adjacency.csv")
		info, err := os.Stat(path)
		require.NoError(t, err, "expected adjacency export for %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRunPipelinePersistsGraphs(t *testing.T) {
	cfg := fixtureConfig(t)
	application := NewApplication(cfg, testLogger())
	defer application.Close()

	require.NoError(t, application.RunPipeline(context.Background()))
	require.NotNil(t, application.DB)

	summaries, err := application.DB.ListGraphs(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestRunPipelineSingleModeSkipsMerge(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Modes = cfg.Modes[:1]
	cfg.DBPath = ""

	application := NewApplication(cfg, testLogger())
	defer application.Close()

	require.NoError(t, application.RunPipeline(context.Background()))

	assert.Equal(t, []string{"metro"}, application.NetworkNames())
	_, ok := application.Network("combined")
	assert.False(t, ok)
}

func TestRunPipelineAbortsOnMissingIdentifierField(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Modes[0].StationIDKey = "no_such_field"
	cfg.DBPath = ""

	application := NewApplication(cfg, testLogger())
	defer application.Close()

	err := application.RunPipeline(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metro")
}
