package geodata

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/twpayne/go-polyline"
)

// LoadPolylineLines reads route geometries from a CSV of
// "line_id,encoded_polyline" records (no header row). Encoded polylines are
// lat/lon by definition, so every decoded shape is projected to Web Mercator.
// Records that fail to decode or decode to fewer than two points are dropped
// and counted.
func LoadPolylineLines(path string) ([]Line, LoadStats, error) {
	var stats LoadStats

	f, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("error opening polyline file: %w", err)
	}
	defer f.Close() // nolint

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("%s: error reading polyline CSV: %w", path, err)
	}

	var lines []Line
	for _, record := range records {
		stats.Read++

		coords, _, err := polyline.DecodeCoords([]byte(record[1]))
		if err != nil || len(coords) < 2 {
			stats.Dropped++
			continue
		}

		shape := make(orb.LineString, 0, len(coords))
		for _, c := range coords {
			// Polyline coordinate order is lat, lon.
			shape = append(shape, project.Point(orb.Point{c[1], c[0]}, project.WGS84.ToMercator))
		}
		lines = append(lines, Line{LineID: record[0], Shape: shape})
	}
	return lines, stats, nil
}
