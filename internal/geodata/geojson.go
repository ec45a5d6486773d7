package geodata

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

// LoadGeoJSONStations reads a FeatureCollection of point features. idKey
// selects the property holding the station identifier and is required on every
// feature; nameKey selects the display name and may be empty or absent, in
// which case the identifier doubles as the name. Features whose geometry is
// not a point are dropped and counted.
func LoadGeoJSONStations(path, idKey, nameKey string, crs CRS) ([]Station, LoadStats, error) {
	var stats LoadStats

	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, stats, err
	}

	var stations []Station
	for i, feature := range fc.Features {
		stats.Read++

		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			stats.Dropped++
			continue
		}

		id, ok := propertyString(feature.Properties, idKey)
		if !ok || id == "" {
			return nil, stats, fmt.Errorf("%s: feature %d: %w: %q", path, i, ErrMissingIdentifier, idKey)
		}

		name := id
		if nameKey != "" {
			if n, ok := propertyString(feature.Properties, nameKey); ok && n != "" {
				name = n
			}
		}

		if crs == CRSWGS84 {
			point = project.Point(point, project.WGS84.ToMercator)
		}
		stations = append(stations, Station{StationID: id, StationName: name, Point: point})
	}
	return stations, stats, nil
}

// LoadGeoJSONLines reads a FeatureCollection of linestring features. idKey is
// optional; a feature without it yields a line with an empty identifier.
// Non-linestring features and degenerate lines (fewer than 2 points) are
// dropped and counted.
func LoadGeoJSONLines(path, idKey string, crs CRS) ([]Line, LoadStats, error) {
	var stats LoadStats

	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, stats, err
	}

	var lines []Line
	for _, feature := range fc.Features {
		stats.Read++

		shape, ok := feature.Geometry.(orb.LineString)
		if !ok || len(shape) < 2 {
			stats.Dropped++
			continue
		}

		var id string
		if idKey != "" {
			id, _ = propertyString(feature.Properties, idKey)
		}

		if crs == CRSWGS84 {
			shape = project.LineString(shape.Clone(), project.WGS84.ToMercator)
		}
		lines = append(lines, Line{LineID: id, Shape: shape})
	}
	return lines, stats, nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading GeoJSON file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: error parsing GeoJSON: %w", path, err)
	}
	return fc, nil
}

// propertyString reads a feature property as a string. GeoJSON identifiers in
// the wild are frequently numeric, so numbers are formatted rather than
// rejected.
func propertyString(props geojson.Properties, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	default:
		return "", false
	}
}
