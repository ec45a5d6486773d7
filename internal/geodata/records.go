// Package geodata loads line and station geometry for the network builder.
// It supports GeoJSON files, static GTFS feeds and encoded-polyline CSVs, and
// normalizes everything to planar records the network package can consume.
//
// Sources in WGS84 are projected point-wise to spherical Web Mercator so that
// buffer distances and edge lengths are in meters. Sources that are already in
// a planar CRS are passed through untouched.
package geodata

import (
	"errors"

	"github.com/paulmach/orb"

	"netbuild.opentransit.org/internal/network"
)

// ErrMissingIdentifier is returned when a station record lacks the configured
// identifier field. This is a configuration error: the build for the affected
// dataset must abort rather than continue with unidentifiable stations.
var ErrMissingIdentifier = errors.New("required identifier field missing")

// CRS names the coordinate reference system of a geometry source.
type CRS string

const (
	// CRSWGS84 marks lon/lat sources; geometry is projected to Web Mercator.
	CRSWGS84 CRS = "wgs84"
	// CRSPlanar marks sources already in a planar, linear-unit CRS.
	CRSPlanar CRS = "planar"
)

// Station is one station row: identifier, display name and planar point.
type Station struct {
	StationID   string
	StationName string
	Point       orb.Point
}

func (s Station) ID() string          { return s.StationID }
func (s Station) Name() string        { return s.StationName }
func (s Station) Location() orb.Point { return s.Point }

// Line is one route geometry row. The identifier is optional provenance.
type Line struct {
	LineID string
	Shape  orb.LineString
}

func (l Line) ID() string               { return l.LineID }
func (l Line) Geometry() orb.LineString { return l.Shape }

// LoadStats counts how a source load went. Dropped records failed the
// geometry-validity filter; they are a data-quality signal, not an error.
type LoadStats struct {
	Read    int
	Dropped int
}

// StationRecords adapts loaded stations to the builder's record capability.
func StationRecords(stations []Station) []network.Station {
	out := make([]network.Station, len(stations))
	for i, s := range stations {
		out[i] = s
	}
	return out
}

// LineRecords adapts loaded lines to the builder's record capability.
func LineRecords(lines []Line) []network.Line {
	out := make([]network.Line, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}
