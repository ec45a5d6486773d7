package geodata

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jamespfennell/gtfs"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// LoadGTFS reads a static GTFS feed and extracts route shapes as lines and
// stops as stations. The source can be a local zip file path or an HTTP(S)
// URL. GTFS is always WGS84, so all geometry is projected to Web Mercator.
//
// Stops without coordinates and shapes with fewer than two points fail the
// validity filter and are dropped (counted in the returned stats).
func LoadGTFS(source string) ([]Line, []Station, LoadStats, error) {
	var stats LoadStats

	b, err := rawGTFSData(source)
	if err != nil {
		return nil, nil, stats, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, nil, stats, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	var lines []Line
	for _, shape := range staticData.Shapes {
		stats.Read++
		if len(shape.Points) < 2 {
			stats.Dropped++
			continue
		}
		ls := make(orb.LineString, 0, len(shape.Points))
		for _, pt := range shape.Points {
			ls = append(ls, project.Point(orb.Point{pt.Longitude, pt.Latitude}, project.WGS84.ToMercator))
		}
		lines = append(lines, Line{LineID: shape.ID, Shape: ls})
	}

	var stations []Station
	for _, stop := range staticData.Stops {
		stats.Read++
		if stop.Longitude == nil || stop.Latitude == nil {
			stats.Dropped++
			continue
		}
		point := project.Point(orb.Point{*stop.Longitude, *stop.Latitude}, project.WGS84.ToMercator)
		stations = append(stations, Station{StationID: stop.Id, StationName: stop.Name, Point: point})
	}

	return lines, stations, stats, nil
}

// rawGTFSData loads the feed bytes from either a URL or a local file.
func rawGTFSData(source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}
