// Package app wires configuration, logging, the geometry providers, the
// network builder and the persistence/export layers into one pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"netbuild.opentransit.org/internal/appconf"
	"netbuild.opentransit.org/internal/export"
	"netbuild.opentransit.org/internal/geodata"
	"netbuild.opentransit.org/internal/logging"
	"netbuild.opentransit.org/internal/network"
	"netbuild.opentransit.org/netdb"
)

// CombinedNetworkName is the registry key of the all-modes union graph.
const CombinedNetworkName = "combined"

// Application holds the dependencies for the pipeline and the optional HTTP
// surface: configuration, a logger, the persistence client and the built
// graphs keyed by mode name.
type Application struct {
	Config appconf.Config
	Logger *slog.Logger
	DB     *netdb.Client

	networks map[string]*network.Graph
	order    []string
}

func NewApplication(cfg appconf.Config, logger *slog.Logger) *Application {
	return &Application{
		Config:   cfg,
		Logger:   logger,
		networks: make(map[string]*network.Graph),
	}
}

// Network returns a built graph by name ("combined" for the merged network).
func (app *Application) Network(name string) (*network.Graph, bool) {
	g, ok := app.networks[name]
	return g, ok
}

// NetworkNames lists built graphs in build order.
func (app *Application) NetworkNames() []string {
	out := make([]string, len(app.order))
	copy(out, app.order)
	return out
}

// RegisterNetwork adds a built graph to the registry under the given name,
// keeping first-registration order for listings.
func (app *Application) RegisterNetwork(name string, g *network.Graph) {
	if _, exists := app.networks[name]; !exists {
		app.order = append(app.order, name)
	}
	app.networks[name] = g
}

// Close releases the persistence client, if one was opened.
func (app *Application) Close() {
	if app.DB != nil {
		logging.SafeCloseWithLogging(app.DB, app.Logger, "close_graph_db")
		app.DB = nil
	}
}

// RunPipeline builds every configured mode, merges all modes into the
// combined network and exports/persists each resulting graph. A configuration
// error in any mode aborts the run; data-quality anomalies (skipped lines,
// duplicate or isolated stations) are only logged and counted.
func (app *Application) RunPipeline(ctx context.Context) error {
	if app.Config.DBPath != "" {
		client, err := netdb.NewClient(netdb.NewConfig(app.Config.DBPath, app.Config.Environment(), app.Config.Verbose))
		if err != nil {
			return err
		}
		app.DB = client
	}

	var combined *network.Graph
	for _, mode := range app.Config.Modes {
		g, err := app.buildMode(ctx, mode)
		if err != nil {
			return fmt.Errorf("mode %s: %w", mode.Name, err)
		}

		if combined == nil {
			combined = g
			continue
		}
		combined, _ = network.Merge(combined, g, app.Logger)
	}

	if len(app.Config.Modes) > 1 {
		app.RegisterNetwork(CombinedNetworkName, combined)
		if err := app.exportAndPersist(ctx, CombinedNetworkName, combined); err != nil {
			return err
		}
	}

	return nil
}

func (app *Application) buildMode(ctx context.Context, mode appconf.ModeConfig) (*network.Graph, error) {
	start := time.Now()

	lines, stations, err := app.loadMode(mode)
	if err != nil {
		return nil, err
	}

	g, stats, err := network.Build(lines, stations, mode.BufferDistance, app.Logger)
	if err != nil {
		return nil, err
	}

	logging.LogOperation(app.Logger, "mode_built",
		slog.String("mode", mode.Name),
		slog.Int("lines_processed", stats.LinesProcessed),
		slog.Int("lines_skipped", stats.LinesSkipped),
		slog.Int("duplicate_stations", stats.DuplicateStations),
		slog.Int("isolated_nodes", stats.IsolatedNodes),
		slog.Duration("duration", time.Since(start)),
	)

	app.RegisterNetwork(mode.Name, g)
	if err := app.exportAndPersist(ctx, mode.Name, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (app *Application) loadMode(mode appconf.ModeConfig) ([]network.Line, []network.Station, error) {
	crs := geodata.CRS(mode.CRS)

	switch mode.Format {
	case "geojson":
		lines, lineStats, err := geodata.LoadGeoJSONLines(mode.LinesPath, mode.LineIDKey, crs)
		if err != nil {
			return nil, nil, err
		}
		stations, stationStats, err := geodata.LoadGeoJSONStations(mode.StationsPath, mode.StationIDKey, mode.StationNameKey, crs)
		if err != nil {
			return nil, nil, err
		}
		app.logLoad(mode.Name, lineStats, stationStats)
		return geodata.LineRecords(lines), geodata.StationRecords(stations), nil

	case "gtfs":
		lines, stations, stats, err := geodata.LoadGTFS(mode.LinesPath)
		if err != nil {
			return nil, nil, err
		}
		app.logLoad(mode.Name, stats, geodata.LoadStats{})
		return geodata.LineRecords(lines), geodata.StationRecords(stations), nil

	case "polyline":
		lines, lineStats, err := geodata.LoadPolylineLines(mode.LinesPath)
		if err != nil {
			return nil, nil, err
		}
		stations, stationStats, err := geodata.LoadGeoJSONStations(mode.StationsPath, mode.StationIDKey, mode.StationNameKey, crs)
		if err != nil {
			return nil, nil, err
		}
		app.logLoad(mode.Name, lineStats, stationStats)
		return geodata.LineRecords(lines), geodata.StationRecords(stations), nil

	default:
		return nil, nil, fmt.Errorf("unknown geometry format %q", mode.Format)
	}
}

func (app *Application) logLoad(mode string, lineStats, stationStats geodata.LoadStats) {
	logging.LogOperation(app.Logger, "geometry_loaded",
		slog.String("mode", mode),
		slog.Int("line_records", lineStats.Read),
		slog.Int("lines_dropped", lineStats.Dropped),
		slog.Int("station_records", stationStats.Read),
		slog.Int("stations_dropped", stationStats.Dropped),
	)
}

func (app *Application) exportAndPersist(ctx context.Context, name string, g *network.Graph) error {
	path := filepath.Join(app.Config.OutputDir, name+"_adjacency.csv")
	if err := export.SaveAdjacency(g, path); err != nil {
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	logging.LogOperation(app.Logger, "adjacency_exported",
		slog.String("graph", name),
		slog.String("path", path),
	)

	if app.DB != nil {
		if err := app.DB.SaveGraph(ctx, name, g); err != nil {
			return fmt.Errorf("persisting %s: %w", name, err)
		}
	}
	return nil
}
