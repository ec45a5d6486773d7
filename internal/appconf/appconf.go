// Package appconf loads and validates the application configuration.
//
// Configuration comes from a YAML file and is validated with struct tags; the
// command-line layer may override individual fields after loading. There is no
// ambient global state: the loaded Config is passed explicitly into the
// pipeline.
package appconf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment selects runtime behavior (e.g. the database layer refuses to
// write files under Test).
type Environment int

const (
	Test Environment = iota
	Development
	Production
)

func EnvFromString(env string) Environment {
	switch env {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// ModeConfig describes one transit mode's geometry source and its spatial
// association tolerance. Different modes need different buffers: rail stations
// sit closer to their track than bus stops sit to their road.
type ModeConfig struct {
	Name string `yaml:"name" validate:"required"`

	// Format is one of geojson, gtfs, polyline.
	Format string `yaml:"format" validate:"required,oneof=geojson gtfs polyline"`

	// LinesPath / StationsPath locate the geometry. For gtfs, LinesPath is the
	// feed (file or URL) and StationsPath is unused. For polyline, the encoded
	// lines come from LinesPath and stations from a GeoJSON StationsPath.
	LinesPath    string `yaml:"lines" validate:"required"`
	StationsPath string `yaml:"stations"`

	// BufferDistance is in the linear unit of the (projected) CRS, i.e. meters
	// for wgs84 sources.
	BufferDistance float64 `yaml:"buffer" validate:"gt=0"`

	// CRS of GeoJSON sources: wgs84 (projected to Web Mercator on load) or
	// planar (used as-is). GTFS and polyline sources are always wgs84.
	CRS string `yaml:"crs" validate:"omitempty,oneof=wgs84 planar"`

	LineIDKey      string `yaml:"lineIdKey"`
	StationIDKey   string `yaml:"stationIdKey"`
	StationNameKey string `yaml:"stationNameKey"`
}

// Config is the full application configuration.
type Config struct {
	Env string `yaml:"env" validate:"omitempty,oneof=test development production"`

	Modes []ModeConfig `yaml:"modes" validate:"min=1,dive"`

	// OutputDir receives the per-mode and combined adjacency CSVs.
	OutputDir string `yaml:"outputDir"`

	// DBPath is the SQLite file for graph persistence; empty disables it,
	// ":memory:" keeps it ephemeral.
	DBPath string `yaml:"dbPath"`

	// Port for the optional read-only network API.
	Port int `yaml:"port" validate:"omitempty,gt=0"`

	Verbose bool `yaml:"verbose"`
}

func (c Config) Environment() Environment {
	return EnvFromString(c.Env)
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: error parsing config: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seen := make(map[string]bool, len(c.Modes))
	for _, mode := range c.Modes {
		if mode.Format != "gtfs" && mode.StationsPath == "" {
			return fmt.Errorf("invalid configuration: mode %q: %s sources require a stations path", mode.Name, mode.Format)
		}
		if mode.Name == "combined" {
			return fmt.Errorf("invalid configuration: mode name %q is reserved for the merged network", mode.Name)
		}
		if seen[mode.Name] {
			return fmt.Errorf("invalid configuration: duplicate mode name %q", mode.Name)
		}
		seen[mode.Name] = true
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Port == 0 {
		cfg.Port = 4000
	}
	for i := range cfg.Modes {
		mode := &cfg.Modes[i]
		if mode.CRS == "" {
			mode.CRS = "wgs84"
		}
		if mode.StationIDKey == "" {
			mode.StationIDKey = "stop_id"
		}
		if mode.StationNameKey == "" {
			mode.StationNameKey = "stop_name"
		}
		if mode.LineIDKey == "" {
			mode.LineIDKey = "route_id"
		}
	}
}
