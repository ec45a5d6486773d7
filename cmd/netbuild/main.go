package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"netbuild.opentransit.org/internal/app"
	"netbuild.opentransit.org/internal/appconf"
	"netbuild.opentransit.org/internal/logging"
	"netbuild.opentransit.org/internal/restapi"
)

func main() {
	var (
		configPath string
		outputDir  string
		dbPath     string
		port       int
		serve      bool
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "config.yml", "Path to the YAML configuration file")
	flag.StringVar(&outputDir, "output", "", "Override the adjacency CSV output directory")
	flag.StringVar(&dbPath, "db", "", "Override the SQLite graph database path")
	flag.IntVar(&port, "port", 0, "Override the network API port")
	flag.BoolVar(&serve, "serve", false, "Serve the built networks over HTTP after the pipeline run")
	flag.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	cfg, err := appconf.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if port != 0 {
		cfg.Port = port
	}
	if verbose {
		cfg.Verbose = true
	}

	application := app.NewApplication(cfg, logger)
	defer application.Close()

	if err := application.RunPipeline(context.Background()); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if !serve {
		return
	}

	api := restapi.NewRestAPI(application)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting network API", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
