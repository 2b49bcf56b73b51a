// Package main provides the record importer binary that loads scraped trainee
// and support JSON files into the SQLite record database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/umacareer/internal/config"
	"github.com/cory-johannsen/umacareer/internal/importer"
	"github.com/cory-johannsen/umacareer/internal/observability"
	"github.com/cory-johannsen/umacareer/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file")
	sourceDir := flag.String("source", "", "directory holding characters/ and supports/ JSON files")
	dbPath := flag.String("db", "", "record database path (overrides records.path)")
	flag.Parse()

	if *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-records -source <dir> [-db <path>] [-config <file>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	path := cfg.Records.Path
	if *dbPath != "" {
		path = *dbPath
	}
	store, err := sqlite.Open(path)
	if err != nil {
		log.Fatalf("opening record database: %v", err)
	}
	defer store.Close()

	stats, err := importer.New(importer.NewJSONSource(), store, logger).Run(context.Background(), *sourceDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d trainees and %d supports into %s in %s\n",
		stats.Trainees, stats.Supports, path, time.Since(start).Round(time.Millisecond))
}
