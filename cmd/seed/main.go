package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"moviedex/internal/catalog/source"
	"moviedex/internal/config"
	"moviedex/internal/logging"
	"moviedex/internal/movie"
	"moviedex/internal/platform/tmdb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

// run fetches popular movies from TMDb and writes them as a dataset file
// that the bundled source can read (MOVIEDEX_DATASET).
func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		configPath = fs.String("config", "moviedex.yaml", "Path to the YAML config file")
		outPath    = fs.String("out", "movies.json", "Dataset file to write")
		limit      = fs.Int("limit", 0, "Number of popular movies to fetch (default from config)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.LoadEnvFiles()
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	if *limit <= 0 {
		*limit = cfg.TMDB.Limit
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.RPS, cfg.TMDB.MaxRetries)
	movies, err := source.NewTMDB(client, *limit, logger).Movies(ctx)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errors.New("tmdb returned no movies")
	}

	if err := writeDataset(*outPath, movies); err != nil {
		return err
	}
	logger.Info("dataset written", zap.String("path", *outPath), zap.Int("movies", len(movies)))
	fmt.Fprintf(out, "Wrote %d movies to %s\n", len(movies), *outPath)
	return nil
}

// writeDataset replaces path atomically so a running reader never sees a
// partial file.
func writeDataset(path string, movies []movie.Movie) error {
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".movies-*.json")
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
