package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pressly/goose/v3"

	"moviedex/internal/config"
	"moviedex/internal/kvstore"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		command    = fs.String("command", "up", "Migration command: up, down, status, version")
		configPath = fs.String("config", "moviedex.yaml", "Path to the YAML config file")
		driver     = fs.String("driver", "", "Store driver to migrate (default from config): sqlite or postgres")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.LoadEnvFiles()
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *driver == "" {
		*driver = cfg.Store.Driver
	}

	db, cleanup, err := openDB(ctx, *driver, cfg.Store)
	if err != nil {
		return err
	}
	defer cleanup()

	dir, err := kvstore.UseMigrations(*driver)
	if err != nil {
		return err
	}
	goose.SetLogger(log.New(out, "", 0))

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		fmt.Fprintln(out, "Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		fmt.Fprintln(out, "Migrations rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migration version: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q (use up, down, status, version)", *command)
	}
	return nil
}
