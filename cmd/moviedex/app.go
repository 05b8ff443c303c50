package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"moviedex/internal/auth"
	"moviedex/internal/catalog"
	"moviedex/internal/catalog/source"
	"moviedex/internal/config"
	"moviedex/internal/kvstore"
	"moviedex/internal/library"
	"moviedex/internal/logging"
	"moviedex/internal/output"
	"moviedex/internal/platform/tmdb"
	"moviedex/internal/profile"
)

// app holds the flags and the services one command invocation uses. Services
// are built on first use so commands only pay for what they touch.
type app struct {
	cfgPath string
	verbose bool
	format  string

	cfg     *config.Config
	logger  *zap.Logger
	printer output.Printer

	store   kvstore.Store
	catalog *catalog.Service
	lists   *library.Service
	auth    *auth.Service
	profile *profile.Service
}

func newApp(out io.Writer) *app {
	return &app{
		logger:  zap.NewNop(),
		printer: output.Printer{Out: out, Format: output.FormatJSON},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "moviedex",
		Short: "Browse, filter and sort a movie catalog",
		Long: `moviedex answers catalog queries (search, genre, year and rating filters,
sorting, pagination) over a bundled dataset or TMDb, and keeps your
favorites, watchlist and watched lists.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return invalidArgument(err)
	})
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "moviedex.yaml", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.format, "format", "json", "Output format: json or table")

	root.AddCommand(
		a.moviesCmd(),
		a.listsCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.profileCmd(),
	)
	return root
}

func (a *app) setup() error {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return invalidArgument(err)
	}
	a.printer.Format = format

	config.LoadEnvFiles()
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func (a *app) kv(ctx context.Context) (kvstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	a.logger.Debug("opening store", zap.String("driver", a.cfg.Store.Driver), zap.String("dsn", config.RedactDSN(a.cfg.Store.DSN)))
	s, err := kvstore.Open(ctx, kvstore.Options{
		Driver:     a.cfg.Store.Driver,
		SQLitePath: a.cfg.Store.SQLitePath,
		DSN:        a.cfg.Store.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = s
	return s, nil
}

// catalogService loads the catalog from the configured source.
func (a *app) catalogService(ctx context.Context) (*catalog.Service, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	var src catalog.Source
	switch a.cfg.Source.Kind {
	case "tmdb":
		client := tmdb.NewClient(a.cfg.TMDB.APIKey, a.cfg.TMDB.BaseURL, a.cfg.TMDB.RPS, a.cfg.TMDB.MaxRetries)
		src = source.NewTMDB(client, a.cfg.TMDB.Limit, a.logger)
	default:
		src = source.NewBundled(a.cfg.Source.Dataset)
	}

	svc := catalog.NewService(catalog.NewStore(), src, a.logger)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	a.catalog = svc
	return svc, nil
}

func (a *app) libraryService(ctx context.Context) (*library.Service, error) {
	if a.lists != nil {
		return a.lists, nil
	}
	store, err := a.kv(ctx)
	if err != nil {
		return nil, err
	}
	a.lists = library.NewService(store, a.logger)
	return a.lists, nil
}

func (a *app) authService(ctx context.Context) (*auth.Service, error) {
	if a.auth != nil {
		return a.auth, nil
	}
	store, err := a.kv(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := auth.NewService(a.cfg.Auth.JWTSecret, a.cfg.Auth.SessionTTL, auth.Account{
		Email:        a.cfg.Auth.DemoEmail,
		PasswordHash: a.cfg.Auth.DemoPasswordHash,
		Name:         "Admin",
	}, store, a.logger)
	if err != nil {
		return nil, err
	}
	a.auth = svc
	return svc, nil
}

// requireUser fails with auth.ErrUnauthorized unless someone is logged in.
func (a *app) requireUser(ctx context.Context) (auth.User, error) {
	svc, err := a.authService(ctx)
	if err != nil {
		return auth.User{}, err
	}
	return svc.Current(ctx)
}

func (a *app) profileService(ctx context.Context, u auth.User) (*profile.Service, error) {
	if a.profile != nil {
		return a.profile, nil
	}
	store, err := a.kv(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := a.libraryService(ctx)
	if err != nil {
		return nil, err
	}
	a.profile = profile.NewService(store, lists, profile.Profile{Name: u.Name, Email: u.Email}, a.logger)
	return a.profile, nil
}
