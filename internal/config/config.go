package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all moviedex settings.
type Config struct {
	Source   SourceConfig `yaml:"source"`
	TMDB     TMDBConfig   `yaml:"tmdb"`
	Store    StoreConfig  `yaml:"store"`
	Auth     AuthConfig   `yaml:"auth"`
	Log      LogConfig    `yaml:"log"`
	PageSize int          `yaml:"page_size"`
}

type SourceConfig struct {
	// Kind is "bundled" or "tmdb".
	Kind string `yaml:"kind"`
	// Dataset replaces the embedded dataset when set.
	Dataset string `yaml:"dataset"`
}

type TMDBConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	RPS        int    `yaml:"rps"`
	MaxRetries int    `yaml:"max_retries"`
	Limit      int    `yaml:"limit"`
}

type StoreConfig struct {
	// Driver is "memory", "sqlite" or "postgres".
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	DSN        string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	DemoEmail        string        `yaml:"demo_email"`
	DemoPasswordHash string        `yaml:"demo_password_hash"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Source: SourceConfig{Kind: "bundled"},
		TMDB: TMDBConfig{
			BaseURL:    "https://api.themoviedb.org/3",
			RPS:        4,
			MaxRetries: 3,
			Limit:      50,
		},
		Store: StoreConfig{
			Driver:     "sqlite",
			SQLitePath: "moviedex.db",
		},
		Auth: AuthConfig{
			JWTSecret:  "moviedex-dev-secret",
			SessionTTL: 24 * time.Hour,
			DemoEmail:  "admin@test.com",
		},
		Log:      LogConfig{Level: "warn", Format: "console"},
		PageSize: 12,
	}
}

// LoadEnvFiles reads .env and .env.local without overriding variables the
// runtime already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load layers defaults, the YAML file at path (skipped when path is empty or
// the file does not exist), and environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Source.Kind, "MOVIEDEX_SOURCE")
	setString(&c.Source.Dataset, "MOVIEDEX_DATASET")
	setString(&c.TMDB.APIKey, "TMDB_API_KEY")
	setString(&c.TMDB.BaseURL, "TMDB_BASE_URL")
	setString(&c.Store.Driver, "MOVIEDEX_STORE")
	setString(&c.Store.SQLitePath, "MOVIEDEX_SQLITE_PATH")
	setString(&c.Store.DSN, "DB_DSN")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.DemoEmail, "DEMO_EMAIL")
	setString(&c.Auth.DemoPasswordHash, "DEMO_PASSWORD_HASH")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	return errors.Join(
		setInt(&c.TMDB.RPS, "TMDB_RPS"),
		setInt(&c.TMDB.MaxRetries, "TMDB_MAX_RETRIES"),
		setInt(&c.TMDB.Limit, "TMDB_LIMIT"),
		setInt(&c.PageSize, "PAGE_SIZE"),
		setDuration(&c.Auth.SessionTTL, "SESSION_TTL"),
	)
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Source.Kind {
	case "bundled":
	case "tmdb":
		if c.TMDB.APIKey == "" {
			errs = append(errs, errors.New("source tmdb needs TMDB_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q (want bundled or tmdb)", c.Source.Kind))
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	case "postgres":
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store postgres needs DB_DSN"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q (want memory, sqlite or postgres)", c.Store.Driver))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is empty"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
