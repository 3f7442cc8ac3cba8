package config

import (
	"errors"
	"fmt"
	"hos-log-service/internal/geometry"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port               string
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	SeedPath           string
	LayoutsPath        string
	RateLimitPerSecond float64
	RateLimitBurst     int
	AllowedOrigins     []string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads .env into the process environment when present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", DriverSqlite)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    Get("SEED_PATH", "data/seeds/trips.json"),
		LayoutsPath: Get("GRID_LAYOUTS_PATH", "configs/grid_layouts.yaml"),
	}

	rps, err := strconv.ParseFloat(Get("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps < 0 {
		return Config{}, errors.New("load config: RATE_LIMIT_RPS must be a non-negative number")
	}
	cfg.RateLimitPerSecond = rps

	burst, err := strconv.Atoi(Get("RATE_LIMIT_BURST", "40"))
	if err != nil || burst < 1 {
		return Config{}, errors.New("load config: RATE_LIMIT_BURST must be a positive integer")
	}
	cfg.RateLimitBurst = burst

	for _, o := range strings.Split(Get("ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	switch cfg.DBDriver {
	case DriverSqlite:
	case DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, errors.New("load config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// LoadLayouts reads grid layout presets keyed by name ("daily", "hos").
// Presets missing from the file, or a missing file, fall back to
// geometry.DefaultLayouts; fields left out of a preset keep their defaults.
func LoadLayouts(path string) (map[string]geometry.Layout, error) {
	layouts := geometry.DefaultLayouts()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layouts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layouts: read %q: %w", path, err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("load layouts: parse %q: %w", path, err)
	}

	for name, node := range doc {
		l := layouts[name]
		if err := node.Decode(&l); err != nil {
			return nil, fmt.Errorf("load layouts: preset %q: %w", name, err)
		}
		layouts[name] = l
	}
	return layouts, nil
}
