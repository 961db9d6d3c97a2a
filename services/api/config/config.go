package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

// Config holds environment-driven settings for the twin API.
type Config struct {
	// Dataset sources, first match wins: DatabaseURL, DatasetPath, RawPaths.
	DatabaseURL string
	DatasetID   string
	DatasetPath string
	RawPaths    []string

	Port        int
	BearerToken string

	RedisURL string
	CacheTTL time.Duration

	CVFolds     int
	GridWorkers int
	HeaderRows  int
	Rating      predict.Rating
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:        8080,
		CacheTTL:    10 * time.Minute,
		CVFolds:     5,
		GridWorkers: runtime.NumCPU(),
		HeaderRows:  3,
		Rating:      predict.DefaultRating(),
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DatasetID = strings.TrimSpace(os.Getenv("TWIN_DATASET_ID"))
	cfg.DatasetPath = strings.TrimSpace(os.Getenv("TWIN_DATASET_PATH"))
	for _, p := range strings.Split(os.Getenv("TWIN_RAW_PATHS"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.RawPaths = append(cfg.RawPaths, p)
		}
	}
	if cfg.DatabaseURL == "" && cfg.DatasetPath == "" && len(cfg.RawPaths) == 0 {
		return cfg, errors.New("one of DATABASE_URL, TWIN_DATASET_PATH or TWIN_RAW_PATHS is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("PREDICTION_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid PREDICTION_CACHE_TTL: %s", v)
		}
		cfg.CacheTTL = d
	}

	ints := []struct {
		name string
		dst  *int
		min  int
	}{
		{"TWIN_CV_FOLDS", &cfg.CVFolds, 2},
		{"TWIN_GRID_WORKERS", &cfg.GridWorkers, 1},
		{"TWIN_HEADER_ROWS", &cfg.HeaderRows, 0},
	}
	for _, it := range ints {
		v := strings.TrimSpace(os.Getenv(it.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < it.min {
			return cfg, fmt.Errorf("invalid %s: %s", it.name, v)
		}
		*it.dst = n
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"GENERATOR_VOLTAGE", &cfg.Rating.VoltageV},
		{"GENERATOR_RPM", &cfg.Rating.RPM},
		{"GENERATOR_POLES", &cfg.Rating.Poles},
	}
	for _, it := range floats {
		v := strings.TrimSpace(os.Getenv(it.name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("invalid %s: %s", it.name, v)
		}
		*it.dst = f
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
