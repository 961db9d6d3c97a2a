package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

const (
	defaultOutputPath     = "outputs/digital_twin_cleaned_24cols.csv"
	defaultHeaderRows     = 3
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the ingestion CLI. Flags override these values.
type Config struct {
	DatabaseURL    string
	OutputPath     string
	HeaderRows     int
	RequestTimeout time.Duration
	DryRun         bool
	Rating         predict.Rating
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{Rating: predict.DefaultRating()}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.OutputPath = strings.TrimSpace(os.Getenv("TWIN_OUTPUT_PATH"))
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutputPath
	}

	cfg.HeaderRows = defaultHeaderRows
	if v := strings.TrimSpace(os.Getenv("TWIN_HEADER_ROWS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid TWIN_HEADER_ROWS: %q", v)
		}
		cfg.HeaderRows = n
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("TWIN_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid TWIN_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	ratings := []struct {
		name string
		dst  *float64
	}{
		{"GENERATOR_VOLTAGE", &cfg.Rating.VoltageV},
		{"GENERATOR_RPM", &cfg.Rating.RPM},
		{"GENERATOR_POLES", &cfg.Rating.Poles},
	}
	for _, it := range ratings {
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

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	return cfg, nil
}
