package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DATABASE_URL", "TWIN_DATASET_ID", "TWIN_DATASET_PATH", "TWIN_RAW_PATHS", "PORT", "API_PORT",
	"API_BEARER_TOKEN", "REDIS_URL", "PREDICTION_CACHE_TTL", "TWIN_CV_FOLDS", "TWIN_GRID_WORKERS",
	"TWIN_HEADER_ROWS", "GENERATOR_VOLTAGE", "GENERATOR_RPM", "GENERATOR_POLES",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWIN_DATASET_PATH", "outputs/digital_twin_cleaned_24cols.csv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.CVFolds)
	assert.Equal(t, 3, cfg.HeaderRows)
	assert.Equal(t, 230.0, cfg.Rating.VoltageV)
	assert.Equal(t, 25.0, cfg.Rating.Frequency())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWIN_RAW_PATHS", " a.xlsx, ,b.xlsx ")
	t.Setenv("API_PORT", "9090")
	t.Setenv("PREDICTION_CACHE_TTL", "30s")
	t.Setenv("TWIN_CV_FOLDS", "3")
	t.Setenv("GENERATOR_POLES", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, cfg.RawPaths)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.CVFolds)
	assert.Equal(t, 50.0, cfg.Rating.Frequency())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"no source":   {"", ""},
		"bad port":    {"PORT", "eighty"},
		"bad folds":   {"TWIN_CV_FOLDS", "1"},
		"bad ttl":     {"PREDICTION_CACHE_TTL", "soon"},
		"bad voltage": {"GENERATOR_VOLTAGE", "-230"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			if kv[0] != "" {
				t.Setenv("DATABASE_URL", "postgres://localhost/twin")
				t.Setenv(kv[0], kv[1])
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
