package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TWIN_OUTPUT_PATH", "")
	t.Setenv("TWIN_HEADER_ROWS", "")
	t.Setenv("TWIN_REQUEST_TIMEOUT", "")
	t.Setenv("DRY_RUN", "")
	t.Setenv("GENERATOR_VOLTAGE", "")
	t.Setenv("GENERATOR_RPM", "")
	t.Setenv("GENERATOR_POLES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, predict.DefaultRating(), cfg.Rating)
	assert.Equal(t, defaultOutputPath, cfg.OutputPath)
	assert.Equal(t, 3, cfg.HeaderRows)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.DryRun)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", " postgres://twin@localhost/twin ")
	t.Setenv("TWIN_OUTPUT_PATH", "out.csv")
	t.Setenv("TWIN_HEADER_ROWS", "0")
	t.Setenv("TWIN_REQUEST_TIMEOUT", "5s")
	t.Setenv("DRY_RUN", "TRUE")
	t.Setenv("GENERATOR_VOLTAGE", "400")
	t.Setenv("GENERATOR_RPM", "3000")
	t.Setenv("GENERATOR_POLES", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://twin@localhost/twin", cfg.DatabaseURL)
	assert.Equal(t, "out.csv", cfg.OutputPath)
	assert.Equal(t, 0, cfg.HeaderRows)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, predict.Rating{VoltageV: 400, RPM: 3000, Poles: 4}, cfg.Rating)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("TWIN_HEADER_ROWS", "-2")
	_, err := Load()
	assert.ErrorContains(t, err, "TWIN_HEADER_ROWS")

	t.Setenv("TWIN_HEADER_ROWS", "")
	t.Setenv("TWIN_REQUEST_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "TWIN_REQUEST_TIMEOUT")

	t.Setenv("TWIN_REQUEST_TIMEOUT", "")
	t.Setenv("GENERATOR_POLES", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "GENERATOR_POLES")
}
