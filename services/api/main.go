package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/capture"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/model"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/pipeline"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/cache"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/config"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/db"
	httpserver "github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/http"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db connection error")
		}
		defer store.Close()
	}

	ds, err := loadDataset(ctx, cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load error")
	}

	opts := model.DefaultOptions()
	opts.Folds = cfg.CVFolds
	opts.Workers = cfg.GridWorkers

	started := time.Now()
	twin, err := predict.Build(ctx, ds, opts, physics.Default(), cfg.Rating)
	if err != nil {
		log.Fatal().Err(err).Msg("model build error")
	}
	log.Info().
		Str("dataset", ds.ID()).
		Int("records", ds.Len()).
		Stringer("efficiency_params", twin.Efficiency.KNN).
		Float64("efficiency_cv_r2", twin.Efficiency.CVR2).
		Float64("exhaust_cv_r2", twin.Exhaust.CVR2).
		Dur("took", time.Since(started)).
		Msg("twin ready")

	var lister httpserver.DatasetLister
	if store != nil {
		lister = store
	}

	var predictions httpserver.PredictionCache
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL, ds.ID(), cfg.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("prediction cache disabled")
		} else {
			defer c.Close()
			predictions = c
		}
	}

	srv := httpserver.New(cfg, twin, lister, predictions, log.Logger)
	log.Info().Str("addr", cfg.ListenAddr()).Msg("REST API listening")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// loadDataset picks the first configured source: database, canonical CSV, raw captures.
func loadDataset(ctx context.Context, cfg config.Config, store *db.Store) (*dataset.Dataset, error) {
	switch {
	case store != nil:
		return store.LoadDataset(ctx, cfg.DatasetID)
	case cfg.DatasetPath != "":
		f, err := os.Open(cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dataset.ReadCSV(f, cfg.DatasetPath)
	case len(cfg.RawPaths) > 0:
		captures, err := capture.Load(ctx, &http.Client{Timeout: 30 * time.Second}, cfg.RawPaths)
		if err != nil {
			return nil, err
		}
		opts := ingest.DefaultOptions()
		opts.HeaderRows = cfg.HeaderRows
		ds, report, err := pipeline.Load("raw", captures, opts, physics.Default())
		for _, w := range report.Warnings {
			log.Warn().Str("source", w.Source).Str("sheet", w.Sheet).Msg(w.Reason)
		}
		if len(report.SkippedColumns) > 0 {
			log.Info().Strs("columns", report.SkippedColumns).Msg("columns outside the canonical schema")
		}
		return ds, err
	}
	return nil, errors.New("no dataset source configured")
}
