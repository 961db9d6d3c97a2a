// twin-ingest normalizes raw test-bench captures into the canonical dataset and queries the
// fitted twin from the command line.
//
// Usage:
//
//	twin-ingest normalize --raw bench.xlsx [--out dataset.csv] [--save]
//	twin-ingest predict --dataset dataset.csv --power 10 --des 30 [--json]
//	twin-ingest report --dataset dataset.csv --power 10
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/capture"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/model"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/pipeline"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/config"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/db"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/report"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	app := &cli.App{
		Name:  "twin-ingest",
		Usage: "Dual-fuel generator digital twin: dataset ingestion and offline queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"TWIN_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			normalizeCommand(cfg),
			predictCommand(cfg),
			reportCommand(cfg),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("twin-ingest failed")
		cancel()
		os.Exit(1)
	}
}

func rawFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "raw",
		Aliases: []string{"r"},
		Usage:   "Raw capture workbook, CSV or URL (repeatable)",
	}
}

func headerRowsFlag(cfg config.Config) cli.Flag {
	return &cli.IntFlag{
		Name:  "header-rows",
		Value: cfg.HeaderRows,
		Usage: "Metadata rows preceding the header in each sheet",
	}
}

func sourceFlags(cfg config.Config) []cli.Flag {
	return []cli.Flag{
		rawFlag(),
		&cli.StringFlag{
			Name:    "dataset",
			Aliases: []string{"d"},
			Usage:   "Canonical dataset CSV written by normalize",
		},
		headerRowsFlag(cfg),
	}
}

func modelFlags() []cli.Flag {
	defaults := model.DefaultOptions()
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "folds",
			Value: defaults.Folds,
			Usage: "Cross-validation folds",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: defaults.Workers,
			Usage: "Concurrent grid evaluations",
		},
	}
}

// =============================================================================
// NORMALIZE COMMAND
// =============================================================================

func normalizeCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Normalize raw captures into the canonical 24-column dataset",
		Flags: []cli.Flag{
			rawFlag(),
			headerRowsFlag(cfg),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   cfg.OutputPath,
				Usage:   "Canonical CSV output path",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Persist the dataset to DATABASE_URL",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Value: cfg.DryRun,
				Usage: "Log what would be written without touching disk or database",
			},
		},
		Action: func(c *cli.Context) error {
			sources := c.StringSlice("raw")
			if len(sources) == 0 {
				return errors.New("at least one --raw capture is required")
			}

			id := uuid.New()
			ds, err := loadRaw(c.Context, cfg, id.String(), sources, c.Int("header-rows"))
			if err != nil {
				return err
			}
			log.Info().Str("dataset", ds.ID()).Int("records", ds.Len()).Msg("dataset normalized")

			dryRun := c.Bool("dry-run")
			out := c.String("out")
			if dryRun {
				log.Info().Str("out", out).Msg("dry-run: skipping CSV write")
			} else if err := writeCSV(out, ds); err != nil {
				return err
			} else {
				log.Info().Str("out", out).Msg("canonical CSV written")
			}

			if !c.Bool("save") {
				return nil
			}
			return save(c.Context, cfg, id, ds, sources, dryRun)
		},
	}
}

func writeCSV(path string, ds *dataset.Dataset) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func save(ctx context.Context, cfg config.Config, id uuid.UUID, ds *dataset.Dataset, sources []string, dryRun bool) error {
	run := utils.BuildDatasetRow(id, ds, sources, time.Now().UTC().Truncate(time.Second))
	rows := utils.BuildMeasurementRows(id, ds)

	if dryRun {
		log.Info().Str("dataset", id.String()).Int("rows", len(rows)).Msg("dry-run: skipping database insert")
		for _, r := range rows {
			log.Debug().Int("row", r.RowIdx).Str("sheet", r.Sheet).Strs("values", valueStrings(r.Values)).Msg("dry-run: would insert")
		}
		return nil
	}

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for --save")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := db.SaveDataset(ctx, pool, run, rows); err != nil {
		return fmt.Errorf("save dataset %s: %w", id, err)
	}
	log.Info().Str("dataset", id.String()).Int("rows", len(rows)).Msg("dataset saved")
	return nil
}

func valueStrings(values []*float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = utils.ValuePtrString(v)
	}
	return out
}

// =============================================================================
// PREDICT COMMAND
// =============================================================================

func predictCommand(cfg config.Config) *cli.Command {
	flags := append(sourceFlags(cfg), modelFlags()...)
	flags = append(flags,
		&cli.Float64Flag{
			Name:     "power",
			Aliases:  []string{"p"},
			Usage:    "Target electrical power output (kW)",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     "des",
			Usage:    "Diesel energy share (%)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the full result as JSON",
		},
	)

	return &cli.Command{
		Name:  "predict",
		Usage: "Predict efficiency, fuel mass flows and exhaust temperature for one operating point",
		Flags: flags,
		Action: func(c *cli.Context) error {
			twin, err := buildTwin(c, cfg)
			if err != nil {
				return err
			}

			res, err := twin.Predict(predict.QueryFromPercent(c.Float64("power"), c.Float64("des")))
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return report.Render(c.App.Writer, res)
		},
	}
}

// =============================================================================
// REPORT COMMAND
// =============================================================================

func reportCommand(cfg config.Config) *cli.Command {
	flags := append(sourceFlags(cfg), modelFlags()...)
	flags = append(flags,
		&cli.Float64Flag{
			Name:     "power",
			Aliases:  []string{"p"},
			Usage:    "Power set-point (kW)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the report as JSON",
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Summarise the tuned efficiency model at one power set-point",
		Flags: flags,
		Action: func(c *cli.Context) error {
			twin, err := buildTwin(c, cfg)
			if err != nil {
				return err
			}

			r, err := twin.Report(c.Float64("power"))
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return report.RenderModel(c.App.Writer, r)
		},
	}
}

func buildTwin(c *cli.Context, cfg config.Config) (*predict.Twin, error) {
	var (
		ds  *dataset.Dataset
		err error
	)
	switch {
	case c.String("dataset") != "":
		ds, err = readCSV(c.String("dataset"))
	case len(c.StringSlice("raw")) > 0:
		ds, err = loadRaw(c.Context, cfg, "raw", c.StringSlice("raw"), c.Int("header-rows"))
	default:
		return nil, errors.New("one of --dataset or --raw is required")
	}
	if err != nil {
		return nil, err
	}

	opts := model.DefaultOptions()
	opts.Folds = c.Int("folds")
	opts.Workers = c.Int("workers")

	started := time.Now()
	twin, err := predict.Build(c.Context, ds, opts, physics.Default(), cfg.Rating)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Stringer("efficiency_params", twin.Efficiency.KNN).
		Float64("efficiency_cv_r2", twin.Efficiency.CVR2).
		Dur("took", time.Since(started)).
		Msg("twin fitted")
	return twin, nil
}

func readCSV(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadCSV(f, path)
}

func loadRaw(ctx context.Context, cfg config.Config, id string, sources []string, headerRows int) (*dataset.Dataset, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	captures, err := capture.Load(ctx, client, sources)
	if err != nil {
		return nil, err
	}

	opts := ingest.DefaultOptions()
	opts.HeaderRows = headerRows
	ds, rep, err := pipeline.Load(id, captures, opts, physics.Default())
	for _, w := range rep.Warnings {
		log.Warn().Str("source", w.Source).Str("sheet", w.Sheet).Msg(w.Reason)
	}
	if len(rep.SkippedColumns) > 0 {
		log.Info().Strs("columns", rep.SkippedColumns).Msg("columns outside the canonical schema")
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Int("sheets", rep.Sheets).Int("rows", rep.Rows).Msg("captures loaded")
	return ds, nil
}
