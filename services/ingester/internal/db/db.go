package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/models"
)

// SchemaSQL creates the tables read by the API service.
var SchemaSQL = buildSchemaSQL()

func buildSchemaSQL() string {
	var b strings.Builder
	b.WriteString(`CREATE SCHEMA IF NOT EXISTS twin;
CREATE TABLE IF NOT EXISTS twin.datasets (
    id uuid PRIMARY KEY,
    created_at timestamptz NOT NULL,
    sources text[] NOT NULL,
    record_count integer NOT NULL
);
CREATE TABLE IF NOT EXISTS twin.measurements (
    dataset_id uuid NOT NULL REFERENCES twin.datasets (id) ON DELETE CASCADE,
    row_idx integer NOT NULL,
`)
	for _, col := range dataset.NumericColumns {
		b.WriteString("    " + col + " double precision,\n")
	}
	b.WriteString(`    sheet text NOT NULL,
    PRIMARY KEY (dataset_id, row_idx)
);`)
	return b.String()
}

// insertMeasurementSQL binds dataset_id, row_idx, the numeric columns and sheet.
var insertMeasurementSQL = func() string {
	cols := append([]string{"dataset_id", "row_idx"}, dataset.NumericColumns...)
	cols = append(cols, dataset.ColSheet)
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO twin.measurements (" + strings.Join(cols, ", ") + ")\nVALUES (" + strings.Join(params, ",") + ")"
}()

// EnsureSchema creates the twin schema when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, SchemaSQL)
	return err
}

// SaveDataset writes the run and its measurements in one transaction.
func SaveDataset(ctx context.Context, pool *pgxpool.Pool, run models.DatasetRow, rows []models.MeasurementRow) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO twin.datasets (id, created_at, sources, record_count)
VALUES ($1,$2,$3,$4)`, run.ID, run.CreatedAt, run.Sources, run.RecordCount); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		args := make([]any, 0, len(r.Values)+3)
		args = append(args, r.DatasetID, r.RowIdx)
		for _, v := range r.Values {
			args = append(args, v)
		}
		args = append(args, r.Sheet)
		batch.Queue(insertMeasurementSQL, args...)
	}

	res := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return err
		}
	}
	if err := res.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
