package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

// ErrNoDataset is returned when no persisted dataset matches.
var ErrNoDataset = errors.New("no persisted dataset")

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const latestDatasetSQL = `
    SELECT id
    FROM twin.datasets
    ORDER BY created_at DESC
    LIMIT 1
`

// LatestDatasetID returns the id of the most recently ingested dataset.
func (s *Store) LatestDatasetID(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID
	if err := s.pool.QueryRow(ctx, latestDatasetSQL).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNoDataset
		}
		return uuid.Nil, err
	}
	return id, nil
}

// measurementsSQL selects the canonical columns of one dataset in ingestion order.
var measurementsSQL = `
    SELECT ` + strings.Join(dataset.Columns, ", ") + `
    FROM twin.measurements
    WHERE dataset_id = $1
    ORDER BY row_idx
`

// LoadDataset reads a persisted dataset. An empty id loads the latest one.
func (s *Store) LoadDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	var datasetID uuid.UUID
	if id == "" {
		latest, err := s.LatestDatasetID(ctx)
		if err != nil {
			return nil, err
		}
		datasetID = latest
	} else {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid dataset id %q: %w", id, err)
		}
		datasetID = parsed
	}

	rows, err := s.pool.Query(ctx, measurementsSQL, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]dataset.Record, 0)
	values := make([]*float64, len(dataset.NumericColumns))
	for rows.Next() {
		var rec dataset.Record
		dest := make([]any, 0, len(dataset.Columns))
		for i := range values {
			values[i] = nil
			dest = append(dest, &values[i])
		}
		dest = append(dest, &rec.Sheet)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for i, col := range dataset.NumericColumns {
			rec.Set(col, values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s: %w", datasetID, ErrNoDataset)
	}
	return dataset.New(datasetID.String(), records), nil
}
