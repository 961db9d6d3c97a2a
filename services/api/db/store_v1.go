package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DatasetInfo describes one ingestion run.
type DatasetInfo struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Sources     []string  `json:"sources"`
	RecordCount int       `json:"record_count"`
}

const listDatasetsSQL = `
    SELECT id, created_at, sources, record_count
    FROM twin.datasets
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
`

// ListDatasets returns persisted datasets, newest first.
func (s *Store) ListDatasets(ctx context.Context, limit, offset int) ([]DatasetInfo, error) {
	rows, err := s.pool.Query(ctx, listDatasetsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DatasetInfo, 0, limit)
	for rows.Next() {
		var d DatasetInfo
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.Sources, &d.RecordCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
