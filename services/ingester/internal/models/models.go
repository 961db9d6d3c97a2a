package models

import (
	"time"

	"github.com/google/uuid"
)

// DatasetRow captures one ingestion run for DB operations.
type DatasetRow struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Sources     []string
	RecordCount int
}

// MeasurementRow is one canonical record ready for insertion. Values align with
// dataset.NumericColumns.
type MeasurementRow struct {
	DatasetID uuid.UUID
	RowIdx    int
	Values    []*float64
	Sheet     string
}
