package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/ingester/internal/models"
)

// BuildDatasetRow describes an ingestion run of ds.
func BuildDatasetRow(id uuid.UUID, ds *dataset.Dataset, sources []string, createdAt time.Time) models.DatasetRow {
	return models.DatasetRow{
		ID:          id,
		CreatedAt:   createdAt,
		Sources:     append([]string(nil), sources...),
		RecordCount: ds.Len(),
	}
}

// BuildMeasurementRows converts canonical records into database-ready rows.
func BuildMeasurementRows(id uuid.UUID, ds *dataset.Dataset) []models.MeasurementRow {
	rows := make([]models.MeasurementRow, 0, ds.Len())
	for i, rec := range ds.Records() {
		values := make([]*float64, len(dataset.NumericColumns))
		for j, col := range dataset.NumericColumns {
			values[j], _ = rec.Value(col)
		}
		rows = append(rows, models.MeasurementRow{
			DatasetID: id,
			RowIdx:    i,
			Values:    values,
			Sheet:     rec.Sheet,
		})
	}
	return rows
}

// ValuePtrString prints pointer values for logging.
func ValuePtrString(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.3f", *v)
}
