// Package pipeline turns raw captures into the canonical dataset: normalize, derive, project.
package pipeline

import (
	"fmt"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/features"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/schema"
)

// Report collects what ingestion absorbed instead of failing.
type Report struct {
	Warnings       []errs.Warning `json:"warnings"`
	SkippedColumns []string       `json:"skipped_columns"`
	Sheets         int            `json:"sheets"`
	Rows           int            `json:"rows"`
}

// Load runs the full ingestion chain over captures and returns the canonical dataset.
func Load(id string, captures []ingest.RawCapture, opts ingest.Options, c physics.Constants) (*dataset.Dataset, Report, error) {
	var report Report

	table, warnings, err := ingest.Normalize(captures, opts)
	report.Warnings = warnings
	if err != nil {
		return nil, report, fmt.Errorf("normalize: %w", err)
	}
	report.Sheets = len(captures) - len(warnings)

	if err := features.DeriveTable(table, c); err != nil {
		return nil, report, fmt.Errorf("derive: %w", err)
	}

	ds, skipped, err := schema.Project(table, id)
	if err != nil {
		return nil, report, fmt.Errorf("project: %w", err)
	}
	report.SkippedColumns = skipped
	report.Rows = ds.Len()
	return ds, report, nil
}
