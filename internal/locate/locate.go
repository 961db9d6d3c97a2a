// Package locate finds the real measurement closest to a queried power output.
package locate

import (
	"math"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
)

// Nearest returns the record whose power output is closest to target. Records without power
// are ignored; on equal distance the earlier record wins.
func Nearest(records []dataset.Record, target float64) (dataset.Record, error) {
	best := -1
	bestDiff := math.Inf(1)
	for i, rec := range records {
		if rec.PowerOutput == nil {
			continue
		}
		if d := math.Abs(*rec.PowerOutput - target); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	if best < 0 {
		return dataset.Record{}, errs.EmptyDataset("locate.nearest", dataset.ColPowerOutput)
	}
	return records[best], nil
}
