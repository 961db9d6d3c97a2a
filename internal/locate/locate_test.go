package locate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
)

func records(powers ...float64) []dataset.Record {
	out := make([]dataset.Record, len(powers))
	for i, p := range powers {
		out[i] = dataset.Record{PowerOutput: dataset.Float(p), Sheet: string(rune('A' + i))}
	}
	return out
}

func TestNearestTieKeepsFirstOccurrence(t *testing.T) {
	recs := records(3.0, 5.0, 9.9, 10.1)

	rec, err := Nearest(recs, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 9.9, *rec.PowerOutput, "9.9 and 10.1 are equally far; the first one wins")
	assert.Equal(t, "C", rec.Sheet)

	reversed := records(10.1, 9.9)
	rec, err = Nearest(reversed, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 10.1, *rec.PowerOutput)
}

func TestNearestSkipsMissingPower(t *testing.T) {
	recs := append([]dataset.Record{{Sheet: "blank"}}, records(20, 12)...)

	rec, err := Nearest(recs, 11)
	require.NoError(t, err)
	assert.Equal(t, 12.0, *rec.PowerOutput)
}

func TestNearestEmpty(t *testing.T) {
	for name, recs := range map[string][]dataset.Record{
		"no records":    nil,
		"missing power": {{Sheet: "S1"}, {Sheet: "S2"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Nearest(recs, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrEmptyDataset))
		})
	}
}
