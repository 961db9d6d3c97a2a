package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/model"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/config"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/db"
)

func testTwin(t *testing.T) *predict.Twin {
	t.Helper()
	records := make([]dataset.Record, 0, 40)
	for i := 0; i < 40; i++ {
		p := 4 + float64(i*13%40)/4
		records = append(records, dataset.Record{
			PowerOutput:        dataset.Float(p),
			EfficiencyElectric: dataset.Float(15 + p),
			ExhaustTemp:        dataset.Float(300 + 8*p),
			DieselMassFlow:     dataset.Float(0.2 * p),
			CH4MassFlowCalc:    dataset.Float(0.25 * p),
			Sheet:              "S1",
		})
	}
	twin, err := predict.Build(context.Background(), dataset.New("test-ds", records), model.DefaultOptions(), physics.Default(), predict.DefaultRating())
	require.NoError(t, err)
	return twin
}

type memoryCache struct {
	mu   sync.Mutex
	data map[predict.Query]*predict.Result
}

func (m *memoryCache) Get(_ context.Context, q predict.Query) (*predict.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.data[q]
	return res, ok
}

func (m *memoryCache) Set(_ context.Context, q predict.Query, res *predict.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[q] = res
	return nil
}

type fakeStore struct {
	datasets []db.DatasetInfo
	err      error
}

func (f fakeStore) ListDatasets(context.Context, int, int) ([]db.DatasetInfo, error) {
	return f.datasets, f.err
}

func do(t *testing.T, s *Server, method, path, body string, header ...string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func TestHealthz(t *testing.T) {
	s := New(config.Config{}, testTwin(t), nil, nil, zerolog.Nop())

	code, body := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "test-ds", body["dataset_id"])
	assert.EqualValues(t, 40, body["records"])
}

func TestBearerAuth(t *testing.T) {
	s := New(config.Config{BearerToken: "secret"}, testTwin(t), nil, nil, zerolog.Nop())

	code, _ := do(t, s, http.MethodGet, "/api/v1/models", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, s, http.MethodGet, "/api/v1/models", "", "Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, code)
}

func TestDatasetEndpoint(t *testing.T) {
	s := New(config.Config{}, testTwin(t), nil, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dataset?limit=5&offset=38", nil)
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))

	var body struct {
		Data []dataset.Record `json:"data"`
		Meta struct {
			Columns    []string `json:"columns"`
			Count      int      `json:"count"`
			TotalCount int      `json:"total_count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Meta.Count)
	assert.Equal(t, 40, body.Meta.TotalCount)
	assert.Equal(t, dataset.Columns, body.Meta.Columns)

	code, _ := do(t, s, http.MethodGet, "/api/v1/dataset?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCorrelationsEndpoint(t *testing.T) {
	s := New(config.Config{}, testTwin(t), nil, nil, zerolog.Nop())

	code, body := do(t, s, http.MethodGet, "/api/v1/dataset/correlations?top=2", "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["top"])

	code, _ = do(t, s, http.MethodGet, "/api/v1/dataset/correlations?top=zero", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPredictEndpoint(t *testing.T) {
	cache := &memoryCache{data: map[predict.Query]*predict.Result{}}
	s := New(config.Config{}, testTwin(t), nil, cache, zerolog.Nop())
	body := `{"power_output_kw": 8, "diesel_energy_share_percent": 30}`

	code, resp := do(t, s, http.MethodPost, "/api/v1/predict", body)
	require.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]any)
	assert.InDelta(t, 23.0, data["efficiency_percent"], 1e-6)
	nearest := data["nearest"].(map[string]any)
	assert.EqualValues(t, 8, nearest["power_output"])
	meta := resp["meta"].(map[string]any)
	assert.Equal(t, false, meta["cached"])

	code, resp = do(t, s, http.MethodPost, "/api/v1/predict", body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["meta"].(map[string]any)["cached"])
}

func TestPredictEndpointErrors(t *testing.T) {
	s := New(config.Config{}, testTwin(t), nil, nil, zerolog.Nop())

	cases := []struct {
		name string
		body string
		code int
		kind string
	}{
		{"missing share", `{"power_output_kw": 8}`, http.StatusBadRequest, ""},
		{"share out of range", `{"power_output_kw": 8, "diesel_energy_share_percent": 150}`, http.StatusBadRequest, "invalid_range"},
		{"non-positive power", `{"power_output_kw": 0, "diesel_energy_share_percent": 20}`, http.StatusBadRequest, "invalid_range"},
		{"malformed", `{`, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, s, http.MethodPost, "/api/v1/predict", tc.body)
			assert.Equal(t, tc.code, code)
			if tc.kind != "" {
				assert.Equal(t, tc.kind, resp["kind"])
			}
		})
	}
}

func TestModelsEndpoints(t *testing.T) {
	s := New(config.Config{}, testTwin(t), nil, nil, zerolog.Nop())

	code, resp := do(t, s, http.MethodGet, "/api/v1/models", "")
	require.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]any)
	eff := data["efficiency"].(map[string]any)
	assert.NotNil(t, eff["knn"])
	assert.Len(t, eff["search"], 8)
	assert.NotNil(t, data["exhaust_temp"].(map[string]any)["linear"])

	code, resp = do(t, s, http.MethodGet, "/api/v1/models/efficiency/report?power=8", "")
	require.Equal(t, http.StatusOK, code)
	report := resp["data"].(map[string]any)
	assert.EqualValues(t, 8, report["closest_measured_power"])

	code, _ = do(t, s, http.MethodGet, "/api/v1/models/efficiency/report?power=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListDatasets(t *testing.T) {
	twin := testTwin(t)

	code, _ := do(t, New(config.Config{}, twin, nil, nil, zerolog.Nop()), http.MethodGet, "/api/v1/datasets", "")
	assert.Equal(t, http.StatusNotFound, code)

	store := fakeStore{datasets: []db.DatasetInfo{{Sources: []string{"a.xlsx"}, RecordCount: 12}}}
	code, resp := do(t, New(config.Config{}, twin, store, nil, zerolog.Nop()), http.MethodGet, "/api/v1/datasets", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["data"], 1)

	failing := fakeStore{err: errors.New("connection refused")}
	code, _ = do(t, New(config.Config{}, twin, failing, nil, zerolog.Nop()), http.MethodGet, "/api/v1/datasets", "")
	assert.Equal(t, http.StatusInternalServerError, code)
}
