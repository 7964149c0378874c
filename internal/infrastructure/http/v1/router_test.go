package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agroledger/internal/domain/activity"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/domain/reports"
	"agroledger/internal/infrastructure/export"
	"agroledger/internal/infrastructure/metrics"
	"agroledger/internal/infrastructure/storage/memory"
	"agroledger/pkg/logger"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New(memory.DemoSnapshot())
	reg := prometheus.NewRegistry()

	router := NewRouter(RouterConfig{
		Logger:         logger.NewNop(),
		Ledger:         ledger.NewService(store),
		Reports:        reports.NewService(store),
		Activity:       activity.NewService(store, memory.NewTxManager(), activity.DefaultConfig()),
		Store:          store,
		StoreKind:      "memory",
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return router, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestTotalsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name  string
		query string
		want  map[string]string
	}{
		{
			name:  "warehouse",
			query: "?warehouse_id=1",
			want: map[string]string{
				"total_in": "23000.00", "total_out": "2085.00", "balance": "20915.00",
			},
		},
		{
			name:  "invalid id degrades to zero",
			query: "?warehouse_id=abc",
			want: map[string]string{
				"total_in": "0.00", "total_out": "0.00", "balance": "0.00",
				"total_in_amount": "0.00", "total_out_amount": "0.00", "balance_amount": "0.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, "/api/warehouse/totals/"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			got := decode[map[string]string](t, w)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

func TestProductsEndpoint_UnknownMovementIsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/warehouse/products/?movement=sideways", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = do(t, router, http.MethodGet, "/api/warehouse/products/", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Ammonium nitrate", rows[0]["product_name"])
}

func TestMovementsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("unrecognized movement", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/warehouse/movements/?movement=bogus", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("missing movement", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/warehouse/movements/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("farmer listing", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/warehouse/movements/?movement=out&warehouse_id=1", "")
		require.Equal(t, http.StatusOK, w.Code)

		rows := decode[[]map[string]any](t, w)
		require.GreaterOrEqual(t, len(rows), 2)

		empty := rows[0]
		assert.Equal(t, float64(1), empty["id"])
		assert.Equal(t, float64(6), empty["document_id"])
		assert.Equal(t, "-", empty["product_name"])
		assert.Equal(t, "0.00", empty["quantity"])
		assert.Equal(t, "0.00", empty["quantity_per_area"])

		second := rows[1]
		assert.Equal(t, float64(2), second["id"])
		assert.Equal(t, "2025-04-05", second["date"])
		assert.Equal(t, "150.00", second["quantity"])
		assert.Equal(t, "12.00", second["maydon"])
		assert.Equal(t, "12.50", second["quantity_per_area"])
	})

	t.Run("export", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/warehouse/movements/export/?movement=in", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "movements-in.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		rows, err := f.GetRows(export.SheetName)
		require.NoError(t, err)
		assert.Len(t, rows, 6)
	})
}

func TestLedgerEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/farmers/", "")
	require.Equal(t, http.StatusOK, w.Code)
	farmers := decode[[]map[string]any](t, w)
	require.Len(t, farmers, 5)
	assert.Equal(t, "Karimov Anvar", farmers[0]["name"])
	assert.Equal(t, "42.50", farmers[0]["maydon"])
	assert.Equal(t, "Qodirov Jasur", farmers[4]["name"])

	w = do(t, router, http.MethodGet, "/api/warehouses/", "")
	require.Equal(t, http.StatusOK, w.Code)
	warehouses := decode[[]map[string]any](t, w)
	require.Len(t, warehouses, 2)
	assert.Equal(t, "Arnasoy depot", warehouses[0]["name"])
}

func TestBotEndpoints(t *testing.T) {
	router, store := newTestRouter(t)

	t.Run("check creates inactive user from string id", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/bot-user/check/", `{"telegram_id":"777","full_name":"Hamidov Ulug'bek"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"allowed":false,"created":true}`, w.Body.String())
	})

	t.Run("check without id", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/bot-user/check/", `{"full_name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("activity without id", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/bot-user/activity/", `{"action_name":"menu"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"created":false}`, w.Body.String())
	})

	t.Run("activity for unknown user", func(t *testing.T) {
		before := len(store.Snapshot().Activities)
		w := do(t, router, http.MethodPost, "/api/bot-user/activity/", `{"telegram_id":1}`)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"created":false}`, w.Body.String())
		assert.Len(t, store.Snapshot().Activities, before)
	})

	t.Run("activity for known user", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/bot-user/activity/",
			`{"telegram_id":99887766,"action_type":"callback","action_name":"report","is_allowed":"no"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"created":true}`, w.Body.String())

		acts := store.Snapshot().Activities
		last := acts[len(acts)-1]
		assert.Equal(t, activity.ActionCallback, last.ActionType)
		assert.Equal(t, "report", last.ActionName)
		assert.False(t, last.IsAllowed)
	})

	t.Run("analytics", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/bot-user/activity/analytics/?user_id=2", "")
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[struct {
			Users    []map[string]any `json:"users"`
			Timeline []map[string]any `json:"timeline"`
			ByHour   []map[string]any `json:"by_hour"`
		}](t, w)
		assert.Len(t, got.Users, 1)
		assert.Len(t, got.Timeline, 1)
		require.Len(t, got.ByHour, 24)
		assert.Equal(t, float64(1), got.ByHour[10]["actions_count"])
	})
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/health/ready",status="200"} 1`)
}
