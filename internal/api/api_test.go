package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/report"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository/memory"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	ds := simulation.Dataset{
		Products: []domain.Product{
			{ID: "p1", SKU: "SKU-1", Name: "Trail Shoe", Category: "Sports", LocationID: "store-001",
				Price: decimal.NewFromInt(10), StockLevel: 20, MinStockLevel: 5, ReorderPoint: 25, MaxStockLevel: 100, LeadTime: 7},
			{ID: "p2", SKU: "SKU-2", Name: "Rain Jacket", Category: "Clothing", LocationID: "warehouse-main",
				Price: decimal.NewFromInt(20), StockLevel: 150, MinStockLevel: 5, ReorderPoint: 25, MaxStockLevel: 100, LeadTime: 3},
		},
		Sales: []domain.SalesRecord{{Date: day, ProductID: "p1", Quantity: 4}},
		Forecasts: []domain.Forecast{
			{Date: day, ProductID: "p1", PredictedDemand: 10, ConfidenceScore: 0.8},
		},
		Weather: []domain.WeatherRecord{
			{Date: day, LocationID: "store-001", Condition: domain.WeatherSunny, Impact: 0.2},
		},
		Locations: simulation.Locations(),
	}

	opts := service.DefaultOptions()
	opts.Now = func() time.Time { return day.Add(9 * time.Hour) }

	svc, err := service.NewInventoryService(context.Background(), service.Deps{
		Products: memory.NewProductRepository(),
		Alerts:   memory.NewAlertRepository(),
		Source:   simulation.NewFixedSource(ds),
		Exporter: report.NewExporter(t.TempDir(), nil),
	}, opts)
	require.NoError(t, err)

	return NewRouter(&Services{Inventory: svc}, []string{"*"})
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListProductsWithFilter(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/products?stock_status=overstock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []domain.Product `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "p2", resp.Items[0].ID)

	w = do(t, router, http.MethodGet, "/api/v1/products?stock_status=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/products?min_price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductCRUD(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"id": "p1", "name": "Clash", "price": "1", "stock_level": 1,
		"min_stock_level": 0, "reorder_point": 1, "max_stock_level": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Camp Chair", "price": "35", "stock_level": 12,
		"min_stock_level": 2, "reorder_point": 6, "max_stock_level": 40, "lead_time": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	created.StockLevel = 99
	w = do(t, router, http.MethodPut, "/api/v1/products/"+created.ID, created)
	require.Equal(t, http.StatusOK, w.Code)

	created.ReorderPoint = 100
	w = do(t, router, http.MethodPut, "/api/v1/products/"+created.ID, created)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendationEndpoint(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/products/p1/recommendation", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendation domain.ReorderRecommendation `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.Recommendation.ProductID)
}

func TestAlertsAndMarkRead(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []domain.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.NotEmpty(t, alerts)

	w = do(t, router, http.MethodPost, "/api/v1/alerts/"+alerts[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/alerts?unread=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unread []domain.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	assert.Len(t, unread, len(alerts)-1)

	w = do(t, router, http.MethodPost, "/api/v1/alerts/alert-missing/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardSummaryEndpoint(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var s domain.DashboardSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 1, s.OverstockCount)
}

func TestWeatherEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/weather?location_id=store-001&product_id=p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var joined []domain.WeatherDemand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	require.Len(t, joined, 1)
	assert.Equal(t, 10.0, joined[0].PredictedDemand)

	w = do(t, router, http.MethodGet, "/api/v1/weather?product_id=p1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
