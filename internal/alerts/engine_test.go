package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

var fixedNow = time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(Options{Now: func() time.Time { return fixedNow }})
}

func product(id string, stock int) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product " + id,
		LocationID:    "store-001",
		StockLevel:    stock,
		MinStockLevel: 5,
		ReorderPoint:  20,
		MaxStockLevel: 100,
	}
}

func byType(alerts []domain.Alert) map[domain.AlertType][]domain.Alert {
	out := make(map[domain.AlertType][]domain.Alert)
	for _, a := range alerts {
		out[a.Type] = append(out[a.Type], a)
	}
	return out
}

func TestStockRules(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		want     []domain.AlertType
		severity domain.Severity
	}{
		{"below min", 4, []domain.AlertType{domain.AlertLowStock}, domain.SeverityHigh},
		{"at min", 5, []domain.AlertType{domain.AlertLowStock}, domain.SeverityMedium},
		{"just below reorder point", 19, []domain.AlertType{domain.AlertLowStock}, domain.SeverityMedium},
		{"at reorder point", 20, []domain.AlertType{domain.AlertReorder}, domain.SeverityLow},
		{"top of reorder band", 23, []domain.AlertType{domain.AlertReorder}, domain.SeverityLow},
		{"past reorder band", 24, nil, ""},
		{"at max", 100, nil, ""},
		{"over max", 101, []domain.AlertType{domain.AlertOverstock}, domain.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestEngine().Compute([]domain.Product{product("p1", tt.stock)}, nil, nil)

			types := make([]domain.AlertType, 0, len(got))
			for _, a := range got {
				types = append(types, a.Type)
				assert.Equal(t, tt.severity, a.Severity)
				assert.Equal(t, "p1", a.ProductID)
				assert.False(t, a.Read)
				assert.Equal(t, fixedNow, a.CreatedAt)
			}
			if tt.want == nil {
				assert.Empty(t, types)
			} else {
				assert.Equal(t, tt.want, types)
			}
		})
	}
}

func TestLowStockAndReorderAreDisjoint(t *testing.T) {
	engine := newTestEngine()
	for stock := 0; stock <= 150; stock++ {
		got := byType(engine.Compute([]domain.Product{product("p", stock)}, nil, nil))
		both := len(got[domain.AlertLowStock]) > 0 && len(got[domain.AlertReorder]) > 0
		assert.False(t, both, "stock %d raised both low_stock and reorder", stock)
	}
}

func TestLowStockMessage(t *testing.T) {
	got := newTestEngine().Compute([]domain.Product{product("p1", 3)}, nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Product p1 is below reorder point (3/20)", got[0].Message)
}

func TestTrendingAlerts(t *testing.T) {
	day := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{product("hot", 50), product("cold", 50)}
	sentiment := []domain.SentimentRecord{
		{Date: day, ProductID: "hot", Sentiment: 0.6, Volume: 400, Trending: true},
		{Date: day, ProductID: "cold", Sentiment: 0.9, Volume: 900},
	}

	got := byType(newTestEngine().Compute(products, sentiment, nil))
	require.Len(t, got[domain.AlertTrendingProduct], 1)
	a := got[domain.AlertTrendingProduct][0]
	assert.Equal(t, "hot", a.ProductID)
	assert.Equal(t, domain.SeverityMedium, a.Severity)
}

func TestNoSentimentNoTrendingAlerts(t *testing.T) {
	got := byType(newTestEngine().Compute([]domain.Product{product("p", 50)}, nil, nil))
	assert.Empty(t, got[domain.AlertTrendingProduct])
}

func TestWeatherAlertAtMostOnce(t *testing.T) {
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{product("a", 50), product("b", 50)}
	products[1].LocationID = "warehouse-main"
	weather := []domain.WeatherRecord{
		{Date: day, LocationID: "store-001", Condition: domain.WeatherSunny},
		{Date: day, LocationID: "warehouse-main", Condition: domain.WeatherStormy, Impact: -0.5},
		{Date: day.AddDate(0, 0, 1), LocationID: "store-001", Condition: domain.WeatherStormy},
	}

	got := byType(newTestEngine().Compute(products, nil, weather))
	require.Len(t, got[domain.AlertWeather], 1)
	a := got[domain.AlertWeather][0]
	assert.Equal(t, "b", a.ProductID)
	assert.Equal(t, domain.SeverityMedium, a.Severity)
	assert.Contains(t, a.Message, "Storm forecast")
}

func TestWeatherAlertFallsBackToFirstProduct(t *testing.T) {
	weather := []domain.WeatherRecord{{LocationID: "elsewhere", Condition: domain.WeatherStormy}}
	got := byType(newTestEngine().Compute([]domain.Product{product("a", 50)}, nil, weather))
	require.Len(t, got[domain.AlertWeather], 1)
	assert.Equal(t, "a", got[domain.AlertWeather][0].ProductID)
}

func TestWeatherAlertNeedsProducts(t *testing.T) {
	weather := []domain.WeatherRecord{{LocationID: "store-001", Condition: domain.WeatherStormy}}
	assert.Empty(t, newTestEngine().Compute(nil, nil, weather))
}

func TestComputeIsDeterministic(t *testing.T) {
	products := []domain.Product{product("a", 3), product("b", 21), product("c", 400)}
	engine := newTestEngine()

	first := engine.Compute(products, nil, nil)
	second := engine.Compute(products, nil, nil)
	assert.Equal(t, first, second)

	ids := make(map[string]bool)
	for _, a := range first {
		assert.False(t, ids[a.ID], "duplicate id %s", a.ID)
		ids[a.ID] = true
	}
}

func TestAlertIDStable(t *testing.T) {
	assert.Equal(t, AlertID(domain.AlertLowStock, "p1"), AlertID(domain.AlertLowStock, "p1"))
	assert.NotEqual(t, AlertID(domain.AlertLowStock, "p1"), AlertID(domain.AlertReorder, "p1"))
	assert.Len(t, AlertID(domain.AlertLowStock, "p1"), len("alert-")+16)
}
