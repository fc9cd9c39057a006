package summary

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

func TestComputeTotals(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Price: decimal.NewFromInt(10), StockLevel: 5, ReorderPoint: 2, MaxStockLevel: 10},
		{ID: "b", Price: decimal.NewFromInt(20), StockLevel: 0, ReorderPoint: 2, MaxStockLevel: 10},
	}

	s := Compute(products, nil, nil, 0)
	assert.Equal(t, 2, s.TotalProducts)
	assert.True(t, decimal.NewFromInt(50).Equal(s.TotalValue), "total value %s", s.TotalValue)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 0, s.OverstockCount)
	assert.Empty(t, s.TopSellingProducts)
	assert.Empty(t, s.RecentAlerts)
}

func TestComputeCounts(t *testing.T) {
	products := []domain.Product{
		{ID: "low", StockLevel: 1, ReorderPoint: 5, MaxStockLevel: 50},
		{ID: "edge", StockLevel: 5, ReorderPoint: 5, MaxStockLevel: 50},
		{ID: "over", StockLevel: 51, ReorderPoint: 5, MaxStockLevel: 50},
	}
	alerts := []domain.Alert{{ID: "1"}, {ID: "2", Read: true}, {ID: "3"}}

	s := Compute(products, alerts, nil, DefaultTopN)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.OverstockCount)
	assert.Equal(t, 2, s.AlertsCount)
	assert.Len(t, s.RecentAlerts, 3)
}

func TestTopSellers(t *testing.T) {
	products := []domain.Product{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}, {ID: "c", Name: "Gamma"}}
	sales := []domain.SalesRecord{
		{ProductID: "c", Quantity: 5},
		{ProductID: "a", Quantity: 3},
		{ProductID: "ghost", Quantity: 1},
		{ProductID: "b", Quantity: 10},
		{ProductID: "a", Quantity: 2},
	}

	top := TopSellers(products, sales, 5)
	require.Len(t, top, 4)
	assert.Equal(t, domain.TopSeller{ID: "b", Name: "Beta", Sales: 10}, top[0])
	// c and a tie at 5; c appeared first
	assert.Equal(t, "c", top[1].ID)
	assert.Equal(t, "a", top[2].ID)
	assert.Equal(t, UnknownProductName, top[3].Name)
}

func TestTopSellersCapsAtN(t *testing.T) {
	var sales []domain.SalesRecord
	for i := 0; i < 8; i++ {
		sales = append(sales, domain.SalesRecord{ProductID: fmt.Sprintf("p%d", i), Quantity: i})
	}

	top := TopSellers(nil, sales, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "p7", top[0].ID)
	assert.Equal(t, "p3", top[4].ID)
}

func TestRecentAlerts(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	var alerts []domain.Alert
	for i := 0; i < 7; i++ {
		alerts = append(alerts, domain.Alert{ID: fmt.Sprintf("a%d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	recent := RecentAlerts(alerts, 5)
	require.Len(t, recent, 5)
	assert.Equal(t, "a6", recent[0].ID)
	assert.Equal(t, "a2", recent[4].ID)
	// input untouched
	assert.Equal(t, "a0", alerts[0].ID)
}
