// Package summary rolls product, alert and sales collections into dashboard KPIs.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

const (
	DefaultTopN        = 5
	UnknownProductName = "Unknown Product"
)

// Compute recomputes the dashboard summary from scratch. topN <= 0 uses
// DefaultTopN for both the top sellers and the recent alerts.
func Compute(products []domain.Product, alerts []domain.Alert, sales []domain.SalesRecord, topN int) domain.DashboardSummary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := domain.DashboardSummary{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	for _, p := range products {
		if p.StockLevel < p.ReorderPoint {
			s.LowStockCount++
		}
		if p.StockLevel > p.MaxStockLevel {
			s.OverstockCount++
		}
		s.TotalValue = s.TotalValue.Add(p.StockValue())
	}

	s.AlertsCount = len(domain.UnreadAlerts(alerts))
	s.TopSellingProducts = TopSellers(products, sales, topN)
	s.RecentAlerts = RecentAlerts(alerts, topN)

	return s
}

// TopSellers sums quantity per product and returns the n best sellers. Ties
// keep the order in which products first appear in sales.
func TopSellers(products []domain.Product, sales []domain.SalesRecord, n int) []domain.TopSeller {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	index := make(map[string]int)
	sellers := make([]domain.TopSeller, 0)
	for _, r := range sales {
		i, ok := index[r.ProductID]
		if !ok {
			i = len(sellers)
			index[r.ProductID] = i

			name, found := names[r.ProductID]
			if !found {
				name = UnknownProductName
			}
			sellers = append(sellers, domain.TopSeller{ID: r.ProductID, Name: name})
		}
		sellers[i].Sales += r.Quantity
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Sales > sellers[j].Sales
	})
	if len(sellers) > n {
		sellers = sellers[:n]
	}
	return sellers
}

// RecentAlerts returns the n newest alerts without reordering the input.
func RecentAlerts(alerts []domain.Alert, n int) []domain.Alert {
	sorted := make([]domain.Alert, len(alerts))
	copy(sorted, alerts)
	domain.SortAlertsByCreatedDesc(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
