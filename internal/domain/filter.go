package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	Query       string           `json:"query"`
	Category    string           `json:"category"`
	Supplier    string           `json:"supplier"`
	LocationID  string           `json:"location_id"`
	MinPrice    *decimal.Decimal `json:"min_price"`
	MaxPrice    *decimal.Decimal `json:"max_price"`
	StockStatus StockStatus      `json:"stock_status"`
	SortField   string           `json:"sort_field"`
	SortDir     string           `json:"sort_dir"`
}

// Matches reports whether p passes every set criterion. The "low" status
// filter is stricter than StockStatusOf: it keeps products at or below their
// minimum level.
func (f ProductFilter) Matches(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Supplier != "" && p.Supplier != f.Supplier {
		return false
	}
	if f.LocationID != "" && p.LocationID != f.LocationID {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	switch f.StockStatus {
	case StockLow:
		if p.StockLevel > p.MinStockLevel {
			return false
		}
	case StockOptimal:
		if p.StockLevel <= p.ReorderPoint || p.StockLevel > p.MaxStockLevel {
			return false
		}
	case StockOverstock:
		if p.StockLevel <= p.MaxStockLevel {
			return false
		}
	}

	return true
}

// Apply returns the matching products, sorted when SortField is set.
func (f ProductFilter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}

	if f.SortField == "" {
		return out
	}

	less := productLess(f.SortField)
	if less == nil {
		return out
	}
	desc := strings.EqualFold(f.SortDir, "desc")
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	return out
}

func productLess(field string) func(a, b Product) bool {
	switch strings.ToLower(field) {
	case "name":
		return func(a, b Product) bool { return a.Name < b.Name }
	case "sku":
		return func(a, b Product) bool { return a.SKU < b.SKU }
	case "category":
		return func(a, b Product) bool { return a.Category < b.Category }
	case "supplier":
		return func(a, b Product) bool { return a.Supplier < b.Supplier }
	case "price":
		return func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case "stock_level":
		return func(a, b Product) bool { return a.StockLevel < b.StockLevel }
	case "reorder_point":
		return func(a, b Product) bool { return a.ReorderPoint < b.ReorderPoint }
	case "lead_time":
		return func(a, b Product) bool { return a.LeadTime < b.LeadTime }
	case "sales_velocity":
		return func(a, b Product) bool { return a.SalesVelocity < b.SalesVelocity }
	default:
		return nil
	}
}
