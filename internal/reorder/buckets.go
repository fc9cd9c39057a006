package reorder

import (
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/signals"
)

// DefaultCandidateBand marks products within 20% above their reorder point
// as reorder candidates.
const DefaultCandidateBand = 1.2

// Buckets splits products into urgent, recommended and optimal.
//
// Optimal holds every product above its reorder point but not above its
// maximum. Urgent and recommended are drawn from the candidates, products with
// stock <= reorderPoint*band: urgent ones are at or below their minimum,
// recommended ones sit between minimum and reorder point, and both require a
// positive quantity. Only candidates get a recommendation computed.
func (c *Calculator) Buckets(products []domain.Product, forecasts []domain.Forecast, band float64) domain.ReorderBuckets {
	if band <= 0 {
		band = DefaultCandidateBand
	}

	grouped := signals.GroupForecasts(forecasts)
	buckets := domain.ReorderBuckets{
		Urgent:      []domain.ReorderCandidate{},
		Recommended: []domain.ReorderCandidate{},
		Optimal:     []domain.Product{},
	}

	for _, p := range products {
		if p.StockLevel > p.ReorderPoint {
			if p.StockLevel <= p.MaxStockLevel {
				buckets.Optimal = append(buckets.Optimal, p)
			}
			continue
		}
		if float64(p.StockLevel) > float64(p.ReorderPoint)*band {
			continue
		}

		rec := c.Calculate(p, grouped[p.ID])
		if rec.RecommendedQuantity <= 0 {
			continue
		}
		candidate := domain.ReorderCandidate{Product: p, Recommendation: rec}
		if p.StockLevel <= p.MinStockLevel {
			buckets.Urgent = append(buckets.Urgent, candidate)
		} else {
			buckets.Recommended = append(buckets.Recommended, candidate)
		}
	}

	return buckets
}
