// Package reorder turns forecast signals and current stock into reorder quantities.
package reorder

import (
	"math"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/signals"
)

// Policy holds the constants of the reorder formula.
type Policy struct {
	SafetyStockDays float64
	WeatherWeight   float64
	SocialWeight    float64
	Averaging       signals.Averaging
}

// DefaultPolicy is a 5 day safety buffer with weather x10 and social x15.
func DefaultPolicy() Policy {
	return Policy{
		SafetyStockDays: 5,
		WeatherWeight:   10,
		SocialWeight:    15,
		Averaging:       signals.AveragingTotal,
	}
}

// Calculator computes reorder recommendations under a Policy.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a new reorder calculator
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// Recommend resolves productID in products and computes its recommendation
// from the forecasts belonging to that product. Forecasts of other products
// are ignored.
func (c *Calculator) Recommend(productID string, products []domain.Product, forecasts []domain.Forecast) (domain.ReorderRecommendation, error) {
	for _, p := range products {
		if p.ID == productID {
			return c.Calculate(p, domain.FilterForecasts(forecasts, productID)), nil
		}
	}
	return domain.ReorderRecommendation{}, domain.NewNotFoundError("product", productID)
}

// Calculate computes the recommendation for p. forecasts must already be
// restricted to p.
func (c *Calculator) Calculate(p domain.Product, forecasts []domain.Forecast) domain.ReorderRecommendation {
	// 1. Aggregate demand and external pressure
	s := signals.Aggregate(forecasts, c.policy.Averaging)

	// 2. Lead time demand = Avg Daily Demand × Lead Time
	leadTimeDemand := s.AvgDailyDemand * float64(p.LeadTime)

	// 3. Safety stock = Avg Daily Demand × safety days
	safetyStock := s.AvgDailyDemand * c.policy.SafetyStockDays

	// 4. Weighted adjustments
	adjustment := s.WeatherImpact*c.policy.WeatherWeight + s.SocialImpact*c.policy.SocialWeight

	// 5. Quantity, never negative
	qty := leadTimeDemand + safetyStock - float64(p.StockLevel) + adjustment

	return domain.ReorderRecommendation{
		ProductID:           p.ID,
		RecommendedQuantity: int(math.Round(math.Max(0, qty))),
		Reasoning: domain.ReorderReasoning{
			CurrentStock:   p.StockLevel,
			AvgDailyDemand: s.AvgDailyDemand,
			LeadTime:       p.LeadTime,
			SafetyStock:    safetyStock,
			WeatherImpact:  s.WeatherImpact,
			SocialImpact:   s.SocialImpact,
		},
	}
}

// RecommendAll computes a recommendation for every product, keyed by id.
func (c *Calculator) RecommendAll(products []domain.Product, forecasts []domain.Forecast) map[string]domain.ReorderRecommendation {
	grouped := signals.GroupForecasts(forecasts)
	out := make(map[string]domain.ReorderRecommendation, len(products))
	for _, p := range products {
		out[p.ID] = c.Calculate(p, grouped[p.ID])
	}
	return out
}
