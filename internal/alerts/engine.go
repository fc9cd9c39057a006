// Package alerts evaluates stock thresholds and external signals into alerts.
package alerts

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/signals"
)

const defaultReorderBand = 1.2

// Options tune an Engine. Zero values fall back to defaults.
type Options struct {
	ReorderBand    float64
	TrendingWindow int
	Now            func() time.Time
}

// Engine computes the current alert set. It holds no alert state: read flags
// and creation times of previously seen alerts are the caller's to keep.
type Engine struct {
	band   float64
	window int
	now    func() time.Time
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		band:   opts.ReorderBand,
		window: opts.TrendingWindow,
		now:    opts.Now,
	}
	if e.band <= 1 {
		e.band = defaultReorderBand
	}
	if e.window <= 0 {
		e.window = signals.DefaultTrendingWindow
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Compute evaluates every rule against the inputs. sentiment and weather may
// be nil, which disables the trending and weather rules respectively.
func (e *Engine) Compute(products []domain.Product, sentiment []domain.SentimentRecord, weather []domain.WeatherRecord) []domain.Alert {
	now := e.now().UTC()
	out := make([]domain.Alert, 0)

	for _, p := range products {
		out = append(out, e.stockAlerts(p, now)...)
	}
	out = append(out, e.trendingAlerts(products, sentiment, now)...)
	if a, ok := e.weatherAlert(products, weather, now); ok {
		out = append(out, a)
	}

	return out
}

func (e *Engine) stockAlerts(p domain.Product, now time.Time) []domain.Alert {
	var out []domain.Alert

	switch {
	case p.StockLevel < p.ReorderPoint:
		severity := domain.SeverityMedium
		if p.StockLevel < p.MinStockLevel {
			severity = domain.SeverityHigh
		}
		out = append(out, newAlert(domain.AlertLowStock, p.ID, severity, now,
			fmt.Sprintf("%s is below reorder point (%d/%d)", p.Name, p.StockLevel, p.ReorderPoint)))
	case float64(p.StockLevel) < float64(p.ReorderPoint)*e.band:
		out = append(out, newAlert(domain.AlertReorder, p.ID, domain.SeverityLow, now,
			fmt.Sprintf("Consider ordering %s soon, approaching reorder point", p.Name)))
	}

	if p.StockLevel > p.MaxStockLevel {
		out = append(out, newAlert(domain.AlertOverstock, p.ID, domain.SeverityLow, now,
			fmt.Sprintf("%s exceeds maximum stock level (%d/%d)", p.Name, p.StockLevel, p.MaxStockLevel)))
	}

	return out
}

func (e *Engine) trendingAlerts(products []domain.Product, sentiment []domain.SentimentRecord, now time.Time) []domain.Alert {
	if len(sentiment) == 0 {
		return nil
	}

	var out []domain.Alert
	for _, t := range signals.RankTrendingProducts(products, sentiment, e.window) {
		if !t.Trending {
			// ranked trending first
			break
		}
		out = append(out, newAlert(domain.AlertTrendingProduct, t.ProductID, domain.SeverityMedium, now,
			fmt.Sprintf("%s is trending on social media, consider increasing stock", t.Name)))
	}
	return out
}

// weatherAlert raises a single alert for the first stormy day found. It is
// attached to the first product stocked at that location, or to the first
// product overall.
func (e *Engine) weatherAlert(products []domain.Product, weather []domain.WeatherRecord, now time.Time) (domain.Alert, bool) {
	if len(products) == 0 {
		return domain.Alert{}, false
	}

	for _, w := range weather {
		if w.Condition != domain.WeatherStormy {
			continue
		}

		productID := products[0].ID
		for _, p := range products {
			if p.LocationID == w.LocationID {
				productID = p.ID
				break
			}
		}

		return newAlert(domain.AlertWeather, productID, domain.SeverityMedium, now,
			fmt.Sprintf("Storm forecast for %s at %s may affect delivery schedules",
				w.Date.Format("Jan 2"), w.LocationID)), true
	}

	return domain.Alert{}, false
}

func newAlert(t domain.AlertType, productID string, severity domain.Severity, now time.Time, message string) domain.Alert {
	return domain.Alert{
		ID:        AlertID(t, productID),
		Type:      t,
		ProductID: productID,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
	}
}

// AlertID derives a stable identifier from the alert type and product.
func AlertID(t domain.AlertType, productID string) string {
	sum := sha1.Sum([]byte(string(t) + ":" + productID))
	return "alert-" + hex.EncodeToString(sum[:8])
}
