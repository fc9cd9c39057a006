// Package simulation generates synthetic inventory datasets and exposes them
// through a Source so the engines can be fed either generated or fixed data.
package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

// Dataset is one consistent snapshot of every input series.
type Dataset struct {
	Products  []domain.Product         `json:"products"`
	Sales     []domain.SalesRecord     `json:"sales"`
	Forecasts []domain.Forecast        `json:"forecasts"`
	Weather   []domain.WeatherRecord   `json:"weather"`
	Sentiment []domain.SentimentRecord `json:"sentiment"`
	Locations []domain.Location        `json:"locations"`
}

// Source supplies a Dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

var (
	categories = []string{"Electronics", "Clothing", "Food", "Home Goods", "Sports"}
	suppliers  = []string{"Acme Inc", "Global Supply Co", "Quality Products Ltd", "Prime Distributors", "Mega Wholesale"}
)

// Options sizes the generated dataset.
type Options struct {
	Seed          int64
	ProductCount  int
	HistoryDays   int
	ForecastDays  int
	WeatherDays   int
	SentimentDays int
	// Now anchors every date series. Zero means time.Now at generation.
	Now time.Time
}

func DefaultOptions() Options {
	return Options{
		Seed:          42,
		ProductCount:  30,
		HistoryDays:   90,
		ForecastDays:  30,
		WeatherDays:   7,
		SentimentDays: 30,
	}
}

// Generator produces reproducible datasets: the same Options yield the same
// Dataset.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

var _ Source = (*Generator)(nil)

func NewGenerator(opts Options) *Generator {
	g := &Generator{opts: opts}
	g.reset()
	return g
}

func (g *Generator) reset() {
	seed := uint64(g.opts.Seed)
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (g *Generator) today() time.Time {
	now := g.opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Load generates a fresh dataset from the configured seed.
func (g *Generator) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := g.Generate()
	return &ds, nil
}

// Generate builds a complete dataset. Every call restarts the random stream.
func (g *Generator) Generate() Dataset {
	g.reset()

	locations := Locations()
	products := g.Products(g.opts.ProductCount)
	return Dataset{
		Products:  products,
		Sales:     g.SalesHistory(products, g.opts.HistoryDays),
		Forecasts: g.Forecasts(products, g.opts.ForecastDays),
		Weather:   g.Weather(locations, g.opts.WeatherDays),
		Sentiment: g.Sentiment(products, g.opts.SentimentDays),
		Locations: locations,
	}
}

// Products generates count products spread across the known locations.
// Reorder points are raised to the minimum level where needed so every
// product validates.
func (g *Generator) Products(count int) []domain.Product {
	locations := Locations()
	today := g.today()

	out := make([]domain.Product, 0, count)
	for i := 0; i < count; i++ {
		category := categories[g.rng.IntN(len(categories))]
		minLevel := g.rng.IntN(10)
		reorderPoint := max(minLevel, g.rng.IntN(25))

		p := domain.Product{
			ID:            fmt.Sprintf("prod-%04d", i),
			SKU:           "SKU-" + g.skuSuffix(),
			Name:          fmt.Sprintf("%s Item %d", category, i+1),
			Category:      category,
			Supplier:      suppliers[g.rng.IntN(len(suppliers))],
			LocationID:    locations[g.rng.IntN(len(locations))].ID,
			Price:         decimal.NewFromFloat(10 + g.rng.Float64()*90).Round(2),
			StockLevel:    g.rng.IntN(100),
			MinStockLevel: minLevel,
			ReorderPoint:  reorderPoint,
			MaxStockLevel: 100 + g.rng.IntN(50),
			LeadTime:      3 + g.rng.IntN(14),
			SalesVelocity: round2(g.rng.Float64() * 5),
		}
		if g.rng.Float64() > 0.7 {
			last := today.AddDate(0, 0, -g.rng.IntN(30))
			p.LastReordered = &last
		}
		out = append(out, p)
	}
	return out
}

func (g *Generator) skuSuffix() string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(alphabet[g.rng.IntN(len(alphabet))])
	}
	return b.String()
}

// SalesHistory generates one record per product per day for the last days
// days, ending today. Weekends sell 1.5x and volume trends up to +20%.
func (g *Generator) SalesHistory(products []domain.Product, days int) []domain.SalesRecord {
	dates := pastDates(g.today(), days)

	out := make([]domain.SalesRecord, 0, len(products)*len(dates))
	for _, p := range products {
		for i, date := range dates {
			qty := math.Max(0, math.Round(p.SalesVelocity*(1+(g.rng.Float64()-0.5))))
			qty = math.Round(qty * seasonal(date))
			qty = math.Round(qty * (1 + float64(i)/float64(len(dates))*0.2))

			quantity := int(qty)
			out = append(out, domain.SalesRecord{
				Date:      date,
				ProductID: p.ID,
				Quantity:  quantity,
				Revenue:   p.Price.Mul(decimal.NewFromInt(int64(quantity))),
			})
		}
	}
	return out
}

// Forecasts generates days of demand predictions per product starting today.
// Demand follows sales velocity with weekend seasonality and a trend of up to
// +30%. Weather and social factors are each attached to roughly 30% of days.
func (g *Generator) Forecasts(products []domain.Product, days int) []domain.Forecast {
	dates := futureDates(g.today(), days)

	out := make([]domain.Forecast, 0, len(products)*len(dates))
	for _, p := range products {
		for i, date := range dates {
			trend := 1 + float64(i)/float64(len(dates))*0.3
			season := seasonal(date)

			f := domain.Forecast{
				Date:            date,
				ProductID:       p.ID,
				PredictedDemand: round2(p.SalesVelocity * trend * season),
				ConfidenceScore: round2(0.7 + g.rng.Float64()*0.3),
				Factors: domain.ForecastFactors{
					Seasonal: season,
					Trend:    trend,
				},
			}
			if g.rng.Float64() > 0.7 {
				w := round2(g.rng.Float64() * 0.4)
				f.Factors.Weather = &w
			}
			if g.rng.Float64() > 0.7 {
				s := round2(g.rng.Float64() * 0.3)
				f.Factors.Social = &s
			}
			out = append(out, f)
		}
	}
	return out
}

// Weather generates days of forecast weather per location starting today.
func (g *Generator) Weather(locations []domain.Location, days int) []domain.WeatherRecord {
	dates := futureDates(g.today(), days)

	out := make([]domain.WeatherRecord, 0, len(locations)*len(dates))
	for _, loc := range locations {
		for _, date := range dates {
			condition := domain.WeatherConditions[g.rng.IntN(len(domain.WeatherConditions))]
			r := domain.WeatherRecord{
				Date:        date,
				LocationID:  loc.ID,
				Condition:   condition,
				Temperature: float64(15 + g.rng.IntN(20)),
				Impact:      ConditionImpact(condition),
			}

			switch condition {
			case domain.WeatherCloudy:
				r.Precipitation = g.rng.Float64() * 0.5
			case domain.WeatherRainy:
				r.Precipitation = 2 + g.rng.Float64()*8
				r.Temperature -= 5
			case domain.WeatherStormy:
				r.Precipitation = 10 + g.rng.Float64()*20
				r.Temperature -= 8
			case domain.WeatherSnowy:
				r.Precipitation = 5 + g.rng.Float64()*15
				r.Temperature = -5 + g.rng.Float64()*10
			}
			out = append(out, r)
		}
	}
	return out
}

// ConditionImpact is the demand impact of a weather condition.
func ConditionImpact(c domain.WeatherCondition) float64 {
	switch c {
	case domain.WeatherSunny:
		return 0.2
	case domain.WeatherRainy:
		return -0.2
	case domain.WeatherStormy:
		return -0.5
	case domain.WeatherSnowy:
		return -0.4
	default:
		return 0
	}
}

// Sentiment generates a drifting social signal per product for the last days
// days. About one product in five trends: its volume grows 10% a day over the
// final stretch and its last days are flagged trending.
func (g *Generator) Sentiment(products []domain.Product, days int) []domain.SentimentRecord {
	dates := pastDates(g.today(), days)

	out := make([]domain.SentimentRecord, 0, len(products)*len(dates))
	for _, p := range products {
		base := -0.5 + g.rng.Float64()
		volume := float64(10 + g.rng.IntN(990))
		trending := g.rng.Float64() > 0.8

		for i, date := range dates {
			base = clamp(base+(g.rng.Float64()-0.5)*0.1, -1, 1)
			if trending && i > len(dates)-10 {
				volume *= 1.1
			}

			sentiment := clamp(round2(base+(g.rng.Float64()-0.5)*0.2), -1, 1)
			v := int(math.Floor(volume * (0.9 + g.rng.Float64()*0.2)))

			twitter := 0.3 + g.rng.Float64()*0.2
			instagram := 0.2 + g.rng.Float64()*0.2
			facebook := 0.3 + g.rng.Float64()*0.2
			tiktok := math.Max(0, 1-twitter-instagram-facebook)

			out = append(out, domain.SentimentRecord{
				Date:      date,
				ProductID: p.ID,
				Sentiment: sentiment,
				Volume:    v,
				Trending:  trending && i > len(dates)-5,
				Sources: domain.SentimentSources{
					Twitter:   int(math.Floor(float64(v) * twitter)),
					Instagram: int(math.Floor(float64(v) * instagram)),
					Facebook:  int(math.Floor(float64(v) * facebook)),
					TikTok:    int(math.Floor(float64(v) * tiktok)),
				},
			})
		}
	}
	return out
}

// Locations returns the fixed store and warehouse network.
func Locations() []domain.Location {
	return []domain.Location{
		{ID: "store-001", Name: "Downtown Store", Type: domain.LocationStore, Address: "123 Main St, New York, NY 10001"},
		{ID: "store-002", Name: "Westside Location", Type: domain.LocationStore, Address: "456 Park Ave, New York, NY 10002"},
		{ID: "warehouse-main", Name: "Central Distribution Center", Type: domain.LocationWarehouse, Address: "789 Industrial Pkwy, Newark, NJ 07102"},
	}
}

func pastDates(today time.Time, days int) []time.Time {
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, today.AddDate(0, 0, -(days-i-1)))
	}
	return out
}

func futureDates(today time.Time, days int) []time.Time {
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, today.AddDate(0, 0, i))
	}
	return out
}

func seasonal(date time.Time) float64 {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 1.5
	}
	return 1.0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
