// Package signals reduces per-product time series to scalar decision inputs.
package signals

import (
	"sort"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

// Averaging selects the denominator used for optional forecast factors.
type Averaging string

const (
	// AveragingTotal divides by the total forecast count, so records without
	// the factor count as zero.
	AveragingTotal Averaging = "total"
	// AveragingPresent divides by the number of records carrying the factor.
	AveragingPresent Averaging = "present"
)

// ParseAveraging falls back to AveragingTotal for unknown names.
func ParseAveraging(name string) Averaging {
	if Averaging(name) == AveragingPresent {
		return AveragingPresent
	}
	return AveragingTotal
}

// Signals are the aggregated demand drivers of one product.
type Signals struct {
	AvgDailyDemand float64 `json:"avg_daily_demand"`
	WeatherImpact  float64 `json:"weather_impact"`
	SocialImpact   float64 `json:"social_impact"`
}

// AverageDailyDemand is the mean predicted demand, 0 for no forecasts.
func AverageDailyDemand(forecasts []domain.Forecast) float64 {
	var sum float64
	for _, f := range forecasts {
		sum += f.PredictedDemand
	}
	return sum / float64(max(1, len(forecasts)))
}

// WeatherImpact averages the weather factor.
func WeatherImpact(forecasts []domain.Forecast, mode Averaging) float64 {
	return factorMean(forecasts, mode, func(f domain.ForecastFactors) *float64 { return f.Weather })
}

// SocialImpact averages the social factor.
func SocialImpact(forecasts []domain.Forecast, mode Averaging) float64 {
	return factorMean(forecasts, mode, func(f domain.ForecastFactors) *float64 { return f.Social })
}

func factorMean(forecasts []domain.Forecast, mode Averaging, pick func(domain.ForecastFactors) *float64) float64 {
	var (
		sum     float64
		present int
	)
	for _, f := range forecasts {
		if v := pick(f.Factors); v != nil {
			sum += *v
			present++
		}
	}

	denom := len(forecasts)
	if mode == AveragingPresent {
		denom = present
	}
	return sum / float64(max(1, denom))
}

// Aggregate computes all three signals over one product's forecasts.
func Aggregate(forecasts []domain.Forecast, mode Averaging) Signals {
	return Signals{
		AvgDailyDemand: AverageDailyDemand(forecasts),
		WeatherImpact:  WeatherImpact(forecasts, mode),
		SocialImpact:   SocialImpact(forecasts, mode),
	}
}

// DefaultTrendingWindow is the number of most recent sentiment days scored.
const DefaultTrendingWindow = 5

// Trend summarizes the most recent sentiment window of a product.
type Trend struct {
	AvgSentiment float64
	AvgVolume    float64
	Trending     bool
}

// TrendingScore scores the last window records by date. Input order is not
// assumed. Zero records give a zero Trend.
func TrendingScore(records []domain.SentimentRecord, window int) Trend {
	if window <= 0 {
		window = DefaultTrendingWindow
	}
	if len(records) == 0 {
		return Trend{}
	}

	sorted := make([]domain.SentimentRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > window {
		sorted = sorted[len(sorted)-window:]
	}

	var t Trend
	for _, r := range sorted {
		t.AvgSentiment += r.Sentiment
		t.AvgVolume += float64(r.Volume)
		if r.Trending {
			t.Trending = true
		}
	}
	n := float64(len(sorted))
	t.AvgSentiment /= n
	t.AvgVolume /= n

	return t
}

// RankTrendingProducts orders products trending first, then by
// avgSentiment*avgVolume descending. Products without sentiment are omitted.
func RankTrendingProducts(products []domain.Product, sentiment []domain.SentimentRecord, window int) []domain.TrendingProduct {
	byProduct := make(map[string][]domain.SentimentRecord)
	for _, r := range sentiment {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	ranked := make([]domain.TrendingProduct, 0, len(products))
	for _, p := range products {
		records, ok := byProduct[p.ID]
		if !ok {
			continue
		}
		t := TrendingScore(records, window)
		level := domain.ClassifySentiment(t.AvgSentiment)
		ranked = append(ranked, domain.TrendingProduct{
			ProductID:      p.ID,
			Name:           p.Name,
			AvgSentiment:   t.AvgSentiment,
			AvgVolume:      t.AvgVolume,
			Trending:       t.Trending,
			SentimentLevel: level,
			SentimentLabel: level.Label(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Trending != ranked[j].Trending {
			return ranked[i].Trending
		}
		return ranked[i].Score() > ranked[j].Score()
	})

	return ranked
}

// TopTrending caps a ranking at n entries. n <= 0 returns it unchanged.
func TopTrending(ranked []domain.TrendingProduct, n int) []domain.TrendingProduct {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// GroupForecasts indexes forecasts by product id, preserving order.
func GroupForecasts(forecasts []domain.Forecast) map[string][]domain.Forecast {
	out := make(map[string][]domain.Forecast)
	for _, f := range forecasts {
		out[f.ProductID] = append(out[f.ProductID], f)
	}
	return out
}
