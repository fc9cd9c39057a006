package domain

import "strings"

// StockStatus classifies a product's stock against its thresholds.
type StockStatus string

const (
	StockLow       StockStatus = "low"
	StockOptimal   StockStatus = "optimal"
	StockOverstock StockStatus = "overstock"
)

var stockStatusLabels = map[StockStatus]string{
	StockLow:       "Low Stock",
	StockOptimal:   "Optimal",
	StockOverstock: "Overstock",
}

// StockStatusLabel returns a human-readable label for a stock status.
func StockStatusLabel(status StockStatus) string {
	if label, ok := stockStatusLabels[status]; ok {
		return label
	}

	return "Unknown"
}

// ParseStockStatus returns the status for a given name (case-insensitive).
func ParseStockStatus(name string) (StockStatus, bool) {
	status := StockStatus(strings.ToLower(strings.TrimSpace(name)))
	_, ok := stockStatusLabels[status]

	return status, ok
}

// StockStatusOf classifies p: at or below the reorder point is low, above the
// maximum is overstock, anything in between is optimal.
func StockStatusOf(p Product) StockStatus {
	switch {
	case p.StockLevel > p.MaxStockLevel:
		return StockOverstock
	case p.StockLevel <= p.ReorderPoint:
		return StockLow
	default:
		return StockOptimal
	}
}

// StockStatusCounts tallies products per status.
func StockStatusCounts(products []Product) map[StockStatus]int {
	counts := map[StockStatus]int{
		StockLow:       0,
		StockOptimal:   0,
		StockOverstock: 0,
	}
	for _, p := range products {
		counts[StockStatusOf(p)]++
	}
	return counts
}

// WeatherImpactLevel buckets a weather impact score.
type WeatherImpactLevel string

const (
	ImpactStrongPositive WeatherImpactLevel = "strong_positive"
	ImpactPositive       WeatherImpactLevel = "positive"
	ImpactNeutral        WeatherImpactLevel = "neutral"
	ImpactNegative       WeatherImpactLevel = "negative"
	ImpactStrongNegative WeatherImpactLevel = "strong_negative"
)

func ClassifyWeatherImpact(impact float64) WeatherImpactLevel {
	switch {
	case impact > 0.2:
		return ImpactStrongPositive
	case impact > 0.05:
		return ImpactPositive
	case impact > -0.05:
		return ImpactNeutral
	case impact > -0.2:
		return ImpactNegative
	default:
		return ImpactStrongNegative
	}
}

// SentimentLevel buckets an average sentiment score.
type SentimentLevel string

const (
	SentimentVeryPositive     SentimentLevel = "very_positive"
	SentimentPositive         SentimentLevel = "positive"
	SentimentSlightlyPositive SentimentLevel = "slightly_positive"
	SentimentSlightlyNegative SentimentLevel = "slightly_negative"
	SentimentNegative         SentimentLevel = "negative"
	SentimentVeryNegative     SentimentLevel = "very_negative"
)

var sentimentLabels = map[SentimentLevel]string{
	SentimentVeryPositive:     "Very Positive",
	SentimentPositive:         "Positive",
	SentimentSlightlyPositive: "Slightly Positive",
	SentimentSlightlyNegative: "Slightly Negative",
	SentimentNegative:         "Negative",
	SentimentVeryNegative:     "Very Negative",
}

// ClassifySentiment buckets a score in [-1, 1]. Zero counts as slightly negative.
func ClassifySentiment(score float64) SentimentLevel {
	switch {
	case score > 0.5:
		return SentimentVeryPositive
	case score > 0.2:
		return SentimentPositive
	case score > 0:
		return SentimentSlightlyPositive
	case score > -0.2:
		return SentimentSlightlyNegative
	case score > -0.5:
		return SentimentNegative
	default:
		return SentimentVeryNegative
	}
}

func (l SentimentLevel) Label() string {
	if label, ok := sentimentLabels[l]; ok {
		return label
	}
	return "Unknown"
}
