package domain

import "github.com/shopspring/decimal"

// TopSeller is a product ranked by units sold over the sales history.
type TopSeller struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// DashboardSummary is the top-line KPI block of the dashboard.
type DashboardSummary struct {
	TotalProducts      int             `json:"total_products"`
	LowStockCount      int             `json:"low_stock_count"`
	OverstockCount     int             `json:"overstock_count"`
	TotalValue         decimal.Decimal `json:"total_value"`
	AlertsCount        int             `json:"alerts_count"` // unread only
	TopSellingProducts []TopSeller     `json:"top_selling_products"`
	RecentAlerts       []Alert         `json:"recent_alerts"`
}

// TrendingProduct is a product's social score over the recent window.
type TrendingProduct struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	AvgSentiment float64 `json:"avg_sentiment"`
	AvgVolume    float64 `json:"avg_volume"`
	Trending     bool    `json:"trending"`

	SentimentLevel SentimentLevel `json:"sentiment_level"`
	SentimentLabel string         `json:"sentiment_label"`
}

// Score is the rank key used to order trending products.
func (t TrendingProduct) Score() float64 {
	return t.AvgSentiment * t.AvgVolume
}

// ReorderBuckets groups reorder candidates by urgency.
type ReorderBuckets struct {
	Urgent      []ReorderCandidate `json:"urgent"`
	Recommended []ReorderCandidate `json:"recommended"`
	Optimal     []Product          `json:"optimal"`
}

// ReorderCandidate pairs a product with its recommendation.
type ReorderCandidate struct {
	Product        Product               `json:"product"`
	Recommendation ReorderRecommendation `json:"recommendation"`
}

// ForecastBand is a forecast with its confidence interval.
type ForecastBand struct {
	Forecast
	ConfidenceHigh float64 `json:"confidence_high"`
	ConfidenceLow  float64 `json:"confidence_low"`
}

// WeatherDemand joins one day of weather at a location with a product's
// predicted demand for that day.
type WeatherDemand struct {
	WeatherRecord
	PredictedDemand float64            `json:"predicted_demand"`
	ImpactPercent   float64            `json:"impact_percent"`
	ImpactLevel     WeatherImpactLevel `json:"impact_level"`
}
