// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item at a single location.
type Product struct {
	ID            string          `json:"id" db:"id"`
	SKU           string          `json:"sku" db:"sku"`
	Name          string          `json:"name" db:"name"`
	Category      string          `json:"category" db:"category"`
	Supplier      string          `json:"supplier" db:"supplier"`
	LocationID    string          `json:"location_id" db:"location_id"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockLevel    int             `json:"stock_level" db:"stock_level"`
	MinStockLevel int             `json:"min_stock_level" db:"min_stock_level"`
	MaxStockLevel int             `json:"max_stock_level" db:"max_stock_level"`
	ReorderPoint  int             `json:"reorder_point" db:"reorder_point"`
	LeadTime      int             `json:"lead_time" db:"lead_time"`           // days
	SalesVelocity float64         `json:"sales_velocity" db:"sales_velocity"` // units per day
	LastReordered *time.Time      `json:"last_reordered,omitempty" db:"last_reordered"`
}

// Validate checks the stock threshold invariants.
func (p Product) Validate() error {
	if p.ID == "" {
		return NewValidationError("id", "must not be empty")
	}
	if p.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "must not be negative")
	}
	if p.StockLevel < 0 {
		return NewValidationError("stock_level", "must not be negative")
	}
	if p.MinStockLevel < 0 {
		return NewValidationError("min_stock_level", "must not be negative")
	}
	if p.LeadTime < 0 {
		return NewValidationError("lead_time", "must not be negative")
	}
	if p.SalesVelocity < 0 {
		return NewValidationError("sales_velocity", "must not be negative")
	}
	if p.ReorderPoint < p.MinStockLevel {
		return NewValidationError("reorder_point", "must be at least min_stock_level")
	}
	if p.MaxStockLevel < p.ReorderPoint {
		return NewValidationError("max_stock_level", "must be at least reorder_point")
	}
	return nil
}

// StockValue is price times units on hand.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockLevel)))
}

// SalesRecord is one product's sales for one day.
type SalesRecord struct {
	Date      time.Time       `json:"date" db:"date"`
	ProductID string          `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Revenue   decimal.Decimal `json:"revenue" db:"revenue"`
}

// ForecastFactors breaks a prediction down into its drivers. Weather and
// Social are only present on some days.
type ForecastFactors struct {
	Seasonal float64  `json:"seasonal"`
	Trend    float64  `json:"trend"`
	Weather  *float64 `json:"weather,omitempty"`
	Social   *float64 `json:"social,omitempty"`
}

// Forecast is the predicted demand of one product for one future day.
type Forecast struct {
	Date            time.Time       `json:"date"`
	ProductID       string          `json:"product_id"`
	PredictedDemand float64         `json:"predicted_demand"`
	ConfidenceScore float64         `json:"confidence_score"`
	Factors         ForecastFactors `json:"factors"`
}

type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherStormy WeatherCondition = "stormy"
	WeatherSnowy  WeatherCondition = "snowy"
)

// WeatherConditions lists every condition in a fixed order.
var WeatherConditions = []WeatherCondition{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherSnowy}

// WeatherRecord is the forecast weather for one location and day.
type WeatherRecord struct {
	Date          time.Time        `json:"date"`
	LocationID    string           `json:"location_id"`
	Condition     WeatherCondition `json:"condition"`
	Temperature   float64          `json:"temperature"`
	Precipitation float64          `json:"precipitation"`
	Impact        float64          `json:"impact"` // -1..1
}

// SentimentSources counts mentions per platform.
type SentimentSources struct {
	Twitter   int `json:"twitter"`
	Instagram int `json:"instagram"`
	Facebook  int `json:"facebook"`
	TikTok    int `json:"tiktok"`
}

// Total sums all platform counts.
func (s SentimentSources) Total() int {
	return s.Twitter + s.Instagram + s.Facebook + s.TikTok
}

// SentimentRecord is one product's social signal for one day.
type SentimentRecord struct {
	Date      time.Time        `json:"date"`
	ProductID string           `json:"product_id"`
	Sentiment float64          `json:"sentiment"` // -1..1
	Volume    int              `json:"volume"`
	Trending  bool             `json:"trending"`
	Sources   SentimentSources `json:"sources"`
}

type LocationType string

const (
	LocationStore     LocationType = "store"
	LocationWarehouse LocationType = "warehouse"
)

type Location struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    LocationType `json:"type"`
	Address string       `json:"address"`
}

// ReorderReasoning carries the inputs behind a recommendation.
type ReorderReasoning struct {
	CurrentStock   int     `json:"current_stock"`
	AvgDailyDemand float64 `json:"avg_daily_demand"`
	LeadTime       int     `json:"lead_time"`
	SafetyStock    float64 `json:"safety_stock"`
	WeatherImpact  float64 `json:"weather_impact"`
	SocialImpact   float64 `json:"social_impact"`
}

// LeadTimeDemand is the demand expected while an order is in transit.
func (r ReorderReasoning) LeadTimeDemand() float64 {
	return r.AvgDailyDemand * float64(r.LeadTime)
}

type ReorderRecommendation struct {
	ProductID           string           `json:"product_id"`
	RecommendedQuantity int              `json:"recommended_quantity"`
	Reasoning           ReorderReasoning `json:"reasoning"`
}
