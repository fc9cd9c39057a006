package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastBand(t *testing.T) {
	f := Forecast{PredictedDemand: 100, ConfidenceScore: 0.8}
	band := f.Band()
	assert.InDelta(t, 110, band.ConfidenceHigh, 1e-9)
	assert.InDelta(t, 90, band.ConfidenceLow, 1e-9)

	sure := Forecast{PredictedDemand: 42, ConfidenceScore: 1}.Band()
	assert.Equal(t, 42.0, sure.ConfidenceHigh)
	assert.Equal(t, 42.0, sure.ConfidenceLow)
}

func TestHasFactors(t *testing.T) {
	w := 0.2
	forecasts := []Forecast{{}, {Factors: ForecastFactors{Weather: &w}}}
	assert.True(t, HasWeatherFactors(forecasts))
	assert.False(t, HasSocialFactors(forecasts))
	assert.False(t, HasWeatherFactors(nil))
}

func TestJoinWeatherDemand(t *testing.T) {
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	weather := []WeatherRecord{
		{Date: day, LocationID: "store-001", Condition: WeatherStormy, Impact: -0.5},
		{Date: day.AddDate(0, 0, 1), LocationID: "store-001", Condition: WeatherSunny, Impact: 0.1},
	}
	forecasts := []Forecast{{Date: day.Add(6 * time.Hour), ProductID: "p1", PredictedDemand: 12}}

	joined := JoinWeatherDemand(weather, forecasts)
	require.Len(t, joined, 2)
	assert.Equal(t, 12.0, joined[0].PredictedDemand)
	assert.Equal(t, -50.0, joined[0].ImpactPercent)
	assert.Equal(t, ImpactStrongNegative, joined[0].ImpactLevel)
	assert.Equal(t, 0.0, joined[1].PredictedDemand)
	assert.Equal(t, ImpactPositive, joined[1].ImpactLevel)
}

func TestFilterHelpers(t *testing.T) {
	sales := []SalesRecord{{ProductID: "a", Quantity: 1}, {ProductID: "b"}, {ProductID: "a", Quantity: 2}}
	got := FilterSales(sales, "a")
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Quantity)

	assert.Empty(t, FilterForecasts(nil, "a"))
	assert.Len(t, FilterWeather([]WeatherRecord{{LocationID: "x"}, {LocationID: "y"}}, "y"), 1)
}
