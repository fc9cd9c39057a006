package domain

// Band widens a forecast into its confidence interval. A fully confident
// forecast collapses to its point estimate.
func (f Forecast) Band() ForecastBand {
	spread := (1 - f.ConfidenceScore) / 2
	return ForecastBand{
		Forecast:       f,
		ConfidenceHigh: f.PredictedDemand * (1 + spread),
		ConfidenceLow:  f.PredictedDemand * (1 - spread),
	}
}

// ForecastBands maps Band over forecasts.
func ForecastBands(forecasts []Forecast) []ForecastBand {
	out := make([]ForecastBand, len(forecasts))
	for i, f := range forecasts {
		out[i] = f.Band()
	}
	return out
}

func HasWeatherFactors(forecasts []Forecast) bool {
	for _, f := range forecasts {
		if f.Factors.Weather != nil {
			return true
		}
	}
	return false
}

func HasSocialFactors(forecasts []Forecast) bool {
	for _, f := range forecasts {
		if f.Factors.Social != nil {
			return true
		}
	}
	return false
}

// FilterForecasts keeps the forecasts of one product, preserving order.
func FilterForecasts(forecasts []Forecast, productID string) []Forecast {
	out := make([]Forecast, 0)
	for _, f := range forecasts {
		if f.ProductID == productID {
			out = append(out, f)
		}
	}
	return out
}

// FilterSales keeps the sales records of one product, preserving order.
func FilterSales(sales []SalesRecord, productID string) []SalesRecord {
	out := make([]SalesRecord, 0)
	for _, s := range sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out
}

// FilterSentiment keeps the sentiment records of one product, preserving order.
func FilterSentiment(records []SentimentRecord, productID string) []SentimentRecord {
	out := make([]SentimentRecord, 0)
	for _, r := range records {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// FilterWeather keeps the weather records of one location, preserving order.
func FilterWeather(records []WeatherRecord, locationID string) []WeatherRecord {
	out := make([]WeatherRecord, 0)
	for _, r := range records {
		if r.LocationID == locationID {
			out = append(out, r)
		}
	}
	return out
}

// JoinWeatherDemand pairs each weather day with the product's predicted
// demand for the same calendar day (0 when no forecast exists).
func JoinWeatherDemand(weather []WeatherRecord, forecasts []Forecast) []WeatherDemand {
	byDay := make(map[string]float64, len(forecasts))
	for _, f := range forecasts {
		byDay[f.Date.Format("2006-01-02")] = f.PredictedDemand
	}

	out := make([]WeatherDemand, len(weather))
	for i, w := range weather {
		out[i] = WeatherDemand{
			WeatherRecord:   w,
			PredictedDemand: byDay[w.Date.Format("2006-01-02")],
			ImpactPercent:   w.Impact * 100,
			ImpactLevel:     ClassifyWeatherImpact(w.Impact),
		}
	}
	return out
}
