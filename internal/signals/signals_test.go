package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestAverageDailyDemand(t *testing.T) {
	assert.Equal(t, 0.0, AverageDailyDemand(nil))

	forecasts := []domain.Forecast{{PredictedDemand: 8}, {PredictedDemand: 12}}
	assert.Equal(t, 10.0, AverageDailyDemand(forecasts))
}

func TestFactorAveraging(t *testing.T) {
	forecasts := []domain.Forecast{
		{Factors: domain.ForecastFactors{Weather: ptr(0.4), Social: ptr(0.3)}},
		{},
		{},
		{Factors: domain.ForecastFactors{Weather: ptr(0.2)}},
	}

	tests := []struct {
		mode    Averaging
		weather float64
		social  float64
	}{
		{AveragingTotal, 0.15, 0.075},
		{AveragingPresent, 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.InDelta(t, tt.weather, WeatherImpact(forecasts, tt.mode), 1e-9)
			assert.InDelta(t, tt.social, SocialImpact(forecasts, tt.mode), 1e-9)
		})
	}
}

func TestFactorAveragingEmpty(t *testing.T) {
	assert.Equal(t, 0.0, WeatherImpact(nil, AveragingTotal))
	assert.Equal(t, 0.0, SocialImpact([]domain.Forecast{{}}, AveragingPresent))
}

func TestAggregate(t *testing.T) {
	s := Aggregate([]domain.Forecast{
		{PredictedDemand: 10, Factors: domain.ForecastFactors{Weather: ptr(-0.2)}},
		{PredictedDemand: 20},
	}, AveragingTotal)

	assert.Equal(t, 15.0, s.AvgDailyDemand)
	assert.InDelta(t, -0.1, s.WeatherImpact, 1e-9)
	assert.Equal(t, 0.0, s.SocialImpact)
}

func TestParseAveraging(t *testing.T) {
	assert.Equal(t, AveragingPresent, ParseAveraging("present"))
	assert.Equal(t, AveragingTotal, ParseAveraging("bogus"))
	assert.Equal(t, AveragingTotal, ParseAveraging(""))
}

func series(productID string, start time.Time, values ...float64) []domain.SentimentRecord {
	out := make([]domain.SentimentRecord, len(values))
	for i, v := range values {
		out[i] = domain.SentimentRecord{
			Date:      start.AddDate(0, 0, i),
			ProductID: productID,
			Sentiment: v,
			Volume:    100,
		}
	}
	return out
}

func TestTrendingScoreUsesLatestWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	records := series("p1", start, -1, -1, 0.5, 0.5, 0.5, 0.5, 0.5)
	records[0].Trending = true

	// reverse to check ordering is by date, not by slice position
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	trend := TrendingScore(records, 5)
	assert.InDelta(t, 0.5, trend.AvgSentiment, 1e-9)
	assert.Equal(t, 100.0, trend.AvgVolume)
	assert.False(t, trend.Trending)
}

func TestTrendingScoreEmpty(t *testing.T) {
	assert.Equal(t, Trend{}, TrendingScore(nil, 5))
}

func TestRankTrendingProductsTrendingFirst(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "hot", Name: "Hot"},
		{ID: "loud", Name: "Loud"},
		{ID: "quiet", Name: "Quiet"},
		{ID: "none", Name: "No Data"},
	}

	hot := series("hot", start, 0.1, 0.1)
	hot[1].Trending = true
	loud := series("loud", start, 0.9, 0.9)
	for i := range loud {
		loud[i].Volume = 5000
	}
	quiet := series("quiet", start, 0.2, 0.2)

	var sentiment []domain.SentimentRecord
	sentiment = append(sentiment, quiet...)
	sentiment = append(sentiment, loud...)
	sentiment = append(sentiment, hot...)

	ranked := RankTrendingProducts(products, sentiment, DefaultTrendingWindow)
	require.Len(t, ranked, 3)
	assert.Equal(t, "hot", ranked[0].ProductID)
	assert.True(t, ranked[0].Trending)
	assert.Equal(t, "loud", ranked[1].ProductID)
	assert.Equal(t, "quiet", ranked[2].ProductID)
	assert.Greater(t, ranked[1].Score(), ranked[0].Score())

	assert.Equal(t, domain.SentimentSlightlyPositive, ranked[0].SentimentLevel)
	assert.Equal(t, domain.SentimentVeryPositive, ranked[1].SentimentLevel)
	assert.Equal(t, "Very Positive", ranked[1].SentimentLabel)
}

func TestTopTrending(t *testing.T) {
	ranked := make([]domain.TrendingProduct, 7)
	for i := range ranked {
		ranked[i].ProductID = string(rune('a' + i))
	}

	top := TopTrending(ranked, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "a", top[0].ProductID)
	assert.Equal(t, "e", top[4].ProductID)

	assert.Len(t, TopTrending(ranked, 0), 7)
	assert.Len(t, TopTrending(ranked[:2], 5), 2)
}

func TestGroupForecasts(t *testing.T) {
	grouped := GroupForecasts([]domain.Forecast{
		{ProductID: "a", PredictedDemand: 1},
		{ProductID: "b"},
		{ProductID: "a", PredictedDemand: 2},
	})
	require.Len(t, grouped["a"], 2)
	assert.Equal(t, 2.0, grouped["a"][1].PredictedDemand)
}
