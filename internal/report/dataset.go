package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
)

const dateLayout = "2006-01-02"

// WriteDataset dumps every series of ds into dir as one CSV per series and
// returns the written paths.
func WriteDataset(dir string, ds *simulation.Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}

	tables := []struct {
		name string
		rows [][]string
	}{
		{"products.csv", productRows(ds)},
		{"sales.csv", salesRows(ds)},
		{"forecasts.csv", forecastRows(ds)},
		{"weather.csv", weatherRows(ds)},
		{"sentiment.csv", sentimentRows(ds)},
		{"locations.csv", locationRows(ds)},
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := writeCSVFile(path, t.rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func productRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"id", "sku", "name", "category", "supplier", "location_id", "price",
		"stock_level", "min_stock_level", "reorder_point", "max_stock_level", "lead_time", "sales_velocity", "last_reordered"}}
	for _, p := range ds.Products {
		last := ""
		if p.LastReordered != nil {
			last = p.LastReordered.Format(dateLayout)
		}
		rows = append(rows, []string{
			p.ID, p.SKU, p.Name, p.Category, p.Supplier, p.LocationID, p.Price.StringFixed(2),
			strconv.Itoa(p.StockLevel), strconv.Itoa(p.MinStockLevel), strconv.Itoa(p.ReorderPoint),
			strconv.Itoa(p.MaxStockLevel), strconv.Itoa(p.LeadTime), formatFloat(p.SalesVelocity), last,
		})
	}
	return rows
}

func salesRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"date", "product_id", "quantity", "revenue"}}
	for _, s := range ds.Sales {
		rows = append(rows, []string{s.Date.Format(dateLayout), s.ProductID, strconv.Itoa(s.Quantity), s.Revenue.StringFixed(2)})
	}
	return rows
}

func forecastRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"date", "product_id", "predicted_demand", "confidence_score", "seasonal", "trend", "weather", "social"}}
	for _, f := range ds.Forecasts {
		rows = append(rows, []string{
			f.Date.Format(dateLayout), f.ProductID, formatFloat(f.PredictedDemand), formatFloat(f.ConfidenceScore),
			formatFloat(f.Factors.Seasonal), formatFloat(f.Factors.Trend),
			formatOptional(f.Factors.Weather), formatOptional(f.Factors.Social),
		})
	}
	return rows
}

func weatherRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"date", "location_id", "condition", "temperature", "precipitation", "impact"}}
	for _, w := range ds.Weather {
		rows = append(rows, []string{
			w.Date.Format(dateLayout), w.LocationID, string(w.Condition),
			formatFloat(w.Temperature), formatFloat(w.Precipitation), formatFloat(w.Impact),
		})
	}
	return rows
}

func sentimentRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"date", "product_id", "sentiment", "volume", "trending", "twitter", "instagram", "facebook", "tiktok"}}
	for _, s := range ds.Sentiment {
		rows = append(rows, []string{
			s.Date.Format(dateLayout), s.ProductID, formatFloat(s.Sentiment), strconv.Itoa(s.Volume),
			strconv.FormatBool(s.Trending), strconv.Itoa(s.Sources.Twitter), strconv.Itoa(s.Sources.Instagram),
			strconv.Itoa(s.Sources.Facebook), strconv.Itoa(s.Sources.TikTok),
		})
	}
	return rows
}

func locationRows(ds *simulation.Dataset) [][]string {
	rows := [][]string{{"id", "name", "type", "address"}}
	for _, l := range ds.Locations {
		rows = append(rows, []string{l.ID, l.Name, string(l.Type), l.Address})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
