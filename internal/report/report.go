// Package report renders inventory and dataset exports as CSV.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/storage"
)

var inventoryHeader = []string{
	"id", "sku", "name", "category", "supplier", "location_id",
	"stock_level", "reorder_point", "max_stock_level", "status",
	"price", "stock_value", "recommended_quantity",
}

// InventoryRow is one line of the inventory report.
type InventoryRow struct {
	Product             domain.Product
	Status              domain.StockStatus
	RecommendedQuantity int
}

// BuildInventory pairs each product with its status and recommended
// quantity. Products without a recommendation report 0.
func BuildInventory(products []domain.Product, recs map[string]domain.ReorderRecommendation) []InventoryRow {
	rows := make([]InventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, InventoryRow{
			Product:             p,
			Status:              domain.StockStatusOf(p),
			RecommendedQuantity: recs[p.ID].RecommendedQuantity,
		})
	}
	return rows
}

// WriteInventory writes rows as CSV with a header line.
func WriteInventory(w io.Writer, rows []InventoryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(inventoryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		p := r.Product
		record := []string{
			p.ID,
			p.SKU,
			p.Name,
			p.Category,
			p.Supplier,
			p.LocationID,
			strconv.Itoa(p.StockLevel),
			strconv.Itoa(p.ReorderPoint),
			strconv.Itoa(p.MaxStockLevel),
			string(r.Status),
			p.Price.StringFixed(2),
			p.StockValue().StringFixed(2),
			strconv.Itoa(r.RecommendedQuantity),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", p.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Result describes a finished export.
type Result struct {
	Path      string `json:"path"`
	ObjectKey string `json:"object_key,omitempty"`
	Rows      int    `json:"rows"`
}

// Exporter writes inventory reports to a local directory and, when an object
// store is configured, uploads a copy.
type Exporter struct {
	dir   string
	store storage.ObjectStorage
	now   func() time.Time
}

// NewExporter builds an Exporter. store may be nil.
func NewExporter(dir string, store storage.ObjectStorage) *Exporter {
	return &Exporter{dir: dir, store: store, now: time.Now}
}

// Export writes the report as <dir>/inventory-<date>-<id>.csv and uploads it
// under reports/<date>/<id>.csv.
func (e *Exporter) Export(ctx context.Context, rows []InventoryRow) (*Result, error) {
	var buf bytes.Buffer
	if err := WriteInventory(&buf, rows); err != nil {
		return nil, fmt.Errorf("render inventory report: %w", err)
	}

	id := uuid.NewString()
	date := e.now().UTC().Format("2006-01-02")

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(e.dir, fmt.Sprintf("inventory-%s-%s.csv", date, id))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write report %s: %w", path, err)
	}

	res := &Result{Path: path, Rows: len(rows)}
	if e.store == nil {
		return res, nil
	}

	key := ObjectKey(date, id)
	if err := e.store.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}
	res.ObjectKey = key

	log.Info().Str("key", key).Int("rows", len(rows)).Msg("inventory report uploaded")
	return res, nil
}

// ObjectKey is the bucket key of a report.
func ObjectKey(date, id string) string {
	return fmt.Sprintf("reports/%s/%s.csv", date, id)
}
