package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/storage"
)

type fakeStore struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStore) DownloadObject(ctx context.Context, key, destPath string) error {
	return nil
}

func (f *fakeStore) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

func sampleRows() []InventoryRow {
	products := []domain.Product{
		{ID: "p1", SKU: "SKU-1", Name: "Kettle, steel", Price: decimal.RequireFromString("12.5"), StockLevel: 4, ReorderPoint: 10, MaxStockLevel: 50},
		{ID: "p2", SKU: "SKU-2", Name: "Mug", Price: decimal.NewFromInt(3), StockLevel: 80, ReorderPoint: 10, MaxStockLevel: 50},
	}
	recs := map[string]domain.ReorderRecommendation{"p1": {ProductID: "p1", RecommendedQuantity: 17}}
	return BuildInventory(products, recs)
}

func TestWriteInventory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, inventoryHeader, records[0])
	assert.Equal(t, "Kettle, steel", records[1][2])
	assert.Equal(t, "low", records[1][9])
	assert.Equal(t, "12.50", records[1][10])
	assert.Equal(t, "50.00", records[1][11])
	assert.Equal(t, "17", records[1][12])

	assert.Equal(t, "overstock", records[2][9])
	assert.Equal(t, "0", records[2][12])
}

func TestExportUploads(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	e := NewExporter(dir, store)
	e.now = func() time.Time { return time.Date(2026, 10, 15, 23, 0, 0, 0, time.UTC) }

	res, err := e.Export(context.Background(), sampleRows())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
	assert.True(t, strings.HasPrefix(res.ObjectKey, "reports/2026-10-15/"))
	assert.True(t, strings.HasSuffix(res.ObjectKey, ".csv"))
	assert.Equal(t, dir, filepath.Dir(res.Path))

	local, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, local, store.uploads[res.ObjectKey])
}

func TestExportWithoutStore(t *testing.T) {
	res, err := NewExporter(t.TempDir(), nil).Export(context.Background(), sampleRows())
	require.NoError(t, err)
	assert.Empty(t, res.ObjectKey)
	assert.FileExists(t, res.Path)
}

func TestExportUploadFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket gone")}
	_, err := NewExporter(t.TempDir(), store).Export(context.Background(), sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestWriteDataset(t *testing.T) {
	opts := simulation.DefaultOptions()
	opts.ProductCount = 3
	opts.Now = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	ds := simulation.NewGenerator(opts).Generate()

	dir := t.TempDir()
	paths, err := WriteDataset(dir, &ds)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	f, err := os.Open(filepath.Join(dir, "sales.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+3*opts.HistoryDays)
	assert.Equal(t, []string{"date", "product_id", "quantity", "revenue"}, records[0])
}
