package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

const productListKeyPrefix = "products:list"

// ProductListCache stores filtered product listings keyed by the filter.
type ProductListCache interface {
	GetList(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool, error)
	SetList(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error
	InvalidateAll(ctx context.Context) error
}

type redisProductListCache struct {
	store *jsonStore
}

type noopProductListCache struct{}

func NewProductListCache(cfg config.CacheConfig) (ProductListCache, error) {
	if !cfg.Enabled {
		return &noopProductListCache{}, nil
	}

	store, err := newJSONStore(cfg, productListKeyPrefix)
	if err != nil {
		return nil, err
	}
	return &redisProductListCache{store: store}, nil
}

func NewNoopProductListCache() ProductListCache {
	return &noopProductListCache{}
}

func (c *redisProductListCache) GetList(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool, error) {
	var products []domain.Product
	ok, err := c.store.get(ctx, productFilterHash(filter), &products)
	if err != nil || !ok {
		return nil, false, err
	}
	return products, true, nil
}

func (c *redisProductListCache) SetList(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error {
	return c.store.set(ctx, productFilterHash(filter), products)
}

func (c *redisProductListCache) InvalidateAll(ctx context.Context) error {
	return c.store.clear(ctx)
}

func (n *noopProductListCache) GetList(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool, error) {
	return nil, false, nil
}

func (n *noopProductListCache) SetList(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error {
	return nil
}

func (n *noopProductListCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildProductListKey(filter domain.ProductFilter) string {
	return fmt.Sprintf("%s:%s", productListKeyPrefix, productFilterHash(filter))
}

func productFilterHash(filter domain.ProductFilter) string {
	parts := []string{}

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		parts = append(parts, "query="+q)
	}
	if filter.Category != "" {
		parts = append(parts, "category="+strings.TrimSpace(filter.Category))
	}
	if filter.Supplier != "" {
		parts = append(parts, "supplier="+strings.TrimSpace(filter.Supplier))
	}
	if filter.LocationID != "" {
		parts = append(parts, "location="+strings.TrimSpace(filter.LocationID))
	}
	if filter.MinPrice != nil {
		parts = append(parts, "min_price="+filter.MinPrice.StringFixed(2))
	}
	if filter.MaxPrice != nil {
		parts = append(parts, "max_price="+filter.MaxPrice.StringFixed(2))
	}
	if filter.StockStatus != "" {
		parts = append(parts, "stock_status="+string(filter.StockStatus))
	}
	if filter.SortField != "" {
		parts = append(parts, "sort="+strings.ToLower(filter.SortField)+":"+strings.ToLower(filter.SortDir))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	return hashKey(strings.Join(parts, "|"))
}
