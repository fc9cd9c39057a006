package cache

import (
	"context"
	"strings"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

const dashboardSummaryKeyPrefix = "dashboard:summary"

// DashboardSummaryCache stores computed summaries per location scope. An
// empty scope is the whole catalogue.
type DashboardSummaryCache interface {
	GetSummary(ctx context.Context, scope string) (*domain.DashboardSummary, bool, error)
	SetSummary(ctx context.Context, scope string, summary *domain.DashboardSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	store *jsonStore
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardSummaryCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	store, err := newJSONStore(cfg, dashboardSummaryKeyPrefix)
	if err != nil {
		return nil, err
	}
	return &redisDashboardCache{store: store}, nil
}

func NewNoopDashboardCache() DashboardSummaryCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetSummary(ctx context.Context, scope string) (*domain.DashboardSummary, bool, error) {
	var summary domain.DashboardSummary
	ok, err := c.store.get(ctx, dashboardScopeSuffix(scope), &summary)
	if err != nil || !ok {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisDashboardCache) SetSummary(ctx context.Context, scope string, summary *domain.DashboardSummary) error {
	return c.store.set(ctx, dashboardScopeSuffix(scope), summary)
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return c.store.clear(ctx)
}

func (n *noopDashboardCache) GetSummary(ctx context.Context, scope string) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetSummary(ctx context.Context, scope string, summary *domain.DashboardSummary) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardSummaryKey(scope string) string {
	return dashboardSummaryKeyPrefix + ":" + dashboardScopeSuffix(scope)
}

// dashboardScopeSuffix is "default" for the whole catalogue, else a hash of
// the normalised location.
func dashboardScopeSuffix(scope string) string {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		return "default"
	}
	return hashKey("location=" + scope)
}
