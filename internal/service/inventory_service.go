package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/alerts"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/cache"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/reorder"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/report"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/signals"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/summary"
)

// Snapshot holds the time series loaded from the data source. Products live
// in the repository; everything else is read-only for the life of the
// snapshot.
type Snapshot struct {
	Sales     []domain.SalesRecord
	Forecasts []domain.Forecast
	Weather   []domain.WeatherRecord
	Sentiment []domain.SentimentRecord
	Locations []domain.Location
	LoadedAt  time.Time
}

// Options carries the policy knobs of the engines.
type Options struct {
	Policy         reorder.Policy
	CandidateBand  float64
	ReorderBand    float64
	TrendingWindow int
	TopN           int
	// SeedProducts caps how many dataset products seed an empty repository.
	// Zero seeds all of them.
	SeedProducts int
	Now          func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Policy:         reorder.DefaultPolicy(),
		CandidateBand:  reorder.DefaultCandidateBand,
		ReorderBand:    1.2,
		TrendingWindow: signals.DefaultTrendingWindow,
		TopN:           summary.DefaultTopN,
	}
}

// OptionsFromConfig maps engine settings onto Options.
func OptionsFromConfig(cfg config.EngineConfig) Options {
	opts := DefaultOptions()
	opts.Policy = reorder.Policy{
		SafetyStockDays: cfg.SafetyStockDays,
		WeatherWeight:   cfg.WeatherWeight,
		SocialWeight:    cfg.SocialWeight,
		Averaging:       signals.ParseAveraging(cfg.FactorAveraging),
	}
	if cfg.ReorderBand > 1 {
		opts.ReorderBand = cfg.ReorderBand
		opts.CandidateBand = cfg.ReorderBand
	}
	if cfg.TrendingWindow > 0 {
		opts.TrendingWindow = cfg.TrendingWindow
	}
	if cfg.TopN > 0 {
		opts.TopN = cfg.TopN
	}
	return opts
}

// Deps are the collaborators of InventoryService. Caches and Exporter may be nil.
type Deps struct {
	Products  repository.ProductRepository
	Alerts    repository.AlertRepository
	Source    simulation.Source
	Summaries cache.DashboardSummaryCache
	Lists     cache.ProductListCache
	Exporter  *report.Exporter
}

type InventoryService struct {
	products  repository.ProductRepository
	alertRepo repository.AlertRepository
	source    simulation.Source
	summaries cache.DashboardSummaryCache
	lists     cache.ProductListCache
	exporter  *report.Exporter

	calc   *reorder.Calculator
	alerts *alerts.Engine
	opts   Options

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewInventoryService loads the dataset from deps.Source and seeds the
// product repository with its products when the repository is empty.
func NewInventoryService(ctx context.Context, deps Deps, opts Options) (*InventoryService, error) {
	if deps.Summaries == nil {
		deps.Summaries = cache.NewNoopDashboardCache()
	}
	if deps.Lists == nil {
		deps.Lists = cache.NewNoopProductListCache()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &InventoryService{
		products:  deps.Products,
		alertRepo: deps.Alerts,
		source:    deps.Source,
		summaries: deps.Summaries,
		lists:     deps.Lists,
		exporter:  deps.Exporter,
		calc:      reorder.NewCalculator(opts.Policy),
		alerts: alerts.NewEngine(alerts.Options{
			ReorderBand:    opts.ReorderBand,
			TrendingWindow: opts.TrendingWindow,
			Now:            opts.Now,
		}),
		opts: opts,
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the snapshot from the source. Products are only seeded
// when the repository is empty, so edits survive a reload.
func (s *InventoryService) Reload(ctx context.Context) error {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	seed := ds.Products
	if n := s.opts.SeedProducts; n > 0 && n < len(seed) {
		seed = seed[:n]
	}
	seeded, err := repository.SeedIfEmpty(ctx, s.products, seed)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if seeded > 0 {
		log.Info().Int("products", seeded).Msg("inventory: seeded product repository")
	}

	s.mu.Lock()
	s.snapshot = &Snapshot{
		Sales:     ds.Sales,
		Forecasts: ds.Forecasts,
		Weather:   ds.Weather,
		Sentiment: ds.Sentiment,
		Locations: ds.Locations,
		LoadedAt:  s.opts.Now(),
	}
	s.mu.Unlock()

	s.invalidate(ctx)
	return nil
}

func (s *InventoryService) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if err := s.summaries.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidate summaries failed")
	}
	if err := s.lists.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidate product lists failed")
	}
}

func (s *InventoryService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if products, ok, err := s.lists.GetList(ctx, filter); err == nil && ok {
		return products, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get product list failed")
	}

	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	products := filter.Apply(all)

	if err := s.lists.SetList(ctx, filter, products); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set product list failed")
	}
	return products, nil
}

func (s *InventoryService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.products.Get(ctx, id)
}

// CreateProduct stores p, assigning a prod- id when none is given.
func (s *InventoryService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = "prod-" + uuid.NewString()[:8]
	}
	if err := s.products.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := s.products.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *InventoryService) ProductSales(ctx context.Context, id string) ([]domain.SalesRecord, error) {
	if _, err := s.products.Get(ctx, id); err != nil {
		return nil, err
	}
	return domain.FilterSales(s.current().Sales, id), nil
}

func (s *InventoryService) ProductForecast(ctx context.Context, id string) ([]domain.ForecastBand, error) {
	if _, err := s.products.Get(ctx, id); err != nil {
		return nil, err
	}
	return domain.ForecastBands(domain.FilterForecasts(s.current().Forecasts, id)), nil
}

func (s *InventoryService) ProductSentiment(ctx context.Context, id string) ([]domain.SentimentRecord, error) {
	if _, err := s.products.Get(ctx, id); err != nil {
		return nil, err
	}
	return domain.FilterSentiment(s.current().Sentiment, id), nil
}

func (s *InventoryService) Recommendation(ctx context.Context, id string) (domain.ReorderRecommendation, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return domain.ReorderRecommendation{}, err
	}
	return s.calc.Recommend(id, products, s.current().Forecasts)
}

func (s *InventoryService) ReorderBuckets(ctx context.Context) (domain.ReorderBuckets, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return domain.ReorderBuckets{}, err
	}
	return s.calc.Buckets(products, s.current().Forecasts, s.opts.CandidateBand), nil
}

// Alerts recomputes the alert set and reconciles it with the stored alerts,
// newest first.
func (s *InventoryService) Alerts(ctx context.Context) ([]domain.Alert, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := s.current()
	computed := s.alerts.Compute(products, snap.Sentiment, snap.Weather)

	reconciled, err := s.alertRepo.Reconcile(ctx, computed)
	if err != nil {
		return nil, fmt.Errorf("reconcile alerts: %w", err)
	}
	return reconciled, nil
}

func (s *InventoryService) MarkAlertRead(ctx context.Context, id string) (domain.Alert, error) {
	a, err := s.alertRepo.MarkRead(ctx, id)
	if err != nil {
		return domain.Alert{}, err
	}
	if err := s.summaries.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidate summaries failed")
	}
	return a, nil
}

// DashboardSummary computes the KPIs, optionally scoped to one location.
func (s *InventoryService) DashboardSummary(ctx context.Context, locationID string) (*domain.DashboardSummary, error) {
	if cached, ok, err := s.summaries.GetSummary(ctx, locationID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get summary failed")
	}

	all, err := s.Alerts(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	scoped := all
	if locationID != "" {
		products = domain.ProductFilter{LocationID: locationID}.Apply(products)
		scoped = alertsFor(all, products)
	}

	result := summary.Compute(products, scoped, s.current().Sales, s.opts.TopN)

	if err := s.summaries.SetSummary(ctx, locationID, &result); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set summary failed")
	}
	return &result, nil
}

func alertsFor(all []domain.Alert, products []domain.Product) []domain.Alert {
	ids := make(map[string]bool, len(products))
	for _, p := range products {
		ids[p.ID] = true
	}
	out := make([]domain.Alert, 0)
	for _, a := range all {
		if ids[a.ProductID] {
			out = append(out, a)
		}
	}
	return out
}

func (s *InventoryService) StockStatusCounts(ctx context.Context) (map[domain.StockStatus]int, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.StockStatusCounts(products), nil
}

// TrendingProducts returns the top TopN products of the trending ranking.
func (s *InventoryService) TrendingProducts(ctx context.Context) ([]domain.TrendingProduct, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	ranked := signals.RankTrendingProducts(products, s.current().Sentiment, s.opts.TrendingWindow)
	return signals.TopTrending(ranked, s.opts.TopN), nil
}

func (s *InventoryService) Locations(ctx context.Context) []domain.Location {
	return s.current().Locations
}

// Weather returns the weather forecast, all locations when locationID is empty.
func (s *InventoryService) Weather(ctx context.Context, locationID string) []domain.WeatherRecord {
	weather := s.current().Weather
	if locationID == "" {
		return weather
	}
	return domain.FilterWeather(weather, locationID)
}

// WeatherDemand joins a location's weather with a product's forecast.
func (s *InventoryService) WeatherDemand(ctx context.Context, locationID, productID string) ([]domain.WeatherDemand, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	snap := s.current()
	return domain.JoinWeatherDemand(
		domain.FilterWeather(snap.Weather, locationID),
		domain.FilterForecasts(snap.Forecasts, productID),
	), nil
}

// ExportInventoryReport writes the inventory CSV with current recommendations.
func (s *InventoryService) ExportInventoryReport(ctx context.Context) (*report.Result, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("report export is not configured")
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	recs := s.calc.RecommendAll(products, s.current().Forecasts)

	return s.exporter.Export(ctx, report.BuildInventory(products, recs))
}
