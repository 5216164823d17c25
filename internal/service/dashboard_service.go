package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"stocktracker/internal/cache"
	"stocktracker/internal/forecast"
	"stocktracker/internal/metrics"
	"stocktracker/internal/repository"
)

const (
	viewDashboard = "view"
	viewForecast  = "forecast"
	viewOrders    = "orders"
	viewReport    = "report"
)

// Dashboard is the aggregated view rendered on the landing page
type Dashboard struct {
	Totals          forecast.Totals           `json:"totals"`
	Recommendations []forecast.Recommendation `json:"recommendations"`
	TopUsed         []forecast.ItemUsage      `json:"top_used"`
	Trend           []forecast.DayTotal       `json:"trend"`
	TrendSummary    *forecast.TrendSummary    `json:"trend_summary"` // nil when the window has no usage
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// ForecastReport holds the forecast table and the order requests derived
// from it, both built from one snapshot
type ForecastReport struct {
	Rows   []forecast.Row          `json:"rows"`
	Orders []forecast.OrderRequest `json:"orders"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (Dashboard, error)
	GetForecast(ctx context.Context) ([]forecast.Row, error)
	GetOrderRequests(ctx context.Context) ([]forecast.OrderRequest, error)
	GetForecastReport(ctx context.Context) (ForecastReport, error)
}

type dashboardService struct {
	itemRepo     repository.ItemRepository
	usageRepo    repository.UsageRepository
	supplierRepo repository.SupplierRepository
	cache        cache.Cache
	cacheTTL     time.Duration
	metrics      *metrics.Metrics
	leadTimeDays int
	now          func() time.Time
}

func NewDashboardService(
	itemRepo repository.ItemRepository,
	usageRepo repository.UsageRepository,
	supplierRepo repository.SupplierRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	leadTimeDays int,
) DashboardService {
	if leadTimeDays < 0 {
		leadTimeDays = forecast.DefaultLeadTimeDays
	}
	return &dashboardService{
		itemRepo:     itemRepo,
		usageRepo:    usageRepo,
		supplierRepo: supplierRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
		metrics:      m,
		leadTimeDays: leadTimeDays,
		now:          time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (Dashboard, error) {
	d, cached, err := memoize(ctx, s, viewDashboard, func(snap forecast.Snapshot, today time.Time) Dashboard {
		totals := forecast.ComputeTotals(snap.Items)
		s.metrics.SetStatusCounts(totals)

		trend := forecast.UsageTrend(snap.Usage, today, forecast.DefaultTrendWindow)
		d := Dashboard{
			Totals:          totals,
			Recommendations: forecast.GenerateRecommendations(snap),
			TopUsed:         forecast.TopUsedItems(snap.Usage, snap.Items, forecast.DefaultTopUsed),
			Trend:           trend,
			GeneratedAt:     today,
		}
		if summary, ok := forecast.SummarizeTrend(trend); ok {
			d.TrendSummary = &summary
		}
		return d
	})
	if err != nil {
		return Dashboard{}, err
	}
	s.metrics.ObserveDashboardRead(cached)
	return d, nil
}

func (s *dashboardService) GetForecast(ctx context.Context) ([]forecast.Row, error) {
	rows, _, err := memoize(ctx, s, viewForecast, func(snap forecast.Snapshot, today time.Time) []forecast.Row {
		return forecast.BuildForecast(snap.Items, s.options(today))
	})
	return rows, err
}

func (s *dashboardService) GetOrderRequests(ctx context.Context) ([]forecast.OrderRequest, error) {
	orders, _, err := memoize(ctx, s, viewOrders, func(snap forecast.Snapshot, today time.Time) []forecast.OrderRequest {
		rows := forecast.BuildForecast(snap.Items, s.options(today))
		return forecast.BuildOrderRequests(rows, snap.Suppliers)
	})
	return orders, err
}

func (s *dashboardService) GetForecastReport(ctx context.Context) (ForecastReport, error) {
	r, _, err := memoize(ctx, s, viewReport, func(snap forecast.Snapshot, today time.Time) ForecastReport {
		rows := forecast.BuildForecast(snap.Items, s.options(today))
		return ForecastReport{Rows: rows, Orders: forecast.BuildOrderRequests(rows, snap.Suppliers)}
	})
	return r, err
}

func (s *dashboardService) options(today time.Time) forecast.Options {
	return forecast.Options{Today: today, LeadTimeDays: s.leadTimeDays}
}

func (s *dashboardService) loadSnapshot(ctx context.Context) (forecast.Snapshot, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("failed to load items: %w", err)
	}
	usage, err := s.usageRepo.ListAll(ctx)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("failed to load usage: %w", err)
	}
	suppliers, err := s.supplierRepo.ListAll(ctx)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("failed to load suppliers: %w", err)
	}
	return forecast.Snapshot{Items: items, Usage: usage, Suppliers: suppliers}, nil
}

// memoize serves a view from the cache or computes it from a fresh snapshot.
// Keys carry the cache generation, read before the snapshot is loaded, so a
// view computed concurrently with a write lands under a key no later read
// uses. They also carry the calendar day because trends and order dates
// depend on it. Cache failures fall back to computing.
func memoize[T any](ctx context.Context, s *dashboardService, view string, compute func(forecast.Snapshot, time.Time) T) (T, bool, error) {
	today := s.now()

	var out T
	key, useCache := s.cacheKey(ctx, view, today)
	if useCache {
		hit, err := s.cache.Get(ctx, key, &out)
		switch {
		case err != nil:
			log.Printf("Dashboard cache read failed for %s: %v", key, err)
		case hit:
			return out, true, nil
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}
	out = compute(snap, today)

	if useCache {
		if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
			log.Printf("Dashboard cache write failed for %s: %v", key, err)
		}
	}
	return out, false, nil
}

func (s *dashboardService) cacheKey(ctx context.Context, view string, today time.Time) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	gen, err := s.cache.Generation(ctx, dashboardCachePrefix)
	if err != nil {
		log.Printf("Dashboard cache generation unavailable: %v", err)
		return "", false
	}
	return fmt.Sprintf("%s%d:%s:%s", dashboardCachePrefix, gen, view, today.Format(usageDateLayout)), true
}
