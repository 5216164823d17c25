package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"stocktracker/internal/cache"
	"stocktracker/internal/forecast"
	"stocktracker/internal/metrics"
	"stocktracker/internal/model"
	"stocktracker/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type dashboardFixture struct {
	items     *fakeItemRepo
	usage     *fakeUsageRepo
	suppliers *fakeSupplierRepo
	cache     *cache.Memory
	svc       *dashboardService
}

func newDashboardFixture(leadTime int, items ...model.Item) *dashboardFixture {
	f := &dashboardFixture{
		items:     newFakeItemRepo(items...),
		usage:     &fakeUsageRepo{},
		suppliers: newFakeSupplierRepo(),
		cache:     cache.NewMemory(),
	}
	svc := NewDashboardService(f.items, f.usage, f.suppliers, f.cache, time.Minute, metrics.New(), leadTime)
	f.svc = svc.(*dashboardService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestGetDashboard(t *testing.T) {
	toner := stockedItem("Toner", 0, 5, 1)
	paper := stockedItem("Paper", 100, 5, 0)
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, toner, paper)
	f.usage.records = []model.UsageRecord{
		{ItemID: toner.ID, ItemName: "Toner", Quantity: 4, Date: fixedNow.Add(-time.Hour)},
	}

	d, err := f.svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, d.Totals.TotalItems)
	assert.Equal(t, 1, d.Totals.OutOfStock)
	require.NotEmpty(t, d.Recommendations)
	assert.LessOrEqual(t, len(d.Recommendations), forecast.MaxRecommendations)
	assert.Equal(t, 1, d.Recommendations[0].Priority)

	require.Len(t, d.TopUsed, 1)
	assert.Equal(t, "Toner", d.TopUsed[0].Name)
	assert.Len(t, d.Trend, forecast.DefaultTrendWindow)
	require.NotNil(t, d.TrendSummary)
	assert.Equal(t, "2026-03-10", d.TrendSummary.Peak.Day)
	assert.Equal(t, 4, d.TrendSummary.Peak.Total)
}

func TestGetDashboardWithoutUsageHasNoTrendSummary(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, stockedItem("Paper", 100, 5, 0))

	d, err := f.svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Nil(t, d.TrendSummary)
}

func TestGetDashboardIsMemoizedPerDay(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, stockedItem("Paper", 100, 5, 0))
	ctx := context.Background()

	first, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Totals.TotalItems)

	extra := stockedItem("Pens", 40, 5, 1)
	f.items.items[extra.ID] = extra

	cached, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Totals.TotalItems)

	invalidateDashboard(ctx, f.cache)
	fresh, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Totals.TotalItems)

	another := stockedItem("Tape", 40, 5, 1)
	f.items.items[another.ID] = another
	f.svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 1) }

	nextDay, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, nextDay.Totals.TotalItems)
}

func TestGetDashboardPropagatesLoadErrors(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays)
	f.items.listErr = errBoom

	_, err := f.svc.GetDashboard(context.Background())
	assert.ErrorIs(t, err, errBoom)

	_, err = f.svc.GetForecast(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestGetOrderRequestsHonorsLeadTime(t *testing.T) {
	// 20 in stock at 2 a day runs out in 10 days
	item := stockedItem("Paper", 20, 5, 2)

	tests := []struct {
		name     string
		leadTime int
		wantDate time.Time
	}{
		{"default lead time", forecast.DefaultLeadTimeDays, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)},
		{"no lead time", 0, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture(tt.leadTime, item)

			orders, err := f.svc.GetOrderRequests(context.Background())
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, forecast.PriorityMedium, orders[0].Priority)
			assert.Equal(t, 60-20, orders[0].Quantity)
			require.NotNil(t, orders[0].OrderBy)
			assert.True(t, tt.wantDate.Equal(*orders[0].OrderBy))
		})
	}
}

func TestGetForecastSurvivesCacheRoundTrip(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, stockedItem("Paper", 100, 5, 0), stockedItem("Toner", 0, 5, 1))
	ctx := context.Background()

	computed, err := f.svc.GetForecast(ctx)
	require.NoError(t, err)
	cached, err := f.svc.GetForecast(ctx)
	require.NoError(t, err)

	require.Len(t, cached, 2)
	assert.Equal(t, "Toner", cached[0].Item.Name)
	assert.True(t, cached[1].DaysUntilStockout.Never())
	assert.Equal(t, computed[0].Priority, cached[0].Priority)
	assert.Equal(t, computed[1].SuggestedOrderLabel(), cached[1].SuggestedOrderLabel())
}

func TestExportForecast(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, stockedItem("Toner", 0, 5, 1))
	svc := NewReportService(f.svc).(*reportService)
	svc.now = func() time.Time { return fixedNow }

	export, err := svc.ExportForecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "forecast-2026-03-10.xlsx", export.Filename)
	assert.Equal(t, report.ContentType, export.ContentType)

	file, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer file.Close()

	orders, err := file.GetRows(report.OrdersSheet)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Toner", orders[1][0])
}

func TestGetDashboardNotServedStaleAfterConcurrentWrite(t *testing.T) {
	item := stockedItem("Toner", 50, 5, 1)
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, item)
	inventory := NewInventoryService(f.items, f.usage, &fakeMovementRepo{}, &fakeAuditRepo{}, passThroughTx{}, f.cache, metrics.New(), &recordingNotifier{})
	ctx := context.Background()

	// the write commits after items were read but before the view is stored
	f.usage.onListAll = func() {
		f.usage.onListAll = nil
		_, err := inventory.RecordUsage(ctx, "dave", UsageRequest{ItemID: item.ID, Quantity: 50})
		require.NoError(t, err)
	}

	during, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, during.Totals.OutOfStock)

	after, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Totals.OutOfStock)
	assert.Equal(t, 0, f.items.items[item.ID].CurrentStock)
}

func TestExportForecastUsesOneSnapshot(t *testing.T) {
	toner := stockedItem("Toner", 0, 5, 1)
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, toner)
	// any second snapshot would no longer contain the item
	f.usage.onListAll = func() { delete(f.items.items, toner.ID) }

	export, err := NewReportService(f.svc).ExportForecast(context.Background())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(report.ForecastSheet)
	require.NoError(t, err)
	orders, err := file.GetRows(report.OrdersSheet)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.Len(t, orders, 2)
	assert.Equal(t, "Toner", rows[1][0])
	assert.Equal(t, "Toner", orders[1][0])
}

func TestGetForecastReportMatchesSeparateViews(t *testing.T) {
	f := newDashboardFixture(forecast.DefaultLeadTimeDays, stockedItem("Paper", 20, 5, 2), stockedItem("Toner", 0, 5, 1))
	ctx := context.Background()

	fr, err := f.svc.GetForecastReport(ctx)
	require.NoError(t, err)
	rows, err := f.svc.GetForecast(ctx)
	require.NoError(t, err)
	orders, err := f.svc.GetOrderRequests(ctx)
	require.NoError(t, err)

	require.Len(t, fr.Rows, len(rows))
	require.Len(t, fr.Orders, len(orders))
	for i := range orders {
		assert.Equal(t, orders[i].ItemID, fr.Orders[i].ItemID)
		assert.Equal(t, orders[i].Quantity, fr.Orders[i].Quantity)
	}
}
