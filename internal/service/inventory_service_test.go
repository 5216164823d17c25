package service

import (
	"context"
	"testing"
	"time"

	"stocktracker/internal/cache"
	"stocktracker/internal/forecast"
	"stocktracker/internal/metrics"
	"stocktracker/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

type inventoryFixture struct {
	items     *fakeItemRepo
	usage     *fakeUsageRepo
	movements *fakeMovementRepo
	audit     *fakeAuditRepo
	cache     *cache.Memory
	notifier  *recordingNotifier
	svc       *inventoryService
}

func newInventoryFixture(items ...model.Item) *inventoryFixture {
	f := &inventoryFixture{
		items:     newFakeItemRepo(items...),
		usage:     &fakeUsageRepo{},
		movements: &fakeMovementRepo{},
		audit:     &fakeAuditRepo{},
		cache:     cache.NewMemory(),
		notifier:  &recordingNotifier{},
	}
	svc := NewInventoryService(f.items, f.usage, f.movements, f.audit, passThroughTx{}, f.cache, metrics.New(), f.notifier)
	f.svc = svc.(*inventoryService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func stockedItem(name string, stock, reorder int, usage float64) model.Item {
	return model.Item{
		ID:           uuid.New(),
		Name:         name,
		Category:     model.CategoryStationery,
		CurrentStock: stock,
		ReorderLevel: reorder,
		DailyUsage:   usage,
		UnitPrice:    decimal.NewFromInt(1),
	}
}

func validItemRequest() ItemRequest {
	return ItemRequest{
		Name:         "Stapler",
		Category:     model.CategoryEquipment,
		CurrentStock: 10,
		ReorderLevel: 2,
		DailyUsage:   0.5,
		UnitPrice:    decimal.NewFromFloat(12.5),
	}
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ItemRequest)
	}{
		{"blank name", func(r *ItemRequest) { r.Name = "  " }},
		{"unknown category", func(r *ItemRequest) { r.Category = "food" }},
		{"negative stock", func(r *ItemRequest) { r.CurrentStock = -1 }},
		{"zero reorder level", func(r *ItemRequest) { r.ReorderLevel = 0 }},
		{"negative usage", func(r *ItemRequest) { r.DailyUsage = -0.1 }},
		{"negative price", func(r *ItemRequest) { r.UnitPrice = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInventoryFixture()
			req := validItemRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateItem(context.Background(), "alice", req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, f.items.items)
			assert.Empty(t, f.audit.entries)
		})
	}
}

func TestCreateItemAuditsAndInvalidatesDashboard(t *testing.T) {
	ctx := context.Background()
	f := newInventoryFixture()
	require.NoError(t, f.cache.Set(ctx, "dashboard:view:2026-03-10", Dashboard{}, 0))

	res, err := f.svc.CreateItem(ctx, "alice", validItemRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, forecast.StatusHealthy, res.Status)
	days, finite := res.DaysUntilStockout.Days()
	assert.True(t, finite)
	assert.Equal(t, 20, days)

	entry := f.audit.last()
	assert.Equal(t, model.ActionAdd, entry.Action)
	assert.Equal(t, "alice", entry.User)

	var d Dashboard
	hit, err := f.cache.Get(ctx, "dashboard:view:2026-03-10", &d)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBlankUserIsRecordedAsSystem(t *testing.T) {
	f := newInventoryFixture()

	_, err := f.svc.CreateItem(context.Background(), "", validItemRequest())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAuditUser, f.audit.last().User)
}

func TestUpdateItemRecordsStockAdjustment(t *testing.T) {
	item := stockedItem("Paper", 10, 2, 1)
	f := newInventoryFixture(item)

	req := validItemRequest()
	req.Name = "Paper"
	req.CurrentStock = 4

	res, err := f.svc.UpdateItem(context.Background(), "bob", item.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.CurrentStock)

	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, model.MovementOut, m.Type)
	assert.Equal(t, model.ReasonAdjustment, m.Reason)
	assert.Equal(t, 6, m.Quantity)
	assert.Equal(t, 4, m.StockAfter)
	assert.Equal(t, model.ActionEdit, f.audit.last().Action)
}

func TestUpdateItemUnknown(t *testing.T) {
	f := newInventoryFixture()

	_, err := f.svc.UpdateItem(context.Background(), "bob", uuid.New(), validItemRequest())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem(t *testing.T) {
	item := stockedItem("Paper", 10, 2, 1)
	f := newInventoryFixture(item)

	require.NoError(t, f.svc.DeleteItem(context.Background(), "bob", item.ID))
	assert.Empty(t, f.items.items)
	assert.Equal(t, model.ActionDelete, f.audit.last().Action)
	assert.Contains(t, f.audit.last().Details, "Paper")

	assert.ErrorIs(t, f.svc.DeleteItem(context.Background(), "bob", item.ID), ErrNotFound)
}

func TestListItems(t *testing.T) {
	healthy := stockedItem("Binder", 50, 5, 1)
	low := stockedItem("Clips", 3, 5, 1)
	empty := stockedItem("Toner", 0, 5, 1)
	f := newInventoryFixture(healthy, low, empty)
	ctx := context.Background()

	t.Run("status filter is case insensitive", func(t *testing.T) {
		res, total, err := f.svc.ListItems(ctx, ItemListFilter{Status: "low"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, res, 1)
		assert.Equal(t, "Clips", res[0].Name)
		assert.Equal(t, forecast.StatusLow, res[0].Status)
	})

	t.Run("pagination applies after filtering", func(t *testing.T) {
		res, total, err := f.svc.ListItems(ctx, ItemListFilter{Page: 2, Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, res, 1)
		assert.Equal(t, "Clips", res[0].Name)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		res, total, err := f.svc.ListItems(ctx, ItemListFilter{Page: 5, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Empty(t, res)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, _, err := f.svc.ListItems(ctx, ItemListFilter{Status: "Critical"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, _, err := f.svc.ListItems(ctx, ItemListFilter{Category: "food"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("repository failure", func(t *testing.T) {
		f.items.listErr = errBoom
		defer func() { f.items.listErr = nil }()
		_, _, err := f.svc.ListItems(ctx, ItemListFilter{})
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestRestock(t *testing.T) {
	item := stockedItem("Toner", 0, 5, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	_, err := f.svc.Restock(ctx, "carol", item.ID, RestockRequest{Quantity: 0})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := f.svc.Restock(ctx, "carol", item.ID, RestockRequest{Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, res.CurrentStock)
	assert.Equal(t, forecast.StatusHealthy, res.Status)
	assert.Equal(t, 12, f.items.items[item.ID].CurrentStock)

	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, model.MovementIn, f.movements.movements[0].Type)
	assert.Equal(t, model.ReasonRestock, f.movements.movements[0].Reason)
	assert.Equal(t, model.ActionRestock, f.audit.last().Action)

	_, err = f.svc.Restock(ctx, "carol", uuid.New(), RestockRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordUsageClampsStockAndAlerts(t *testing.T) {
	item := stockedItem("Toner", 3, 2, 1)
	f := newInventoryFixture(item)

	rec, err := f.svc.RecordUsage(context.Background(), "dave", UsageRequest{ItemID: item.ID, Quantity: 5, Notes: "printer day"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.items.items[item.ID].CurrentStock)
	assert.Equal(t, 5, rec.Quantity)
	assert.Equal(t, "Toner", rec.ItemName)
	assert.Equal(t, model.CategoryStationery, rec.Category)
	assert.Equal(t, fixedNow, rec.Date)

	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, model.MovementOut, m.Type)
	assert.Equal(t, model.ReasonUsage, m.Reason)
	assert.Equal(t, 0, m.StockAfter)
	require.NotNil(t, m.UsageID)
	assert.Equal(t, rec.ID, *m.UsageID)

	assert.Equal(t, model.ActionUsage, f.audit.last().Action)
	assert.Equal(t, "dave", f.audit.last().User)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, EventStockAlert, f.notifier.events[0].Event)
	alert, ok := f.notifier.events[0].Data.(*StockAlert)
	require.True(t, ok)
	assert.Equal(t, forecast.StatusHealthy, alert.PreviousStatus)
	assert.Equal(t, forecast.StatusOutOfStock, alert.Status)
}

func TestRecordUsageAlertsOnlyWhenStatusWorsens(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		quantity  int
		wantAlert bool
	}{
		{"healthy stays healthy", 100, 1, false},
		{"healthy to low", 6, 2, true},
		{"low stays low", 4, 1, false},
		{"low to out of stock", 2, 2, true},
		{"already out of stock", 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := stockedItem("Clips", tt.stock, 5, 1)
			f := newInventoryFixture(item)

			_, err := f.svc.RecordUsage(context.Background(), "", UsageRequest{ItemID: item.ID, Quantity: tt.quantity})
			require.NoError(t, err)
			if tt.wantAlert {
				assert.Len(t, f.notifier.events, 1)
			} else {
				assert.Empty(t, f.notifier.events)
			}
		})
	}
}

func TestRecordUsageDates(t *testing.T) {
	item := stockedItem("Pens", 100, 5, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	rec, err := f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 1, Date: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), rec.Date)

	rec, err = f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 1, Date: "2026-03-02T09:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), rec.Date)

	_, err = f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 1, Date: "03/01/2026"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordUsageRejections(t *testing.T) {
	item := stockedItem("Pens", 100, 5, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	_, err := f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, f.usage.records)
}

func TestRecordUsageFailedAuditPublishesNothing(t *testing.T) {
	item := stockedItem("Toner", 1, 5, 1)
	f := newInventoryFixture(item)
	f.audit.logErr = errBoom

	_, err := f.svc.RecordUsage(context.Background(), "", UsageRequest{ItemID: item.ID, Quantity: 1})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.notifier.events)
}

func TestDeleteUsageRestoresStock(t *testing.T) {
	item := stockedItem("Paper", 10, 2, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	rec, err := f.svc.RecordUsage(ctx, "erin", UsageRequest{ItemID: item.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, f.items.items[item.ID].CurrentStock)

	require.NoError(t, f.svc.DeleteUsage(ctx, "erin", rec.ID))
	assert.Equal(t, 10, f.items.items[item.ID].CurrentStock)
	assert.Empty(t, f.usage.records)

	last := f.movements.movements[len(f.movements.movements)-1]
	assert.Equal(t, model.MovementIn, last.Type)
	assert.Equal(t, model.ReasonUsageReverted, last.Reason)
	assert.Equal(t, 3, last.Quantity)
	assert.Equal(t, 10, last.StockAfter)
	assert.Equal(t, model.ActionDelete, f.audit.last().Action)

	assert.ErrorIs(t, f.svc.DeleteUsage(ctx, "erin", rec.ID), ErrNotFound)
}

func TestDeleteUsageOfDeletedItem(t *testing.T) {
	item := stockedItem("Paper", 10, 2, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	rec, err := f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteItem(ctx, "", item.ID))
	movementsBefore := len(f.movements.movements)

	require.NoError(t, f.svc.DeleteUsage(ctx, "", rec.ID))
	assert.Empty(t, f.usage.records)
	assert.Len(t, f.movements.movements, movementsBefore)
	assert.Contains(t, f.audit.last().Details, "no longer exists")
}

func TestListUsageNormalizesPaging(t *testing.T) {
	item := stockedItem("Paper", 100, 2, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 1})
		require.NoError(t, err)
	}

	records, total, err := f.svc.ListUsage(ctx, &item.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, records, 3)

	other := uuid.New()
	records, total, err = f.svc.ListUsage(ctx, &other, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
}

func TestListMovements(t *testing.T) {
	item := stockedItem("Paper", 10, 2, 1)
	f := newInventoryFixture(item)
	ctx := context.Background()

	_, err := f.svc.Restock(ctx, "", item.ID, RestockRequest{Quantity: 5})
	require.NoError(t, err)
	_, err = f.svc.RecordUsage(ctx, "", UsageRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)

	movements, err := f.svc.ListMovements(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, model.ReasonUsage, movements[0].Reason)
	assert.Equal(t, model.ReasonRestock, movements[1].Reason)

	_, err = f.svc.ListMovements(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
