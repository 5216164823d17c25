package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"stocktracker/internal/model"
	"stocktracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errBoom = errors.New("boom")

type passThroughTx struct{}

func (passThroughTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeItemRepo struct {
	items   map[uuid.UUID]model.Item
	listErr error
}

func newFakeItemRepo(items ...model.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[uuid.UUID]model.Item)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *model.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeItemRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(item.Name), q) && !strings.Contains(strings.ToLower(item.SKU), q) {
				continue
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	return r.List(ctx, repository.ItemFilter{})
}

func (r *fakeItemRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CurrentStock = stock
	r.items[id] = item
	return nil
}

type fakeUsageRepo struct {
	records []model.UsageRecord
	// onListAll runs before the records are copied, simulating a write that
	// lands while a snapshot is being loaded
	onListAll func()
}

func (r *fakeUsageRepo) Create(_ context.Context, record *model.UsageRecord) error {
	record.ID = uuid.New()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeUsageRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUsageRepo) FindByID(_ context.Context, id uuid.UUID) (*model.UsageRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			rec := rec
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsageRepo) List(_ context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error) {
	var matched []model.UsageRecord
	for _, rec := range r.records {
		if itemID == nil || rec.ItemID == *itemID {
			matched = append(matched, rec)
		}
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *fakeUsageRepo) ListAll(_ context.Context) ([]model.UsageRecord, error) {
	if r.onListAll != nil {
		r.onListAll()
	}
	return append([]model.UsageRecord(nil), r.records...), nil
}

type fakeMovementRepo struct {
	movements []model.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	m.ID = uuid.New()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error) {
	out := make([]model.StockMovement, 0)
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].ItemID == itemID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
	logErr  error
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	if r.logErr != nil {
		return r.logErr
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	var matched []model.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if action == "" || r.entries[i].Action == action {
			matched = append(matched, r.entries[i])
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeAuditRepo) last() model.AuditLog {
	return r.entries[len(r.entries)-1]
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]model.Supplier
}

func newFakeSupplierRepo(suppliers ...model.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: make(map[uuid.UUID]model.Supplier)}
	for _, s := range suppliers {
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *fakeSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	s.ID = uuid.New()
	r.suppliers[s.ID] = *s
	return nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = *s
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeSupplierRepo) List(ctx context.Context, _ string, _, _ int) ([]model.Supplier, int64, error) {
	all, _ := r.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (r *fakeSupplierRepo) ListAll(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type publishedEvent struct {
	Event string
	Data  interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{Event: event, Data: data})
}
