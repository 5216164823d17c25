package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"stocktracker/internal/cache"
	"stocktracker/internal/forecast"
	"stocktracker/internal/metrics"
	"stocktracker/internal/model"
	"stocktracker/internal/repository"
	"stocktracker/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// EventStockAlert is published when usage pushes an item into a worse status
	EventStockAlert = "stock_alert"

	dashboardCachePrefix = "dashboard:"
	movementHistoryLimit = 50
	usageDateLayout      = "2006-01-02"
)

// Notifier pushes live events to connected dashboards
type Notifier interface {
	Publish(event string, data interface{})
}

// DTOs
type ItemRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category" binding:"required"`
	CurrentStock int             `json:"current_stock"`
	ReorderLevel int             `json:"reorder_level"`
	DailyUsage   float64         `json:"daily_usage"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
}

func (r ItemRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return validationError("name is required")
	case !model.IsValidCategory(r.Category):
		return validationError("category must be one of %s", strings.Join(model.Categories, ", "))
	case r.CurrentStock < 0:
		return validationError("current_stock must not be negative")
	case r.ReorderLevel < 1:
		return validationError("reorder_level must be at least 1")
	case r.DailyUsage < 0 || math.IsNaN(r.DailyUsage) || math.IsInf(r.DailyUsage, 0):
		return validationError("daily_usage must be a non-negative number")
	case r.UnitPrice.IsNegative():
		return validationError("unit_price must not be negative")
	}
	return nil
}

func (r ItemRequest) apply(item *model.Item) {
	item.SKU = strings.TrimSpace(r.SKU)
	item.Name = strings.TrimSpace(r.Name)
	item.Description = r.Description
	item.Category = r.Category
	item.CurrentStock = r.CurrentStock
	item.ReorderLevel = r.ReorderLevel
	item.DailyUsage = r.DailyUsage
	item.UnitPrice = r.UnitPrice
	item.SupplierID = r.SupplierID
}

// ItemListFilter narrows ListItems. Status is matched after derivation.
type ItemListFilter struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Status   string
}

// ItemResponse is an item with its derived stock state
type ItemResponse struct {
	model.Item
	Status            forecast.Status   `json:"status"`
	DaysUntilStockout forecast.Stockout `json:"days_until_stockout"`
}

func toItemResponse(item model.Item) ItemResponse {
	return ItemResponse{
		Item:              item,
		Status:            forecast.ClassifyStatus(item),
		DaysUntilStockout: forecast.DaysUntilStockout(item),
	}
}

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type UsageRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required"`
	Date     string    `json:"date"` // YYYY-MM-DD or RFC 3339, defaults to now
	Notes    string    `json:"notes"`
}

// StockAlert is the payload of EventStockAlert
type StockAlert struct {
	ItemID            uuid.UUID         `json:"item_id"`
	Name              string            `json:"name"`
	PreviousStatus    forecast.Status   `json:"previous_status"`
	Status            forecast.Status   `json:"status"`
	CurrentStock      int               `json:"current_stock"`
	DaysUntilStockout forecast.Stockout `json:"days_until_stockout"`
}

type InventoryService interface {
	ListItems(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error)
	GetItem(ctx context.Context, id uuid.UUID) (ItemResponse, error)
	CreateItem(ctx context.Context, user string, req ItemRequest) (ItemResponse, error)
	UpdateItem(ctx context.Context, user string, id uuid.UUID, req ItemRequest) (ItemResponse, error)
	DeleteItem(ctx context.Context, user string, id uuid.UUID) error
	Restock(ctx context.Context, user string, id uuid.UUID, req RestockRequest) (ItemResponse, error)
	RecordUsage(ctx context.Context, user string, req UsageRequest) (model.UsageRecord, error)
	ListUsage(ctx context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error)
	DeleteUsage(ctx context.Context, user string, id uuid.UUID) error
	ListMovements(ctx context.Context, itemID uuid.UUID) ([]model.StockMovement, error)
}

type inventoryService struct {
	itemRepo     repository.ItemRepository
	usageRepo    repository.UsageRepository
	movementRepo repository.MovementRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	cache        cache.Cache
	metrics      *metrics.Metrics
	notifier     Notifier
	now          func() time.Time
}

func NewInventoryService(
	itemRepo repository.ItemRepository,
	usageRepo repository.UsageRepository,
	movementRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	c cache.Cache,
	m *metrics.Metrics,
	notifier Notifier,
) InventoryService {
	return &inventoryService{
		itemRepo:     itemRepo,
		usageRepo:    usageRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		cache:        c,
		metrics:      m,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *inventoryService) ListItems(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	if filter.Category != "" && !model.IsValidCategory(filter.Category) {
		return nil, 0, validationError("unknown category %q", filter.Category)
	}
	var status forecast.Status
	if filter.Status != "" {
		parsed, ok := parseStatus(filter.Status)
		if !ok {
			return nil, 0, validationError("unknown status %q", filter.Status)
		}
		status = parsed
	}

	items, err := s.itemRepo.List(ctx, repository.ItemFilter{Search: filter.Search, Category: filter.Category})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	matched := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		res := toItemResponse(item)
		if status != "" && res.Status != status {
			continue
		}
		matched = append(matched, res)
	}

	p := pagination.Normalize(filter.Page, filter.Limit)
	start, end := p.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func parseStatus(v string) (forecast.Status, bool) {
	for _, st := range []forecast.Status{forecast.StatusHealthy, forecast.StatusLow, forecast.StatusOutOfStock} {
		if strings.EqualFold(v, string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return ItemResponse{}, notFoundOr(err, "item")
	}
	return toItemResponse(*item), nil
}

func (s *inventoryService) CreateItem(ctx context.Context, user string, req ItemRequest) (ItemResponse, error) {
	if err := req.validate(); err != nil {
		return ItemResponse{}, err
	}

	var item model.Item
	req.apply(&item)

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Create(txCtx, &item); err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		return s.audit(txCtx, user, model.ActionAdd,
			fmt.Sprintf("Added %s (%s) with %d in stock", item.Name, item.Category, item.CurrentStock))
	})
	if err != nil {
		return ItemResponse{}, err
	}

	s.invalidate(ctx)
	return toItemResponse(item), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, user string, id uuid.UUID, req ItemRequest) (ItemResponse, error) {
	if err := req.validate(); err != nil {
		return ItemResponse{}, err
	}

	var updated model.Item
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return notFoundOr(err, "item")
		}
		previousStock := item.CurrentStock
		req.apply(item)

		if err := s.itemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		// Manual stock corrections still land in the ledger
		if delta := item.CurrentStock - previousStock; delta != 0 {
			movementType := model.MovementIn
			if delta < 0 {
				movementType = model.MovementOut
				delta = -delta
			}
			if err := s.movementRepo.Create(txCtx, &model.StockMovement{
				ItemID:     item.ID,
				Type:       movementType,
				Reason:     model.ReasonAdjustment,
				Quantity:   delta,
				StockAfter: item.CurrentStock,
			}); err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}
		}

		updated = *item
		return s.audit(txCtx, user, model.ActionEdit, fmt.Sprintf("Edited %s", item.Name))
	})
	if err != nil {
		return ItemResponse{}, err
	}

	s.invalidate(ctx)
	return toItemResponse(updated), nil
}

// DeleteItem removes the item only. Its usage records stay behind and resolve
// to "Unknown" in usage rankings.
func (s *inventoryService) DeleteItem(ctx context.Context, user string, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "item")
		}
		if err := s.itemRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return s.audit(txCtx, user, model.ActionDelete, fmt.Sprintf("Deleted %s", item.Name))
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *inventoryService) Restock(ctx context.Context, user string, id uuid.UUID, req RestockRequest) (ItemResponse, error) {
	if req.Quantity < 1 {
		return ItemResponse{}, validationError("quantity must be at least 1")
	}

	var restocked model.Item
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return notFoundOr(err, "item")
		}

		item.CurrentStock += req.Quantity
		if err := s.itemRepo.UpdateStock(txCtx, item.ID, item.CurrentStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := s.movementRepo.Create(txCtx, &model.StockMovement{
			ItemID:     item.ID,
			Type:       model.MovementIn,
			Reason:     model.ReasonRestock,
			Quantity:   req.Quantity,
			StockAfter: item.CurrentStock,
		}); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		restocked = *item
		return s.audit(txCtx, user, model.ActionRestock,
			fmt.Sprintf("Restocked %s: +%d (now %d)", item.Name, req.Quantity, item.CurrentStock))
	})
	if err != nil {
		return ItemResponse{}, err
	}

	s.metrics.ObserveRestock(req.Quantity)
	s.invalidate(ctx)
	return toItemResponse(restocked), nil
}

// RecordUsage stores the record with a snapshot of the item's name and
// category and deducts stock, clamping at zero.
func (s *inventoryService) RecordUsage(ctx context.Context, user string, req UsageRequest) (model.UsageRecord, error) {
	if req.Quantity < 1 {
		return model.UsageRecord{}, validationError("quantity must be at least 1")
	}
	date, err := s.parseUsageDate(req.Date)
	if err != nil {
		return model.UsageRecord{}, err
	}

	var (
		record model.UsageRecord
		alert  *StockAlert
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.FindByIDForUpdate(txCtx, req.ItemID)
		if err != nil {
			return notFoundOr(err, "item")
		}
		before := forecast.ClassifyStatus(*item)

		item.CurrentStock -= req.Quantity
		if item.CurrentStock < 0 {
			item.CurrentStock = 0
		}
		if err := s.itemRepo.UpdateStock(txCtx, item.ID, item.CurrentStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		record = model.UsageRecord{
			ItemID:   item.ID,
			ItemName: item.Name,
			Category: item.Category,
			Quantity: req.Quantity,
			Date:     date,
			Notes:    req.Notes,
		}
		if err := s.usageRepo.Create(txCtx, &record); err != nil {
			return fmt.Errorf("failed to record usage: %w", err)
		}

		if err := s.movementRepo.Create(txCtx, &model.StockMovement{
			ItemID:     item.ID,
			UsageID:    &record.ID,
			Type:       model.MovementOut,
			Reason:     model.ReasonUsage,
			Quantity:   req.Quantity,
			StockAfter: item.CurrentStock,
		}); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		if after := forecast.ClassifyStatus(*item); after.Worse(before) {
			alert = &StockAlert{
				ItemID:            item.ID,
				Name:              item.Name,
				PreviousStatus:    before,
				Status:            after,
				CurrentStock:      item.CurrentStock,
				DaysUntilStockout: forecast.DaysUntilStockout(*item),
			}
		}

		return s.audit(txCtx, user, model.ActionUsage,
			fmt.Sprintf("Used %d x %s (%d left)", req.Quantity, item.Name, item.CurrentStock))
	})
	if err != nil {
		return model.UsageRecord{}, err
	}

	s.metrics.ObserveUsage(record.Category, record.Quantity)
	s.invalidate(ctx)
	if alert != nil && s.notifier != nil {
		s.notifier.Publish(EventStockAlert, alert)
	}
	return record, nil
}

func (s *inventoryService) parseUsageDate(v string) (time.Time, error) {
	now := s.now()
	if v == "" {
		return now, nil
	}
	if d, err := time.ParseInLocation(usageDateLayout, v, now.Location()); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, v); err == nil {
		return d, nil
	}
	return time.Time{}, validationError("date must be YYYY-MM-DD or RFC 3339, got %q", v)
}

func (s *inventoryService) ListUsage(ctx context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error) {
	p := pagination.Normalize(page, limit)
	records, total, err := s.usageRepo.List(ctx, itemID, p.Page, p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list usage: %w", err)
	}
	return records, total, nil
}

// DeleteUsage removes a usage record and gives its quantity back to the item
// when the item still exists.
func (s *inventoryService) DeleteUsage(ctx context.Context, user string, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := s.usageRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "usage record")
		}
		if err := s.usageRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete usage record: %w", err)
		}

		item, err := s.itemRepo.FindByIDForUpdate(txCtx, record.ItemID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return s.audit(txCtx, user, model.ActionDelete,
				fmt.Sprintf("Deleted usage record of %d x %s (item no longer exists)", record.Quantity, record.ItemName))
		case err != nil:
			return fmt.Errorf("failed to load item: %w", err)
		}

		item.CurrentStock += record.Quantity
		if err := s.itemRepo.UpdateStock(txCtx, item.ID, item.CurrentStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := s.movementRepo.Create(txCtx, &model.StockMovement{
			ItemID:     item.ID,
			UsageID:    &record.ID,
			Type:       model.MovementIn,
			Reason:     model.ReasonUsageReverted,
			Quantity:   record.Quantity,
			StockAfter: item.CurrentStock,
		}); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		return s.audit(txCtx, user, model.ActionDelete,
			fmt.Sprintf("Deleted usage record of %d x %s, restored stock to %d", record.Quantity, item.Name, item.CurrentStock))
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *inventoryService) ListMovements(ctx context.Context, itemID uuid.UUID) ([]model.StockMovement, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, notFoundOr(err, "item")
	}
	movements, err := s.movementRepo.ListByItem(ctx, itemID, movementHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

func (s *inventoryService) audit(ctx context.Context, user, action, details string) error {
	if err := s.auditRepo.Log(ctx, &model.AuditLog{Action: action, Details: details, User: actor(user)}); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *inventoryService) invalidate(ctx context.Context) {
	invalidateDashboard(ctx, s.cache)
}

// invalidateDashboard drops memoized dashboard views after a committed write.
// A failure only delays freshness until the entries expire.
func invalidateDashboard(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx, dashboardCachePrefix); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}
