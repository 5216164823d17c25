package repository

import (
	"context"

	"stocktracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemFilter narrows item listings. Empty fields match everything.
type ItemFilter struct {
	Search   string
	Category string
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	ListAll(ctx context.Context) ([]model.Item, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Item{}).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns every matching item, name ordered. Pagination happens in the
// service because the status filter depends on derived state.
func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	var items []model.Item

	db := GetDB(ctx, r.db).Model(&model.Item{})
	if filter.Search != "" {
		db = db.Where("name ILIKE ? OR sku ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}

	if err := db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListAll(ctx context.Context) ([]model.Item, error) {
	return r.List(ctx, ItemFilter{})
}

func (r *itemRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	return GetDB(ctx, r.db).Model(&model.Item{}).Where("id = ?", id).Update("current_stock", stock).Error
}
