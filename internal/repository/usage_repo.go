package repository

import (
	"context"

	"stocktracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageRepository interface {
	Create(ctx context.Context, record *model.UsageRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UsageRecord, error)
	List(ctx context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error)
	ListAll(ctx context.Context) ([]model.UsageRecord, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) Create(ctx context.Context, record *model.UsageRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *usageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.UsageRecord{}).Error
}

func (r *usageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UsageRecord, error) {
	var record model.UsageRecord
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *usageRepository) List(ctx context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error) {
	var records []model.UsageRecord
	var total int64

	db := GetDB(ctx, r.db).Model(&model.UsageRecord{})
	if itemID != nil {
		db = db.Where("item_id = ?", *itemID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("date desc, created_at desc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *usageRepository) ListAll(ctx context.Context) ([]model.UsageRecord, error) {
	var records []model.UsageRecord
	if err := GetDB(ctx, r.db).Order("date asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
