package repository

import (
	"context"

	"stocktracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	Create(ctx context.Context, movement *model.StockMovement) error
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type movementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, movement *model.StockMovement) error {
	return GetDB(ctx, r.db).Create(movement).Error
}

func (r *movementRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	if err := GetDB(ctx, r.db).Where("item_id = ?", itemID).
		Order("created_at desc").Limit(limit).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
