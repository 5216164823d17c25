package repository

import (
	"context"

	"stocktracker/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db       *gorm.DB
	capacity int
}

// NewAuditRepository keeps at most capacity entries, dropping the oldest on each write.
func NewAuditRepository(db *gorm.DB, capacity int) AuditRepository {
	return &auditRepository{db: db, capacity: capacity}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	db := GetDB(ctx, r.db)
	if err := db.Create(entry).Error; err != nil {
		return err
	}
	if r.capacity <= 0 {
		return nil
	}

	keep := db.Model(&model.AuditLog{}).Select("id").Order("created_at desc").Limit(r.capacity)
	return db.Where("id NOT IN (?)", keep).Delete(&model.AuditLog{}).Error
}

func (r *auditRepository) List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if action != "" {
		db = db.Where("action = ?", action)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
