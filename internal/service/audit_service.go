package service

import (
	"context"
	"fmt"

	"stocktracker/internal/model"
	"stocktracker/internal/repository"
	"stocktracker/pkg/pagination"
)

var auditActions = map[string]bool{
	model.ActionAdd:     true,
	model.ActionEdit:    true,
	model.ActionDelete:  true,
	model.ActionUsage:   true,
	model.ActionRestock: true,
	model.ActionSystem:  true,
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error)
	Record(ctx context.Context, action, details, user string) error
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs returns the retained trail newest first, optionally narrowed to one action
func (s *auditService) GetAuditLogs(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	if action != "" && !auditActions[action] {
		return nil, 0, validationError("unknown audit action %q", action)
	}
	p := pagination.Normalize(page, limit)
	logs, total, err := s.auditRepo.List(ctx, action, p.Page, p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, total, nil
}

func (s *auditService) Record(ctx context.Context, action, details, user string) error {
	if !auditActions[action] {
		return validationError("unknown audit action %q", action)
	}
	if err := s.auditRepo.Log(ctx, &model.AuditLog{Action: action, Details: details, User: actor(user)}); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
