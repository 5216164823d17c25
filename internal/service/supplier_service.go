package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"stocktracker/internal/cache"
	"stocktracker/internal/model"
	"stocktracker/internal/repository"
	"stocktracker/pkg/pagination"

	"github.com/google/uuid"
)

type SupplierRequest struct {
	Name     string `json:"name" binding:"required"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Address  string `json:"address"`
	Rating   int    `json:"rating"` // 1-5, 0 means default
}

func (r *SupplierRequest) normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return validationError("name is required")
	}
	if r.Email != "" {
		addr, err := mail.ParseAddress(r.Email)
		if err != nil || addr.Address != r.Email {
			return validationError("email %q is not a valid address", r.Email)
		}
	}
	// free text, unlike item categories
	r.Category = strings.TrimSpace(r.Category)
	if utf8.RuneCountInString(r.Category) > model.MaxSupplierCategoryLength {
		return validationError("category must be at most %d characters", model.MaxSupplierCategoryLength)
	}
	if r.Rating == 0 {
		r.Rating = model.DefaultSupplierRating
	}
	if r.Rating < model.MinSupplierRating || r.Rating > model.MaxSupplierRating {
		return validationError("rating must be between %d and %d", model.MinSupplierRating, model.MaxSupplierRating)
	}
	return nil
}

func (r SupplierRequest) apply(s *model.Supplier) {
	s.Name = r.Name
	s.Contact = r.Contact
	s.Email = r.Email
	s.Phone = r.Phone
	s.Category = r.Category
	s.Address = r.Address
	s.Rating = r.Rating
}

type SupplierService interface {
	GetSuppliers(ctx context.Context, search string, page, limit int) ([]model.Supplier, int64, error)
	CreateSupplier(ctx context.Context, user string, req SupplierRequest) (model.Supplier, error)
	UpdateSupplier(ctx context.Context, user string, id uuid.UUID, req SupplierRequest) (model.Supplier, error)
	DeleteSupplier(ctx context.Context, user string, id uuid.UUID) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	cache        cache.Cache
}

func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	c cache.Cache,
) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		cache:        c,
	}
}

func (s *supplierService) GetSuppliers(ctx context.Context, search string, page, limit int) ([]model.Supplier, int64, error) {
	p := pagination.Normalize(page, limit)
	suppliers, total, err := s.supplierRepo.List(ctx, strings.TrimSpace(search), p.Page, p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, total, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, user string, req SupplierRequest) (model.Supplier, error) {
	if err := req.normalize(); err != nil {
		return model.Supplier{}, err
	}

	var supplier model.Supplier
	req.apply(&supplier)

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplierRepo.Create(txCtx, &supplier); err != nil {
			return fmt.Errorf("failed to create supplier: %w", err)
		}
		return s.audit(txCtx, user, model.ActionAdd, fmt.Sprintf("Added supplier %s", supplier.Name))
	})
	if err != nil {
		return model.Supplier{}, err
	}

	invalidateDashboard(ctx, s.cache)
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, user string, id uuid.UUID, req SupplierRequest) (model.Supplier, error) {
	if err := req.normalize(); err != nil {
		return model.Supplier{}, err
	}

	var updated model.Supplier
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		supplier, err := s.supplierRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "supplier")
		}
		req.apply(supplier)
		if err := s.supplierRepo.Update(txCtx, supplier); err != nil {
			return fmt.Errorf("failed to update supplier: %w", err)
		}
		updated = *supplier
		return s.audit(txCtx, user, model.ActionEdit, fmt.Sprintf("Edited supplier %s", supplier.Name))
	})
	if err != nil {
		return model.Supplier{}, err
	}

	invalidateDashboard(ctx, s.cache)
	return updated, nil
}

// DeleteSupplier leaves items that reference the supplier untouched.
func (s *supplierService) DeleteSupplier(ctx context.Context, user string, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		supplier, err := s.supplierRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "supplier")
		}
		if err := s.supplierRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete supplier: %w", err)
		}
		return s.audit(txCtx, user, model.ActionDelete, fmt.Sprintf("Deleted supplier %s", supplier.Name))
	})
	if err != nil {
		return err
	}

	invalidateDashboard(ctx, s.cache)
	return nil
}

func (s *supplierService) audit(ctx context.Context, user, action, details string) error {
	if err := s.auditRepo.Log(ctx, &model.AuditLog{Action: action, Details: details, User: actor(user)}); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
