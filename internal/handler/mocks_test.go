package handler

import (
	"context"

	"stocktracker/internal/forecast"
	"stocktracker/internal/model"
	"stocktracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListItems(ctx context.Context, filter service.ItemListFilter) ([]service.ItemResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]service.ItemResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryService) GetItem(ctx context.Context, id uuid.UUID) (service.ItemResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) CreateItem(ctx context.Context, user string, req service.ItemRequest) (service.ItemResponse, error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(service.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) UpdateItem(ctx context.Context, user string, id uuid.UUID, req service.ItemRequest) (service.ItemResponse, error) {
	args := m.Called(ctx, user, id, req)
	return args.Get(0).(service.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) DeleteItem(ctx context.Context, user string, id uuid.UUID) error {
	return m.Called(ctx, user, id).Error(0)
}

func (m *MockInventoryService) Restock(ctx context.Context, user string, id uuid.UUID, req service.RestockRequest) (service.ItemResponse, error) {
	args := m.Called(ctx, user, id, req)
	return args.Get(0).(service.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) RecordUsage(ctx context.Context, user string, req service.UsageRequest) (model.UsageRecord, error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(model.UsageRecord), args.Error(1)
}

func (m *MockInventoryService) ListUsage(ctx context.Context, itemID *uuid.UUID, page, limit int) ([]model.UsageRecord, int64, error) {
	args := m.Called(ctx, itemID, page, limit)
	return args.Get(0).([]model.UsageRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryService) DeleteUsage(ctx context.Context, user string, id uuid.UUID) error {
	return m.Called(ctx, user, id).Error(0)
}

func (m *MockInventoryService) ListMovements(ctx context.Context, itemID uuid.UUID) ([]model.StockMovement, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]model.StockMovement), args.Error(1)
}

type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) GetSuppliers(ctx context.Context, search string, page, limit int) ([]model.Supplier, int64, error) {
	args := m.Called(ctx, search, page, limit)
	return args.Get(0).([]model.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierService) CreateSupplier(ctx context.Context, user string, req service.SupplierRequest) (model.Supplier, error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *MockSupplierService) UpdateSupplier(ctx context.Context, user string, id uuid.UUID, req service.SupplierRequest) (model.Supplier, error) {
	args := m.Called(ctx, user, id, req)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *MockSupplierService) DeleteSupplier(ctx context.Context, user string, id uuid.UUID) error {
	return m.Called(ctx, user, id).Error(0)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetAuditLogs(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, action, page, limit)
	return args.Get(0).([]model.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditService) Record(ctx context.Context, action, details, user string) error {
	return m.Called(ctx, action, details, user).Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context) (service.Dashboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.Dashboard), args.Error(1)
}

func (m *MockDashboardService) GetForecast(ctx context.Context) ([]forecast.Row, error) {
	args := m.Called(ctx)
	return args.Get(0).([]forecast.Row), args.Error(1)
}

func (m *MockDashboardService) GetOrderRequests(ctx context.Context) ([]forecast.OrderRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]forecast.OrderRequest), args.Error(1)
}

func (m *MockDashboardService) GetForecastReport(ctx context.Context) (service.ForecastReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.ForecastReport), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportForecast(ctx context.Context) (service.Export, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.Export), args.Error(1)
}
