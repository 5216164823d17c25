package forecast

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocktracker/internal/model"
)

const (
	orderCoverDays       = 30
	orderReorderMultiple = 2
)

// OrderRequest is a restocking order proposed for an at-risk item
type OrderRequest struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	SKU           string          `json:"sku"`
	SupplierID    *uuid.UUID      `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"` // empty when unset or the supplier was deleted
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Priority      Priority        `json:"priority"`
	OrderBy       *time.Time      `json:"order_by"`
}

// SuggestedOrderQuantity tops stock up to the larger of twice the reorder
// level and thirty days of usage. It is always at least 1.
func SuggestedOrderQuantity(item model.Item) int {
	target := item.ReorderLevel * orderReorderMultiple
	if cover := int(math.Ceil(item.DailyUsage * orderCoverDays)); cover > target {
		target = cover
	}
	qty := target - item.CurrentStock
	if qty < 1 {
		return 1
	}
	return qty
}

// BuildOrderRequests emits an order for every high and medium priority row,
// keeping forecast order so the most urgent order comes first.
func BuildOrderRequests(rows []Row, suppliers []model.Supplier) []OrderRequest {
	byID := indexSuppliers(suppliers)

	orders := make([]OrderRequest, 0)
	for _, row := range rows {
		if row.Priority == PriorityLow {
			continue
		}
		item := row.Item
		qty := SuggestedOrderQuantity(item)

		var supplierName string
		if item.SupplierID != nil {
			if sup, ok := byID[*item.SupplierID]; ok {
				supplierName = sup.Name
			}
		}

		orders = append(orders, OrderRequest{
			ItemID:        item.ID,
			ItemName:      item.Name,
			SKU:           item.SKU,
			SupplierID:    item.SupplierID,
			SupplierName:  supplierName,
			Quantity:      qty,
			UnitPrice:     item.UnitPrice,
			EstimatedCost: item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
			Priority:      row.Priority,
			OrderBy:       row.SuggestedOrderDate,
		})
	}
	return orders
}
