package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category enum constants
const (
	CategoryStationery  = "stationery"
	CategoryEquipment   = "equipment"
	CategoryElectronics = "electronics"
	CategoryFurniture   = "furniture"
	CategoryOther       = "other"
)

// Categories lists every accepted item category in display order
var Categories = []string{
	CategoryStationery,
	CategoryEquipment,
	CategoryElectronics,
	CategoryFurniture,
	CategoryOther,
}

// IsValidCategory reports whether c is one of the fixed item categories
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Item represents a stocked department supply
type Item struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU          string          `gorm:"type:varchar(100);index" json:"sku"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Category     string          `gorm:"type:varchar(30);not null;index" json:"category"`
	CurrentStock int             `gorm:"type:int;default:0;not null" json:"current_stock"`
	ReorderLevel int             `gorm:"type:int;default:1;not null" json:"reorder_level"` // Low at or below this
	DailyUsage   float64         `gorm:"type:double precision;default:0;not null" json:"daily_usage"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id"` // No FK: deleting a supplier leaves items intact
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MovementType Enum Simulation
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Movement reasons
const (
	ReasonUsage         = "usage"
	ReasonRestock       = "restock"
	ReasonUsageReverted = "usage_reverted"
	ReasonAdjustment    = "adjustment"
)

// StockMovement is the per-item stock ledger written alongside every stock change
type StockMovement struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	UsageID    *uuid.UUID `gorm:"type:uuid;index" json:"usage_id"` // Set for usage and usage_reverted
	Type       string     `gorm:"type:varchar(10);not null" json:"type"`   // IN, OUT
	Reason     string     `gorm:"type:varchar(30);not null" json:"reason"` // usage, restock, usage_reverted, adjustment
	Quantity   int        `gorm:"type:int;not null" json:"quantity"`
	StockAfter int        `gorm:"type:int;not null" json:"stock_after"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
