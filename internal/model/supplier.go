package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinSupplierRating     = 1
	MaxSupplierRating     = 5
	DefaultSupplierRating = 3

	// MaxSupplierCategoryLength bounds the free-text supplier category
	MaxSupplierCategoryLength = 100
)

// Supplier represents a vendor the department restocks from
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Contact   string    `gorm:"type:varchar(255)" json:"contact"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	Address   string    `gorm:"type:text" json:"address"`
	Rating    int       `gorm:"type:int;not null;default:3" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
