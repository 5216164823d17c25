package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord captures one consumption of stock. ItemName and Category are
// snapshots taken when the record was created and survive item deletion.
type UsageRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string    `gorm:"type:varchar(255)" json:"item_name"`
	Category  string    `gorm:"type:varchar(30)" json:"category"`
	Quantity  int       `gorm:"type:int;not null" json:"quantity"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
