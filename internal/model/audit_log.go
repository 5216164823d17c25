package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionAdd     = "add"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionUsage   = "usage"
	ActionRestock = "restock"
	ActionSystem  = "system"
)

// DefaultAuditUser is recorded when a request carries no user name
const DefaultAuditUser = "System"

// AuditLog tracks Who, What, and When for inventory changes. Only the newest
// entries are retained, see repository.AuditRepository.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action    string    `gorm:"type:varchar(20);not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	User      string    `gorm:"type:varchar(255);not null;default:'System'" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
