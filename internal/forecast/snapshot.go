package forecast

import (
	"github.com/google/uuid"

	"stocktracker/internal/model"
)

// Snapshot is a caller-owned, consistent view of the three collections the
// engine reads. It is never mutated by this package.
type Snapshot struct {
	Items     []model.Item
	Usage     []model.UsageRecord
	Suppliers []model.Supplier
}

func indexItems(items []model.Item) map[uuid.UUID]model.Item {
	byID := make(map[uuid.UUID]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}

func indexSuppliers(suppliers []model.Supplier) map[uuid.UUID]model.Supplier {
	byID := make(map[uuid.UUID]model.Supplier, len(suppliers))
	for _, sup := range suppliers {
		byID[sup.ID] = sup
	}
	return byID
}
