// Package forecast derives stock status, stockout projections, restocking
// priorities and dashboard recommendations from an inventory snapshot.
//
// Every function in this package is pure: it reads the collections it is
// given and never touches storage, the network or package-level state, so the
// same snapshot always yields the same output.
package forecast

import "stocktracker/internal/model"

// Status is the derived stock tier of an item
type Status string

const (
	StatusHealthy    Status = "Healthy"
	StatusLow        Status = "Low"
	StatusOutOfStock Status = "OutOfStock"
)

// ClassifyStatus returns OutOfStock for an empty shelf, Low when stock is at
// or below the reorder level and Healthy otherwise. The empty check wins over
// the reorder comparison.
func ClassifyStatus(item model.Item) Status {
	switch {
	case item.CurrentStock == 0:
		return StatusOutOfStock
	case item.CurrentStock <= item.ReorderLevel:
		return StatusLow
	default:
		return StatusHealthy
	}
}

// Worse reports whether s is a more severe tier than other.
func (s Status) Worse(other Status) bool {
	return s.rank() > other.rank()
}

func (s Status) rank() int {
	switch s {
	case StatusOutOfStock:
		return 2
	case StatusLow:
		return 1
	default:
		return 0
	}
}
