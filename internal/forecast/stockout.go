package forecast

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"stocktracker/internal/model"
)

// maxProjectedDays bounds finite projections so tiny usage rates stay representable.
const maxProjectedDays = math.MaxInt32

// Stockout is a days-until-stockout projection: either a finite number of
// days or NeverRunsOut. The zero value is a finite projection of 0 days.
type Stockout struct {
	days  int
	never bool
}

// NeverRunsOut is the projection for items with no recorded consumption.
var NeverRunsOut = Stockout{never: true}

// FiniteDays returns a finite projection of d days.
func FiniteDays(d int) Stockout {
	return Stockout{days: d}
}

// DaysUntilStockout projects a linear burn-down of the current stock at the
// item's daily usage rate, floored to whole days.
func DaysUntilStockout(item model.Item) Stockout {
	if item.DailyUsage <= 0 {
		return NeverRunsOut
	}
	days := math.Floor(float64(item.CurrentStock) / item.DailyUsage)
	if days > maxProjectedDays {
		days = maxProjectedDays
	}
	return FiniteDays(int(days))
}

// Days returns the projected days and true, or 0 and false for NeverRunsOut.
func (s Stockout) Days() (int, bool) {
	if s.never {
		return 0, false
	}
	return s.days, true
}

// Never reports whether the item is projected to never run out.
func (s Stockout) Never() bool {
	return s.never
}

// Within reports whether the projection is finite and at most limit days.
func (s Stockout) Within(limit int) bool {
	return !s.never && s.days <= limit
}

// Beyond reports whether the projection is finite and more than limit days.
func (s Stockout) Beyond(limit int) bool {
	return !s.never && s.days > limit
}

// Less orders projections ascending with NeverRunsOut after every finite value.
func (s Stockout) Less(other Stockout) bool {
	if s.never {
		return false
	}
	if other.never {
		return true
	}
	return s.days < other.days
}

func (s Stockout) String() string {
	if s.never {
		return "∞"
	}
	return strconv.Itoa(s.days)
}

// MarshalJSON encodes finite projections as a number and NeverRunsOut as null.
func (s Stockout) MarshalJSON() ([]byte, error) {
	if s.never {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(s.days), 10), nil
}

func (s *Stockout) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = NeverRunsOut
		return nil
	}
	d, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil {
		return fmt.Errorf("invalid stockout days %q: %w", data, err)
	}
	*s = FiniteDays(d)
	return nil
}
