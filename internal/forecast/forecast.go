package forecast

import (
	"sort"
	"time"

	"stocktracker/internal/model"
)

// Priority is the reorder urgency of a forecast row
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	HighPriorityDays     = 7
	MediumPriorityDays   = 14
	DefaultLeadTimeDays  = 7
	suggestedDateLayout  = "2006-01-02"
	notApplicableDisplay = "N/A"
)

// Options configures forecast building. Today anchors suggested order dates.
type Options struct {
	Today        time.Time
	LeadTimeDays int
}

// DefaultOptions uses the standard 7-day supplier lead time.
func DefaultOptions(today time.Time) Options {
	return Options{Today: today, LeadTimeDays: DefaultLeadTimeDays}
}

// Row is one line of the reorder forecast table
type Row struct {
	Item               model.Item `json:"item"`
	Status             Status     `json:"status"`
	DaysUntilStockout  Stockout   `json:"days_until_stockout"`
	Priority           Priority   `json:"priority"`
	SuggestedOrderDate *time.Time `json:"suggested_order_date"` // nil when the item never runs out
}

// SuggestedOrderLabel formats the suggested order date, or "N/A".
func (r Row) SuggestedOrderLabel() string {
	if r.SuggestedOrderDate == nil {
		return notApplicableDisplay
	}
	return r.SuggestedOrderDate.Format(suggestedDateLayout)
}

// PriorityFor buckets a projection: <=7 days high, <=14 medium, otherwise low.
func PriorityFor(s Stockout) Priority {
	switch {
	case s.Within(HighPriorityDays):
		return PriorityHigh
	case s.Within(MediumPriorityDays):
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// SuggestedOrderDate is today plus the slack left after the lead time, never
// earlier than today. It returns nil for NeverRunsOut.
func SuggestedOrderDate(s Stockout, opts Options) *time.Time {
	days, ok := s.Days()
	if !ok {
		return nil
	}
	slack := days - opts.LeadTimeDays
	if slack < 0 {
		slack = 0
	}
	y, m, d := opts.Today.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, opts.Today.Location()).AddDate(0, 0, slack)
	return &date
}

// BuildForecast returns one row per item ordered by ascending days until
// stockout. Items that never run out come last; ties keep input order.
func BuildForecast(items []model.Item, opts Options) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		stockout := DaysUntilStockout(item)
		rows = append(rows, Row{
			Item:               item,
			Status:             ClassifyStatus(item),
			DaysUntilStockout:  stockout,
			Priority:           PriorityFor(stockout),
			SuggestedOrderDate: SuggestedOrderDate(stockout, opts),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DaysUntilStockout.Less(rows[j].DaysUntilStockout)
	})
	return rows
}
