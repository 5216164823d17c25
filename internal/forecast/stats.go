package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"stocktracker/internal/model"
)

const (
	DefaultTopUsed     = 5
	DefaultTrendWindow = 7
	UnknownItemName    = "Unknown"
	dayKeyLayout       = "2006-01-02"
)

// Totals are the headline dashboard counters
type Totals struct {
	TotalItems    int     `json:"total_items"`
	LowStock      int     `json:"low_stock"`
	OutOfStock    int     `json:"out_of_stock"`
	DailyUsageSum float64 `json:"daily_usage_sum"`
}

// ComputeTotals counts items per status and sums estimated daily usage.
func ComputeTotals(items []model.Item) Totals {
	t := Totals{TotalItems: len(items)}
	for _, item := range items {
		switch ClassifyStatus(item) {
		case StatusLow:
			t.LowStock++
		case StatusOutOfStock:
			t.OutOfStock++
		}
		t.DailyUsageSum += item.DailyUsage
	}
	return t
}

// ItemUsage is a consumption ranking entry
type ItemUsage struct {
	ItemID        uuid.UUID `json:"item_id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
}

// TopUsedItems sums usage per item and returns the n largest totals. Names
// come from the current items; records of deleted items resolve to "Unknown".
// Equal totals keep the order in which the item first appears in usage.
func TopUsedItems(usage []model.UsageRecord, items []model.Item, n int) []ItemUsage {
	if n <= 0 {
		return []ItemUsage{}
	}
	byID := indexItems(items)

	ranked := make([]ItemUsage, 0)
	pos := make(map[uuid.UUID]int)
	for _, rec := range usage {
		i, ok := pos[rec.ItemID]
		if !ok {
			name := UnknownItemName
			if item, found := byID[rec.ItemID]; found {
				name = item.Name
			}
			i = len(ranked)
			pos[rec.ItemID] = i
			ranked = append(ranked, ItemUsage{ItemID: rec.ItemID, Name: name})
		}
		ranked[i].TotalQuantity += rec.Quantity
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalQuantity > ranked[j].TotalQuantity
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DayTotal is one calendar-day bucket of the usage trend
type DayTotal struct {
	Day   string `json:"day"` // YYYY-MM-DD in the location of today
	Total int    `json:"total"`
}

// UsageTrend buckets usage quantities into the windowDays calendar days
// ending today, oldest first. Days without records are 0.
func UsageTrend(usage []model.UsageRecord, today time.Time, windowDays int) []DayTotal {
	if windowDays <= 0 {
		return []DayTotal{}
	}
	loc := today.Location()
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -(windowDays - 1))

	trend := make([]DayTotal, windowDays)
	index := make(map[string]int, windowDays)
	for i := range trend {
		key := start.AddDate(0, 0, i).Format(dayKeyLayout)
		trend[i] = DayTotal{Day: key}
		index[key] = i
	}

	for _, rec := range usage {
		if i, ok := index[rec.Date.In(loc).Format(dayKeyLayout)]; ok {
			trend[i].Total += rec.Quantity
		}
	}
	return trend
}

// TrendSummary highlights the busiest and quietest days of a trend
type TrendSummary struct {
	Peak    DayTotal `json:"peak"`
	Low     DayTotal `json:"low"` // smallest non-zero day
	Average float64  `json:"average"`
}

// SummarizeTrend reports peak, lowest non-zero day and daily average. Ties go
// to the earliest day. It returns false when every bucket is zero.
func SummarizeTrend(trend []DayTotal) (TrendSummary, bool) {
	var (
		summary TrendSummary
		sum     int
		found   bool
	)
	for _, day := range trend {
		sum += day.Total
		if day.Total == 0 {
			continue
		}
		if !found || day.Total > summary.Peak.Total {
			summary.Peak = day
		}
		if !found || day.Total < summary.Low.Total {
			summary.Low = day
		}
		found = true
	}
	if !found {
		return TrendSummary{}, false
	}
	summary.Average = float64(sum) / float64(len(trend))
	return summary, true
}
