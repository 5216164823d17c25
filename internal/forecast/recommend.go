package forecast

import (
	"fmt"
	"sort"
	"strings"
)

// Recommendation card types
const (
	TypeWarning = "warning"
	TypeInfo    = "info"
	TypeSuccess = "success"
)

const (
	MaxRecommendations   = 3
	HighConsumptionDaily = 5.0
	ExcessStockDays      = 90
	ExcessStockMultiple  = 3
	ActionReorder        = "reorder"
)

// Recommendation is one actionable dashboard card
type Recommendation struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Action   *Action `json:"action,omitempty"`
	Priority int     `json:"priority"`
}

// Action binds a card to a follow-up the dashboard can trigger
type Action struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// Rule is a recommendation descriptor. Evaluate sees the cards matched by the
// rules before it; the Priority of the descriptor is stamped onto its card.
type Rule struct {
	Name     string
	Priority int
	Evaluate func(s Snapshot, matched []Recommendation) (Recommendation, bool)
}

// DefaultRules is the dashboard rule set in evaluation order.
var DefaultRules = []Rule{
	{Name: "out_of_stock", Priority: 1, Evaluate: outOfStockRule},
	{Name: "low_stock_week", Priority: 2, Evaluate: lowStockWeekRule},
	{Name: "high_consumption", Priority: 3, Evaluate: highConsumptionRule},
	{Name: "excess_stock", Priority: 4, Evaluate: excessStockRule},
	{Name: "all_healthy", Priority: 5, Evaluate: allHealthyRule},
	{Name: "add_suppliers", Priority: 6, Evaluate: addSuppliersRule},
}

// GenerateRecommendations runs DefaultRules and keeps the three most urgent cards.
func GenerateRecommendations(s Snapshot) []Recommendation {
	return Recommend(s, DefaultRules, MaxRecommendations)
}

// Recommend evaluates every rule in order, sorts the matches by ascending
// priority (stable) and truncates to limit.
func Recommend(s Snapshot, rules []Rule, limit int) []Recommendation {
	matched := make([]Recommendation, 0, len(rules))
	for _, rule := range rules {
		rec, ok := rule.Evaluate(s, matched)
		if !ok {
			continue
		}
		rec.Priority = rule.Priority
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority < matched[j].Priority
	})
	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func outOfStockRule(s Snapshot, _ []Recommendation) (Recommendation, bool) {
	var names []string
	for _, item := range s.Items {
		if ClassifyStatus(item) == StatusOutOfStock {
			names = append(names, item.Name)
		}
	}
	if len(names) == 0 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type:   TypeWarning,
		Title:  "Restock out-of-stock items",
		Text:   fmt.Sprintf("%d item(s) are out of stock: %s", len(names), nameList(names, 3)),
		Action: &Action{Kind: ActionReorder, Label: "Reorder now"},
	}, true
}

func lowStockWeekRule(s Snapshot, _ []Recommendation) (Recommendation, bool) {
	var names []string
	for _, item := range s.Items {
		if ClassifyStatus(item) == StatusOutOfStock {
			continue
		}
		if DaysUntilStockout(item).Within(HighPriorityDays) {
			names = append(names, item.Name)
		}
	}
	if len(names) == 0 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type:  TypeWarning,
		Title: "Items running out this week",
		Text:  fmt.Sprintf("%s will run out within %d days at the current usage rate", nameList(names, 2), HighPriorityDays),
	}, true
}

func highConsumptionRule(s Snapshot, _ []Recommendation) (Recommendation, bool) {
	for _, item := range s.Items {
		if item.DailyUsage > HighConsumptionDaily {
			return Recommendation{
				Type:  TypeInfo,
				Title: "High consumption items",
				Text:  "Some items are used heavily every day. Consider bulk ordering to reduce cost and restocking effort.",
			}, true
		}
	}
	return Recommendation{}, false
}

func excessStockRule(s Snapshot, _ []Recommendation) (Recommendation, bool) {
	for _, item := range s.Items {
		if DaysUntilStockout(item).Beyond(ExcessStockDays) && item.CurrentStock > item.ReorderLevel*ExcessStockMultiple {
			return Recommendation{
				Type:  TypeInfo,
				Title: "Optimize stock levels",
				Text:  fmt.Sprintf("Some items hold more than %d days of stock. Consider reducing reorder quantities.", ExcessStockDays),
			}, true
		}
	}
	return Recommendation{}, false
}

// allHealthyRule only fires when no rule ranked before it produced a card.
func allHealthyRule(s Snapshot, matched []Recommendation) (Recommendation, bool) {
	if len(s.Items) == 0 {
		return Recommendation{}, false
	}
	for _, rec := range matched {
		if rec.Priority < 5 {
			return Recommendation{}, false
		}
	}
	return Recommendation{
		Type:  TypeSuccess,
		Title: "Inventory is healthy",
		Text:  "All items are well stocked. Keep recording usage to keep forecasts accurate.",
	}, true
}

func addSuppliersRule(s Snapshot, _ []Recommendation) (Recommendation, bool) {
	if len(s.Items) == 0 || len(s.Suppliers) > 0 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type:  TypeInfo,
		Title: "Add suppliers",
		Text:  "No suppliers are registered. Add suppliers to link items and speed up restocking.",
	}, true
}

// nameList joins up to max names and appends an ellipsis when more exist.
func nameList(names []string, max int) string {
	if len(names) <= max {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:max], ", ") + "..."
}
