package main

import (
	"fmt"
	"strings"

	"stocktracker/internal/forecast"
	"stocktracker/internal/service"

	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	priorityStyles = map[forecast.Priority]lipgloss.Style{
		forecast.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff453a")).Bold(true),
		forecast.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f0a")),
		forecast.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#30d158")),
	}

	cardStyles = map[string]lipgloss.Style{
		forecast.TypeWarning: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#ff453a")).Padding(0, 1),
		forecast.TypeInfo:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#0a84ff")).Padding(0, 1),
		forecast.TypeSuccess: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#30d158")).Padding(0, 1),
	}
)

func renderReport(d service.Dashboard, rows []forecast.Row, orders []forecast.OrderRequest) string {
	sections := []string{
		titleStyle.Render("Inventory report"),
		renderTotals(d.Totals),
		renderRecommendations(d.Recommendations),
		renderForecast(rows),
		renderOrders(orders),
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderTotals(t forecast.Totals) string {
	return fmt.Sprintf("%d items, %d low, %d out of stock, %.1f units/day",
		t.TotalItems, t.LowStock, t.OutOfStock, t.DailyUsageSum)
}

func renderRecommendations(recs []forecast.Recommendation) string {
	if len(recs) == 0 {
		return mutedStyle.Render("No recommendations")
	}
	cards := make([]string, 0, len(recs))
	for _, r := range recs {
		style, ok := cardStyles[r.Type]
		if !ok {
			style = cardStyles[forecast.TypeInfo]
		}
		body := lipgloss.NewStyle().Bold(true).Render(r.Title) + "\n" + r.Text
		if r.Action != nil {
			body += "\n" + mutedStyle.Render("→ "+r.Action.Label)
		}
		cards = append(cards, style.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderForecast(rows []forecast.Row) string {
	header := []string{"Item", "Category", "Stock", "Reorder", "Daily", "Days", "Priority", "Order by"}
	cells := make([][]string, 0, len(rows))
	priorities := make([]forecast.Priority, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Item.Name,
			r.Item.Category,
			fmt.Sprint(r.Item.CurrentStock),
			fmt.Sprint(r.Item.ReorderLevel),
			fmt.Sprintf("%.2f", r.Item.DailyUsage),
			r.DaysUntilStockout.String(),
			string(r.Priority),
			r.SuggestedOrderLabel(),
		})
		priorities = append(priorities, r.Priority)
	}
	return renderTable("Forecast", header, cells, priorities)
}

func renderOrders(orders []forecast.OrderRequest) string {
	header := []string{"Item", "Supplier", "Qty", "Unit", "Cost", "Priority", "Order by"}
	cells := make([][]string, 0, len(orders))
	priorities := make([]forecast.Priority, 0, len(orders))
	for _, o := range orders {
		supplier := o.SupplierName
		if supplier == "" {
			supplier = "-"
		}
		orderBy := "N/A"
		if o.OrderBy != nil {
			orderBy = o.OrderBy.Format("2006-01-02")
		}
		cells = append(cells, []string{
			o.ItemName,
			supplier,
			fmt.Sprint(o.Quantity),
			o.UnitPrice.StringFixed(2),
			o.EstimatedCost.StringFixed(2),
			string(o.Priority),
			orderBy,
		})
		priorities = append(priorities, o.Priority)
	}
	return renderTable("Suggested orders", header, cells, priorities)
}

// renderTable pads every column to its widest cell. The priority column is
// located by header name and colored per row.
func renderTable(title string, header []string, rows [][]string, priorities []forecast.Priority) string {
	if len(rows) == 0 {
		return headerStyle.Render(title) + "\n" + mutedStyle.Render("Nothing to show")
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	priorityCol := -1
	for i, h := range header {
		if h == "Priority" {
			priorityCol = i
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(renderRow(header, widths, func(int) lipgloss.Style { return lipgloss.NewStyle().Bold(true) }))
	for r, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, widths, func(col int) lipgloss.Style {
			if col == priorityCol {
				return priorityStyles[priorities[r]]
			}
			return lipgloss.NewStyle()
		}))
	}
	return b.String()
}

func renderRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = style(i).Width(widths[i] + 2).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
