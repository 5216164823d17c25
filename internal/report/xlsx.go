// Package report renders forecast data into spreadsheets.
package report

import (
	"fmt"
	"io"

	"stocktracker/internal/forecast"

	"github.com/xuri/excelize/v2"
)

const (
	ForecastSheet = "Forecast"
	OrdersSheet   = "Orders"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultSheet = "Sheet1"
)

var (
	forecastHeader = []interface{}{
		"Item", "SKU", "Category", "Current Stock", "Reorder Level", "Daily Usage",
		"Days Until Stockout", "Status", "Priority", "Suggested Order Date",
	}
	ordersHeader = []interface{}{
		"Item", "SKU", "Supplier", "Quantity", "Unit Price", "Estimated Cost", "Priority", "Order By",
	}
)

// Workbook builds a two-sheet workbook. The caller owns the returned file and must Close it.
func Workbook(rows []forecast.Row, orders []forecast.OrderRequest) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName(defaultSheet, ForecastSheet); err != nil {
		file.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := file.NewSheet(OrdersSheet); err != nil {
		file.Close()
		return nil, fmt.Errorf("create orders sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	forecastRows := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		forecastRows = append(forecastRows, []interface{}{
			row.Item.Name,
			row.Item.SKU,
			row.Item.Category,
			row.Item.CurrentStock,
			row.Item.ReorderLevel,
			row.Item.DailyUsage,
			daysCell(row.DaysUntilStockout),
			string(row.Status),
			string(row.Priority),
			row.SuggestedOrderLabel(),
		})
	}
	if err := writeSheet(file, ForecastSheet, bold, forecastHeader, forecastRows); err != nil {
		file.Close()
		return nil, err
	}

	orderRows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		orderBy := "N/A"
		if o.OrderBy != nil {
			orderBy = o.OrderBy.Format("2006-01-02")
		}
		orderRows = append(orderRows, []interface{}{
			o.ItemName,
			o.SKU,
			o.SupplierName,
			o.Quantity,
			o.UnitPrice.InexactFloat64(),
			o.EstimatedCost.InexactFloat64(),
			string(o.Priority),
			orderBy,
		})
	}
	if err := writeSheet(file, OrdersSheet, bold, ordersHeader, orderRows); err != nil {
		file.Close()
		return nil, err
	}

	return file, nil
}

// WriteForecast streams the workbook built by Workbook to w.
func WriteForecast(w io.Writer, rows []forecast.Row, orders []forecast.OrderRequest) error {
	file, err := Workbook(rows, orders)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(file *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// daysCell keeps finite projections numeric so the sheet can sort them.
func daysCell(s forecast.Stockout) interface{} {
	if days, ok := s.Days(); ok {
		return days
	}
	return s.String()
}
