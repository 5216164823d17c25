// Command stockreport prints the reorder forecast, dashboard recommendations
// and suggested orders straight from the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"stocktracker/internal/config"
	"stocktracker/internal/database"
	"stocktracker/internal/forecast"
	"stocktracker/internal/repository"
	"stocktracker/internal/report"
	"stocktracker/internal/service"
)

func main() {
	ordersOnly := flag.Bool("orders", false, "print only the suggested order requests")
	xlsxPath := flag.String("xlsx", "", "also write the forecast workbook to this path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	db, err := database.NewConnection(cfg.DSN(), false)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dashboard := service.NewDashboardService(
		repository.NewItemRepository(db),
		repository.NewUsageRepository(db),
		repository.NewSupplierRepository(db),
		nil, 0, nil, cfg.LeadTimeDays,
	)

	fr, err := dashboard.GetForecastReport(ctx)
	if err != nil {
		log.Fatalf("Forecast failed: %v", err)
	}
	rows, orders := fr.Rows, fr.Orders

	if *ordersOnly {
		fmt.Println(renderOrders(orders))
	} else {
		d, err := dashboard.GetDashboard(ctx)
		if err != nil {
			log.Fatalf("Dashboard failed: %v", err)
		}
		fmt.Println(renderReport(d, rows, orders))
	}

	if *xlsxPath != "" {
		if err := writeWorkbook(*xlsxPath, rows, orders); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Wrote %s", *xlsxPath)
	}
}

func writeWorkbook(path string, rows []forecast.Row, orders []forecast.OrderRequest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteForecast(f, rows, orders); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
