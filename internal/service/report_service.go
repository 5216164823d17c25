package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"stocktracker/internal/report"
)

// Export is a rendered file ready for download
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ReportService interface {
	ExportForecast(ctx context.Context) (Export, error)
}

type reportService struct {
	dashboard DashboardService
	now       func() time.Time
}

func NewReportService(dashboard DashboardService) ReportService {
	return &reportService{dashboard: dashboard, now: time.Now}
}

// ExportForecast renders the forecast table and order requests as xlsx
func (s *reportService) ExportForecast(ctx context.Context) (Export, error) {
	r, err := s.dashboard.GetForecastReport(ctx)
	if err != nil {
		return Export{}, err
	}

	var buf bytes.Buffer
	if err := report.WriteForecast(&buf, r.Rows, r.Orders); err != nil {
		return Export{}, fmt.Errorf("failed to render forecast export: %w", err)
	}

	return Export{
		Filename:    fmt.Sprintf("forecast-%s.xlsx", s.now().Format(usageDateLayout)),
		ContentType: report.ContentType,
		Content:     buf.Bytes(),
	}, nil
}
