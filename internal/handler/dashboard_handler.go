package handler

import (
	"fmt"
	"net/http"

	"stocktracker/internal/service"
	"stocktracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	reportService    service.ReportService
}

func NewDashboardHandler(dashboardService service.DashboardService, reportService service.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, reportService: reportService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", h.GetDashboard)

	forecast := router.Group("/api/forecast")
	{
		forecast.GET("", h.GetForecast)
		forecast.GET("/orders", h.GetOrderRequests)
		forecast.GET("/export", h.ExportForecast)
	}
}

// GetDashboard returns totals, recommendations, usage ranking and trend
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=service.Dashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	d, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, d))
}

// GetForecast returns every item ordered by urgency
// @Summary      Reorder forecast
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  response.Response{data=[]forecast.Row}
// @Failure      500  {object}  response.Response
// @Router       /api/forecast [get]
func (h *DashboardHandler) GetForecast(c *gin.Context) {
	rows, err := h.dashboardService.GetForecast(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to build forecast", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetOrderRequests godoc
// @Summary      Suggested order requests
// @Description  One request per high or medium priority item, most urgent first
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  response.Response{data=[]forecast.OrderRequest}
// @Failure      500  {object}  response.Response
// @Router       /api/forecast/orders [get]
func (h *DashboardHandler) GetOrderRequests(c *gin.Context) {
	orders, err := h.dashboardService.GetOrderRequests(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to build order requests", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// ExportForecast downloads the forecast as an Excel workbook
// @Summary      Export forecast
// @Tags         forecast
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  response.Response
// @Router       /api/forecast/export [get]
func (h *DashboardHandler) ExportForecast(c *gin.Context) {
	export, err := h.reportService.ExportForecast(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to export forecast", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}
