package handler

import (
	"net/http"

	"stocktracker/internal/service"
	"stocktracker/pkg/pagination"
	"stocktracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsageHandler struct {
	inventoryService service.InventoryService
}

func NewUsageHandler(inventoryService service.InventoryService) *UsageHandler {
	return &UsageHandler{inventoryService: inventoryService}
}

func (h *UsageHandler) RegisterRoutes(router *gin.RouterGroup) {
	usage := router.Group("/api/usage")
	{
		usage.GET("", h.ListUsage)
		usage.POST("", h.RecordUsage)
		usage.DELETE("/:id", h.DeleteUsage)
	}
}

// ListUsage godoc
// @Summary      List usage records
// @Tags         usage
// @Produce      json
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 20)"
// @Param        item_id  query     string  false  "Only records of this item"
// @Success      200      {object}  response.Response{data=response.Page{items=[]model.UsageRecord}}
// @Failure      400      {object}  response.Response
// @Router       /api/usage [get]
func (h *UsageHandler) ListUsage(c *gin.Context) {
	p := pagination.Parse(c)

	var itemID *uuid.UUID
	if raw := c.Query("item_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid item_id: "+raw))
			return
		}
		itemID = &parsed
	}

	records, total, err := h.inventoryService.ListUsage(c.Request.Context(), itemID, p.Page, p.Limit)
	if err != nil {
		respondError(c, "Failed to retrieve usage records", err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, records, total, p.Page, p.Limit))
}

// RecordUsage deducts consumed stock from an item
// @Summary      Record usage
// @Description  Stock is clamped at zero; the record keeps the requested quantity
// @Tags         usage
// @Accept       json
// @Produce      json
// @Param        X-User   header    string                false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.UsageRequest  true   "Usage"
// @Success      201      {object}  response.Response{data=model.UsageRecord}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/usage [post]
func (h *UsageHandler) RecordUsage(c *gin.Context) {
	var req service.UsageRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.inventoryService.RecordUsage(c.Request.Context(), actingUser(c), req)
	if err != nil {
		respondError(c, "Failed to record usage", err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// DeleteUsage removes a usage record and restores its quantity to the item
// @Summary      Delete usage record
// @Tags         usage
// @Produce      json
// @Param        id      path      string  true   "Usage record ID"
// @Param        X-User  header    string  false  "Acting user recorded in the audit trail"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /api/usage/{id} [delete]
func (h *UsageHandler) DeleteUsage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteUsage(c.Request.Context(), actingUser(c), id); err != nil {
		respondError(c, "Failed to delete usage record", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
