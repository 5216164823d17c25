package handler

import (
	"net/http"

	"stocktracker/internal/service"
	"stocktracker/pkg/pagination"
	"stocktracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	inventoryService service.InventoryService
}

func NewItemHandler(inventoryService service.InventoryService) *ItemHandler {
	return &ItemHandler{inventoryService: inventoryService}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/restock", h.Restock)
		items.GET("/:id/movements", h.ListMovements)
	}
}

// ListItems returns items with their derived stock status
// @Summary      List items
// @Description  Lists inventory items with derived status and days until stockout
// @Tags         items
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Param        search    query     string  false  "Search by name or SKU"
// @Param        category  query     string  false  "stationery, equipment, electronics, furniture, other"
// @Param        status    query     string  false  "Healthy, Low or OutOfStock"
// @Success      200       {object}  response.Response{data=response.Page{items=[]service.ItemResponse}}
// @Failure      400       {object}  response.Response
// @Router       /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	p := pagination.Parse(c)

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), service.ItemListFilter{
		Page:     p.Page,
		Limit:    p.Limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, "Failed to retrieve items", err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, items, total, p.Page, p.Limit))
}

// GetItem godoc
// @Summary      Get item
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response{data=service.ItemResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve item", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// CreateItem adds an item to the inventory
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-User   header    string               false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.ItemRequest  true   "Item"
// @Success      201      {object}  response.Response{data=service.ItemResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), actingUser(c), req)
	if err != nil {
		respondError(c, "Failed to create item", err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// UpdateItem replaces an item's editable fields
// @Summary      Update item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "Item ID"
// @Param        X-User   header    string               false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.ItemRequest  true   "Item"
// @Success      200      {object}  response.Response{data=service.ItemResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), actingUser(c), id, req)
	if err != nil {
		respondError(c, "Failed to update item", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteItem removes an item. Its usage history is kept.
// @Summary      Delete item
// @Tags         items
// @Produce      json
// @Param        id      path      string  true   "Item ID"
// @Param        X-User  header    string  false  "Acting user recorded in the audit trail"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), actingUser(c), id); err != nil {
		respondError(c, "Failed to delete item", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// Restock godoc
// @Summary      Restock item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true   "Item ID"
// @Param        X-User   header    string                  false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.RestockRequest  true   "Quantity received"
// @Success      200      {object}  response.Response{data=service.ItemResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/items/{id}/restock [post]
func (h *ItemHandler) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.RestockRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Restock(c.Request.Context(), actingUser(c), id, req)
	if err != nil {
		respondError(c, "Failed to restock item", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// ListMovements returns the latest stock ledger entries of an item
// @Summary      Item stock ledger
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response{data=[]model.StockMovement}
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) ListMovements(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve stock movements", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, movements))
}
