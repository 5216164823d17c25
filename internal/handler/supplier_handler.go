package handler

import (
	"net/http"

	"stocktracker/internal/service"
	"stocktracker/pkg/pagination"
	"stocktracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	suppliers := router.Group("/api/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.POST("", h.CreateSupplier)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.DELETE("/:id", h.DeleteSupplier)
	}
}

// ListSuppliers returns paginated suppliers with optional search
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by name, contact, email, phone"
// @Success      200     {object}  response.Response{data=response.Page{items=[]model.Supplier}}
// @Router       /api/suppliers [get]
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	p := pagination.Parse(c)

	suppliers, total, err := h.supplierService.GetSuppliers(c.Request.Context(), c.Query("search"), p.Page, p.Limit)
	if err != nil {
		respondError(c, "Failed to retrieve suppliers", err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, suppliers, total, p.Page, p.Limit))
}

// CreateSupplier godoc
// @Summary      Create supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        X-User   header    string                   false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.SupplierRequest  true   "Supplier"
// @Success      201      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Router       /api/suppliers [post]
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req service.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), actingUser(c), req)
	if err != nil {
		respondError(c, "Failed to create supplier", err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplier))
}

// UpdateSupplier godoc
// @Summary      Update supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "Supplier ID"
// @Param        X-User   header    string                   false  "Acting user recorded in the audit trail"
// @Param        payload  body      service.SupplierRequest  true   "Supplier"
// @Success      200      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), actingUser(c), id, req)
	if err != nil {
		respondError(c, "Failed to update supplier", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// DeleteSupplier removes a supplier; items referencing it are untouched
// @Summary      Delete supplier
// @Tags         suppliers
// @Produce      json
// @Param        id      path      string  true   "Supplier ID"
// @Param        X-User  header    string  false  "Acting user recorded in the audit trail"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), actingUser(c), id); err != nil {
		respondError(c, "Failed to delete supplier", err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
