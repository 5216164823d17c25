package handler

import (
	"errors"
	"log"
	"net/http"

	"stocktracker/internal/middleware"
	"stocktracker/internal/service"
	"stocktracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func actingUser(c *gin.Context) string {
	return middleware.CurrentUser(c)
}

// respondError maps service errors onto the response envelope
func respondError(c *gin.Context, failure string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		log.Printf("%s: %v", failure, err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, failure+": "+err.Error()))
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id: "+c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
