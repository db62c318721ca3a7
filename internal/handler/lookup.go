package handler

import (
	"net/http"
	"strings"

	"propboard/internal/model"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves address data lookups without touching the portfolio
type LookupHandler struct {
	propertyService *service.PropertyService
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(propertyService *service.PropertyService) *LookupHandler {
	return &LookupHandler{propertyService: propertyService}
}

// Lookup handles POST /api/v1/lookup
func (h *LookupHandler) Lookup(c *gin.Context) {
	var req model.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address must not be empty"})
		return
	}

	data := h.propertyService.Lookup(c.Request.Context(), address)
	c.JSON(http.StatusOK, data)
}
