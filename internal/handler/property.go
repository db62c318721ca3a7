package handler

import (
	"net/http"
	"strconv"
	"time"

	"propboard/internal/model"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PropertyHandler handles property CRUD HTTP requests
type PropertyHandler struct {
	propertyService *service.PropertyService
	defaultLimit    int
	maxLimit        int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *service.PropertyService, defaultLimit, maxLimit int) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		defaultLimit:    defaultLimit,
		maxLimit:        maxLimit,
	}
}

// Create handles POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var input model.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}

	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	query := c.Query("q")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultLimit)))
	if err != nil || limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	start := time.Now()
	properties, total, err := h.propertyService.List(c.Request.Context(), query, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties: " + err.Error()})
		return
	}

	if properties == nil {
		properties = []model.Property{}
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{
		Properties: properties,
		Total:      total,
		Took:       time.Since(start).Milliseconds(),
	})
}
