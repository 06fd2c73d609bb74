package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/application/letting"
)

// PropertyHandler exposes property CRUD endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *letting.PropertyService
}

// NewPropertyHandler creates a property handler
func NewPropertyHandler(propertyService *letting.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// RegisterRoutes registers property routes on the versioned API group
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.Get)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Archive)
	}
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input letting.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	property, err := h.propertyService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, property)
}

// List returns the landlord's properties, paginated
func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	filter, err := bindListRequest(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.propertyService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single property
func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	propertyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid property ID")
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// Update modifies a property
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	propertyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid property ID")
		return
	}

	var input letting.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.PropertyID = propertyID

	property, err := h.propertyService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// Archive retires a property. Properties with active tenancies cannot be
// archived.
func (h *PropertyHandler) Archive(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	propertyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid property ID")
		return
	}

	if err := h.propertyService.Archive(c.Request.Context(), ownerID, propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
