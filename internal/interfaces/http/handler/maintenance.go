package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proptraka/backend/internal/application/maintenance"
)

// MaintenanceHandler exposes maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	requestService *maintenance.RequestService
}

// NewMaintenanceHandler creates a maintenance handler
func NewMaintenanceHandler(requestService *maintenance.RequestService) *MaintenanceHandler {
	return &MaintenanceHandler{requestService: requestService}
}

// RegisterRoutes registers maintenance routes on the versioned API group
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/maintenance")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create opens a maintenance request against a property
func (h *MaintenanceHandler) Create(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input maintenance.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	request, err := h.requestService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, request)
}

// List returns maintenance requests, optionally narrowed by property and
// status
func (h *MaintenanceHandler) List(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	filter, err := bindListRequest(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var propertyID *uuid.UUID
	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid property_id")
			return
		}
		propertyID = &id
	}

	page, err := h.requestService.List(c.Request.Context(), ownerID, propertyID, c.Query("status"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single maintenance request
func (h *MaintenanceHandler) Get(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	requestID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid request ID")
		return
	}

	request, err := h.requestService.Get(c.Request.Context(), ownerID, requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

// UpdateStatus moves a request through its lifecycle
// (open → in_progress → resolved/cancelled)
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	requestID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid request ID")
		return
	}

	var input maintenance.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.RequestID = requestID

	request, err := h.requestService.UpdateStatus(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}
