package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proptraka/backend/internal/application/finance"
	"github.com/proptraka/backend/internal/application/letting"
)

// TenancyHandler exposes tenancy lifecycle endpoints
type TenancyHandler struct {
	BaseHandler
	tenancyService     *letting.TenancyService
	terminationService *finance.TerminationService
}

// NewTenancyHandler creates a tenancy handler
func NewTenancyHandler(tenancyService *letting.TenancyService, terminationService *finance.TerminationService) *TenancyHandler {
	return &TenancyHandler{
		tenancyService:     tenancyService,
		terminationService: terminationService,
	}
}

// RegisterRoutes registers tenancy routes on the versioned API group
func (h *TenancyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenancies := rg.Group("/tenancies")
	{
		tenancies.POST("", h.Create)
		tenancies.GET("", h.List)
		tenancies.GET("/:id", h.Get)
		tenancies.POST("/:id/renew", h.Renew)
		tenancies.POST("/:id/terminate", h.Terminate)
	}
}

// Create opens a tenancy and schedules its rent charges
func (h *TenancyHandler) Create(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input letting.CreateTenancyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	tenancy, err := h.tenancyService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenancy)
}

// List returns tenancies, optionally narrowed by property, tenant or
// active status
func (h *TenancyHandler) List(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	filter, err := bindListRequest(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var propertyID, tenantID *uuid.UUID
	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid property_id")
			return
		}
		propertyID = &id
	}
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid tenant_id")
			return
		}
		tenantID = &id
	}
	activeOnly := c.Query("active") == "true"

	page, err := h.tenancyService.List(c.Request.Context(), ownerID, propertyID, tenantID, activeOnly, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single tenancy
func (h *TenancyHandler) Get(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenancyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenancy ID")
		return
	}

	tenancy, err := h.tenancyService.Get(c.Request.Context(), ownerID, tenancyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// Renew extends a fixed-term tenancy and schedules charges for the extension
func (h *TenancyHandler) Renew(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenancyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenancy ID")
		return
	}

	var input letting.RenewTenancyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.TenancyID = tenancyID

	tenancy, err := h.tenancyService.Renew(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// Terminate ends a tenancy early, removing its pending future charges.
// With ?preview=true the plan is computed and returned without applying
// anything.
func (h *TenancyHandler) Terminate(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenancyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenancy ID")
		return
	}

	var input finance.TerminateTenancyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.TenancyID = tenancyID

	var plan *finance.TerminationPlanResponse
	if c.Query("preview") == "true" {
		plan, err = h.terminationService.Preview(c.Request.Context(), input)
	} else {
		plan, err = h.terminationService.Terminate(c.Request.Context(), input)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}
