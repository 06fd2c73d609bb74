package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/application/letting"
)

// TenantHandler exposes tenant CRUD endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *letting.TenantService
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(tenantService *letting.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// RegisterRoutes registers tenant routes on the versioned API group
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id", h.Update)
		tenants.DELETE("/:id", h.Archive)
	}
}

// Create registers a new tenant
func (h *TenantHandler) Create(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input letting.CreateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	tenant, err := h.tenantService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenant)
}

// List returns the landlord's tenants, paginated
func (h *TenantHandler) List(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	filter, err := bindListRequest(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.tenantService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single tenant
func (h *TenantHandler) Get(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenantID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), ownerID, tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Update modifies a tenant's contact details
func (h *TenantHandler) Update(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenantID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	var input letting.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.TenantID = tenantID

	tenant, err := h.tenantService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Archive retires a tenant record. Tenants on active tenancies cannot be
// archived.
func (h *TenantHandler) Archive(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenantID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	if err := h.tenantService.Archive(c.Request.Context(), ownerID, tenantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
