package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proptraka/backend/internal/application/finance"
)

// ExpenseHandler exposes property expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *finance.ExpenseService
}

// NewExpenseHandler creates an expense handler
func NewExpenseHandler(expenseService *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers expense routes on the versioned API group
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
	}
}

// Create records an expense against a property
func (h *ExpenseHandler) Create(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input finance.CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	expense, err := h.expenseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// List returns expenses, optionally narrowed to one property
func (h *ExpenseHandler) List(c *gin.Context) {
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

	page, err := h.expenseService.List(c.Request.Context(), ownerID, propertyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
