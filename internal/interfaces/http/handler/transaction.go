package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proptraka/backend/internal/application/finance"
)

// TransactionHandler exposes revenue transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *finance.TransactionService
}

// NewTransactionHandler creates a transaction handler
func NewTransactionHandler(transactionService *finance.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RegisterRoutes registers transaction routes on the versioned API group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.CreateCharge)
		transactions.GET("", h.List)
		transactions.GET("/:id", h.Get)
		transactions.POST("/:id/payment", h.RecordPayment)
	}
}

// CreateCharge raises a manual charge (penalty, utility, repair recharge)
// against a tenancy
func (h *TransactionHandler) CreateCharge(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	var input finance.CreateChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID

	transaction, err := h.transactionService.CreateCharge(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transaction)
}

// List returns transactions narrowed by tenancy, property, status,
// category and due date range
func (h *TransactionHandler) List(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	filter, err := bindListRequest(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	input := finance.ListTransactionsInput{
		OwnerID:  ownerID,
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	if raw := c.Query("tenancy_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid tenancy_id")
			return
		}
		input.TenancyID = id
	}
	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid property_id")
			return
		}
		input.PropertyID = id
	}
	if raw := c.Query("due_from"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.BadRequest(c, "invalid due_from, expected YYYY-MM-DD")
			return
		}
		input.DueFrom = t
	}
	if raw := c.Query("due_to"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.BadRequest(c, "invalid due_to, expected YYYY-MM-DD")
			return
		}
		input.DueTo = t
	}

	page, err := h.transactionService.List(c.Request.Context(), input, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	transactionID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.Get(c.Request.Context(), ownerID, transactionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transaction)
}

// RecordPayment settles a pending or overdue charge. Clients retrying on
// timeouts send the same Idempotency-Key so the payment is applied once.
func (h *TransactionHandler) RecordPayment(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	transactionID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid transaction ID")
		return
	}

	var input finance.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}
	input.OwnerID = ownerID
	input.TransactionID = transactionID
	input.IdempotencyKey = c.GetHeader("Idempotency-Key")

	transaction, err := h.transactionService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transaction)
}
