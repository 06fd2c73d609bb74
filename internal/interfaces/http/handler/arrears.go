package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/application/finance"
)

// ArrearsHandler exposes the arrears ledger and reminder endpoints
type ArrearsHandler struct {
	BaseHandler
	arrearsService  *finance.ArrearsService
	reminderService *finance.ReminderService
}

// NewArrearsHandler creates an arrears handler
func NewArrearsHandler(arrearsService *finance.ArrearsService, reminderService *finance.ReminderService) *ArrearsHandler {
	return &ArrearsHandler{
		arrearsService:  arrearsService,
		reminderService: reminderService,
	}
}

// RegisterRoutes registers arrears routes on the versioned API group
func (h *ArrearsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	arrears := rg.Group("/arrears")
	{
		arrears.GET("", h.Ledger)
		arrears.GET("/summary", h.Summary)
		arrears.GET("/tenancies/:id", h.TenancyArrears)
		arrears.GET("/reminders", h.Reminders)
	}
}

// asOfDate reads the optional as_of query param, defaulting to today.
// Arrears are always computed live from unpaid charges, so any past or
// future date gives a consistent answer.
func (h *ArrearsHandler) asOfDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}
	asOf, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		h.BadRequest(c, "invalid as_of, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return asOf, true
}

// Ledger returns every tenancy in arrears plus the portfolio roll-up
func (h *ArrearsHandler) Ledger(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	asOf, ok := h.asOfDate(c)
	if !ok {
		return
	}

	ledger, err := h.arrearsService.Ledger(c.Request.Context(), ownerID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ledger)
}

// Summary returns the portfolio-wide arrears roll-up
func (h *ArrearsHandler) Summary(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	asOf, ok := h.asOfDate(c)
	if !ok {
		return
	}

	summary, err := h.arrearsService.Summary(c.Request.Context(), ownerID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// TenancyArrears returns the arrears position of one tenancy
func (h *ArrearsHandler) TenancyArrears(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	tenancyID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenancy ID")
		return
	}

	asOf, ok := h.asOfDate(c)
	if !ok {
		return
	}

	entry, err := h.arrearsService.TenancyArrears(c.Request.Context(), ownerID, tenancyID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Reminders returns dispatch-ready payment reminders for every tenancy
// in arrears
func (h *ArrearsHandler) Reminders(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	asOf, ok := h.asOfDate(c)
	if !ok {
		return
	}

	reminders, err := h.reminderService.BuildReminders(c.Request.Context(), ownerID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reminders)
}
