package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/application/finance"
)

// ReportHandler exposes portfolio reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *finance.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(reportService *finance.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes on the versioned API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/portfolio", h.Portfolio)
	}
}

// Portfolio summarises collected rent, expenses and net income over a
// period. Defaults to the current calendar month.
func (h *ReportHandler) Portfolio(c *gin.Context) {
	ownerID, ok := h.landlordID(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.BadRequest(c, "invalid from, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.BadRequest(c, "invalid to, expected YYYY-MM-DD")
			return
		}
		// Include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if to.Before(from) {
		h.UnprocessableEntity(c, "to must not be before from")
		return
	}

	report, err := h.reportService.PortfolioSummary(c.Request.Context(), ownerID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
