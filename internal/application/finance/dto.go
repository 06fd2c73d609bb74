package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateChargeInput contains the input for raising a manual charge
type CreateChargeInput struct {
	OwnerID     uuid.UUID
	TenancyID   uuid.UUID       `json:"tenancy_id" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Description string          `json:"description"`
}

// RecordPaymentInput contains the input for settling a charge
type RecordPaymentInput struct {
	OwnerID        uuid.UUID
	TransactionID  uuid.UUID
	PaymentDate    time.Time `json:"payment_date" binding:"required"`
	Method         string    `json:"method" binding:"required"`
	Reference      string    `json:"reference"`
	IdempotencyKey string
}

// ListTransactionsInput narrows a transaction listing
type ListTransactionsInput struct {
	OwnerID    uuid.UUID
	TenancyID  uuid.UUID
	PropertyID uuid.UUID
	Status     string
	Category   string
	DueFrom    time.Time
	DueTo      time.Time
}

// TransactionResponse represents a revenue transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenancyID     uuid.UUID       `json:"tenancy_id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a RevenueTransaction to its response form
func ToTransactionResponse(t *finance.RevenueTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		TenancyID:     t.TenancyID,
		PropertyID:    t.PropertyID,
		Category:      string(t.Category),
		Amount:        t.Amount,
		DueDate:       t.DueDate,
		PaymentDate:   t.PaymentDate,
		PaymentMethod: string(t.PaymentMethod),
		PaymentRef:    t.PaymentRef,
		Status:        string(t.Status),
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// ArrearEntryResponse is one tenancy's line in the arrears ledger
type ArrearEntryResponse struct {
	TenancyID   uuid.UUID       `json:"tenancy_id"`
	AmountOwed  decimal.Decimal `json:"amount_owed"`
	DueDate     time.Time       `json:"due_date"`
	DaysOverdue int             `json:"days_overdue"`
	ChargeCount int             `json:"charge_count"`
	Critical    bool            `json:"critical"`
}

// ArrearsLedgerResponse is the full arrears picture for one landlord
type ArrearsLedgerResponse struct {
	AsOf      time.Time                `json:"as_of"`
	Entries   []ArrearEntryResponse    `json:"entries"`
	Portfolio PortfolioArrearsResponse `json:"portfolio"`
}

// PortfolioArrearsResponse is the portfolio-wide arrears roll-up
type PortfolioArrearsResponse struct {
	TotalArrears       decimal.Decimal `json:"total_arrears"`
	Count              int             `json:"count"`
	LongestOverdueDays int             `json:"longest_overdue_days"`
	CriticalCount      int             `json:"critical_count"`
}

// ArrearsSummaryResponse is the portfolio roll-up without per-tenancy entries,
// sized for a dashboard headline
type ArrearsSummaryResponse struct {
	AsOf      time.Time                `json:"as_of"`
	Portfolio PortfolioArrearsResponse `json:"portfolio"`
}

// TerminateTenancyInput contains the input for early termination
type TerminateTenancyInput struct {
	OwnerID    uuid.UUID
	TenancyID  uuid.UUID
	NewEndDate time.Time `json:"new_end_date" binding:"required"`
	EndReason  string    `json:"end_reason"`
}

// TerminationPlanResponse describes what a termination will do
type TerminationPlanResponse struct {
	TenancyID       uuid.UUID             `json:"tenancy_id"`
	NewEndDate      time.Time             `json:"new_end_date"`
	ChargesToDelete []TransactionResponse `json:"charges_to_delete"`
	AmountReleased  decimal.Decimal       `json:"amount_released"`
}

func toTerminationPlanResponse(plan *finance.TerminationPlan) *TerminationPlanResponse {
	charges := make([]TransactionResponse, 0, len(plan.ChargesToDelete))
	for i := range plan.ChargesToDelete {
		charges = append(charges, ToTransactionResponse(&plan.ChargesToDelete[i]))
	}
	return &TerminationPlanResponse{
		TenancyID:       plan.TenancyID,
		NewEndDate:      plan.NewEndDate,
		ChargesToDelete: charges,
		AmountReleased:  plan.AmountReleased,
	}
}

// ReminderResponse is one payment reminder ready for dispatch
type ReminderResponse struct {
	TenancyID   uuid.UUID       `json:"tenancy_id"`
	TenantName  string          `json:"tenant_name"`
	TenantPhone string          `json:"tenant_phone"`
	AmountOwed  decimal.Decimal `json:"amount_owed"`
	DaysOverdue int             `json:"days_overdue"`
	Critical    bool            `json:"critical"`
	Message     string          `json:"message"`
}

// CreateExpenseInput contains the input for recording an expense
type CreateExpenseInput struct {
	OwnerID     uuid.UUID
	PropertyID  uuid.UUID       `json:"property_id" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IncurredOn  time.Time       `json:"incurred_on" binding:"required"`
	Description string          `json:"description"`
	Receipt     string          `json:"receipt"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredOn  time.Time       `json:"incurred_on"`
	Description string          `json:"description,omitempty"`
	Receipt     string          `json:"receipt,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse converts an Expense to its response form
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		IncurredOn:  e.IncurredOn,
		Description: e.Description,
		Receipt:     e.Receipt,
		CreatedAt:   e.CreatedAt,
	}
}

// PortfolioReportResponse summarises money in and out over a period
type PortfolioReportResponse struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetIncome      decimal.Decimal `json:"net_income"`
}
