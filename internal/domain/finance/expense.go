package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a property expense
type ExpenseCategory string

const (
	ExpenseCategoryRepairs    ExpenseCategory = "REPAIRS"
	ExpenseCategoryUtilities  ExpenseCategory = "UTILITIES"
	ExpenseCategoryTaxes      ExpenseCategory = "TAXES"
	ExpenseCategoryInsurance  ExpenseCategory = "INSURANCE"
	ExpenseCategoryManagement ExpenseCategory = "MANAGEMENT"
	ExpenseCategoryOther      ExpenseCategory = "OTHER"
)

// IsValid checks if the expense category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRepairs, ExpenseCategoryUtilities, ExpenseCategoryTaxes,
		ExpenseCategoryInsurance, ExpenseCategoryManagement, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense represents money a landlord spent on a property
type Expense struct {
	shared.OwnerAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredOn  time.Time       `json:"incurred_on"`
	Description string          `json:"description,omitempty"`
	Receipt     string          `json:"receipt,omitempty"` // Free-text reference, e.g. M-Pesa code
}

// NewExpense records a new expense against a property
func NewExpense(
	ownerID uuid.UUID,
	propertyID uuid.UUID,
	category ExpenseCategory,
	amount valueobject.Money,
	incurredOn time.Time,
	description string,
) (*Expense, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("Expense must reference a property")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("Unknown expense category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Expense amount must be positive")
	}
	if incurredOn.IsZero() {
		return nil, shared.NewValidationError("Expense date is required")
	}

	return &Expense{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PropertyID:         propertyID,
		Category:           category,
		Amount:             amount.Amount(),
		IncurredOn:         incurredOn,
		Description:        description,
	}, nil
}

// GetAmountMoney returns the amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKES(e.Amount)
}
