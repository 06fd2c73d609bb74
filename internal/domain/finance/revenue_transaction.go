package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the payment status of a revenue transaction
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING" // Charge raised, not yet due or unpaid
	TransactionStatusPaid    TransactionStatus = "PAID"    // Settled in full, terminal
	TransactionStatusOverdue TransactionStatus = "OVERDUE" // Unpaid past its due date
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further status change is possible
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusPaid
}

// CanTransitionTo reports whether the transition s -> target is allowed.
// Allowed: PENDING -> PAID, PENDING -> OVERDUE, OVERDUE -> PAID.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case TransactionStatusPending:
		return target == TransactionStatusPaid || target == TransactionStatusOverdue
	case TransactionStatusOverdue:
		return target == TransactionStatusPaid
	}
	return false
}

// TransactionCategory classifies what a revenue transaction charges for
type TransactionCategory string

const (
	CategoryRent        TransactionCategory = "RENT"
	CategoryDeposit     TransactionCategory = "DEPOSIT"
	CategoryUtility     TransactionCategory = "UTILITY"
	CategoryPenalty     TransactionCategory = "PENALTY"
	CategoryOtherIncome TransactionCategory = "OTHER"
)

// IsValid checks if the category is valid
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryRent, CategoryDeposit, CategoryUtility, CategoryPenalty, CategoryOtherIncome:
		return true
	}
	return false
}

// PaymentMethod records how a transaction was settled
type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "MPESA"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodMpesa, PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheque:
		return true
	}
	return false
}

// RevenueTransaction represents one charge raised against a tenancy: a rent
// instalment, a deposit, a utility bill. The PaymentDate is set if and only
// if the status is PAID.
type RevenueTransaction struct {
	shared.OwnerAggregateRoot
	TenancyID     uuid.UUID           `json:"tenancy_id"`
	PropertyID    uuid.UUID           `json:"property_id"`
	Category      TransactionCategory `json:"category"`
	Amount        decimal.Decimal     `json:"amount"`
	DueDate       time.Time           `json:"due_date"`
	PaymentDate   *time.Time          `json:"payment_date,omitempty"`
	PaymentMethod PaymentMethod       `json:"payment_method,omitempty"`
	PaymentRef    string              `json:"payment_ref,omitempty"`
	Status        TransactionStatus   `json:"status"`
	Description   string              `json:"description,omitempty"`
}

// NewRevenueTransaction creates a new pending charge against a tenancy
func NewRevenueTransaction(
	ownerID uuid.UUID,
	tenancyID uuid.UUID,
	propertyID uuid.UUID,
	category TransactionCategory,
	amount valueobject.Money,
	dueDate time.Time,
	description string,
) (*RevenueTransaction, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if tenancyID == uuid.Nil {
		return nil, shared.NewValidationError("Transaction must reference a tenancy")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("Unknown transaction category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Transaction amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewValidationError("Transaction due date is required")
	}

	txn := &RevenueTransaction{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		TenancyID:          tenancyID,
		PropertyID:         propertyID,
		Category:           category,
		Amount:             amount.Amount(),
		DueDate:            dueDate,
		Status:             TransactionStatusPending,
		Description:        description,
	}

	txn.AddDomainEvent(NewTransactionCreatedEvent(txn))

	return txn, nil
}

// MarkPaid settles the transaction. Allowed from PENDING or OVERDUE; PAID is
// terminal so paying twice is an error, not a no-op.
func (t *RevenueTransaction) MarkPaid(paymentDate time.Time, method PaymentMethod, reference string) error {
	if !t.Status.CanTransitionTo(TransactionStatusPaid) {
		return shared.NewDomainError("ALREADY_PAID", "Transaction has already been settled")
	}
	if paymentDate.IsZero() {
		return shared.NewValidationError("Payment date is required")
	}
	if !method.IsValid() {
		return shared.NewValidationError("Unknown payment method")
	}

	t.Status = TransactionStatusPaid
	t.PaymentDate = &paymentDate
	t.PaymentMethod = method
	t.PaymentRef = reference
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionPaidEvent(t))

	return nil
}

// MarkOverdue transitions PENDING -> OVERDUE. The caller decides timing; the
// aggregate only refuses to mark a settled charge overdue.
func (t *RevenueTransaction) MarkOverdue() error {
	if t.Status == TransactionStatusOverdue {
		return nil
	}
	if !t.Status.CanTransitionTo(TransactionStatusOverdue) {
		return shared.NewDomainError("INVALID_STATE", "Only a pending transaction can become overdue")
	}

	t.Status = TransactionStatusOverdue
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionOverdueEvent(t))

	return nil
}

// IsOverdueAt reports whether the charge is unpaid with a due date at or
// before the given instant. This derives overdue from DueDate rather than
// trusting the stored status, so a stale PENDING row still counts.
func (t *RevenueTransaction) IsOverdueAt(asOf time.Time) bool {
	if t.Status == TransactionStatusPaid {
		return false
	}
	return !t.DueDate.After(asOf)
}

// DaysOverdueAt returns the number of whole days the charge is overdue at
// the given instant, floored at zero.
func (t *RevenueTransaction) DaysOverdueAt(asOf time.Time) int {
	if t.Status == TransactionStatusPaid {
		return 0
	}
	days := int(asOf.Sub(t.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsPaid returns true if the transaction has been settled
func (t *RevenueTransaction) IsPaid() bool {
	return t.Status == TransactionStatusPaid
}

// GetAmountMoney returns the amount as Money
func (t *RevenueTransaction) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.Amount)
}

// Validate checks the integrity of a stored transaction. Repositories call
// this on load paths that feed calculations, so a corrupted row surfaces as
// a DATA_INTEGRITY error instead of silently skewing totals.
func (t *RevenueTransaction) Validate() error {
	if t.TenancyID == uuid.Nil {
		return shared.NewDataIntegrityError("Transaction " + t.ID.String() + " has no tenancy reference")
	}
	if t.DueDate.IsZero() {
		return shared.NewDataIntegrityError("Transaction " + t.ID.String() + " has no due date")
	}
	if !t.Status.IsValid() {
		return shared.NewDataIntegrityError("Transaction " + t.ID.String() + " has unknown status " + string(t.Status))
	}
	if t.Status == TransactionStatusPaid && t.PaymentDate == nil {
		return shared.NewDataIntegrityError("Transaction " + t.ID.String() + " is PAID without a payment date")
	}
	if t.Status != TransactionStatusPaid && t.PaymentDate != nil {
		return shared.NewDataIntegrityError("Transaction " + t.ID.String() + " has a payment date but is not PAID")
	}
	return nil
}
