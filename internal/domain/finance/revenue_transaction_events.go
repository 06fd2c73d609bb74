package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

const (
	EventTypeTransactionCreated = "finance.transaction.created"
	EventTypeTransactionPaid    = "finance.transaction.paid"
	EventTypeTransactionOverdue = "finance.transaction.overdue"
)

// TransactionCreatedEvent is emitted when a charge is raised against a tenancy
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	TenancyID uuid.UUID           `json:"tenancy_id"`
	Category  TransactionCategory `json:"category"`
	Amount    string              `json:"amount"`
	DueDate   time.Time           `json:"due_date"`
}

// NewTransactionCreatedEvent creates a new TransactionCreatedEvent
func NewTransactionCreatedEvent(t *RevenueTransaction) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCreated, "RevenueTransaction", t.ID, t.OwnerID),
		TenancyID:       t.TenancyID,
		Category:        t.Category,
		Amount:          t.Amount.String(),
		DueDate:         t.DueDate,
	}
}

// TransactionPaidEvent is emitted when a charge is settled
type TransactionPaidEvent struct {
	shared.BaseDomainEvent
	TenancyID     uuid.UUID     `json:"tenancy_id"`
	Amount        string        `json:"amount"`
	PaymentDate   time.Time     `json:"payment_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// NewTransactionPaidEvent creates a new TransactionPaidEvent
func NewTransactionPaidEvent(t *RevenueTransaction) *TransactionPaidEvent {
	return &TransactionPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionPaid, "RevenueTransaction", t.ID, t.OwnerID),
		TenancyID:       t.TenancyID,
		Amount:          t.Amount.String(),
		PaymentDate:     *t.PaymentDate,
		PaymentMethod:   t.PaymentMethod,
	}
}

// TransactionOverdueEvent is emitted when a pending charge passes its due date
type TransactionOverdueEvent struct {
	shared.BaseDomainEvent
	TenancyID uuid.UUID `json:"tenancy_id"`
	Amount    string    `json:"amount"`
	DueDate   time.Time `json:"due_date"`
}

// NewTransactionOverdueEvent creates a new TransactionOverdueEvent
func NewTransactionOverdueEvent(t *RevenueTransaction) *TransactionOverdueEvent {
	return &TransactionOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionOverdue, "RevenueTransaction", t.ID, t.OwnerID),
		TenancyID:       t.TenancyID,
		Amount:          t.Amount.String(),
		DueDate:         t.DueDate,
	}
}
