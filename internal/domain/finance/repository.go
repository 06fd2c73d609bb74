package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
)

// TransactionQuery narrows transaction lookups. Zero values mean "any".
type TransactionQuery struct {
	TenancyID  uuid.UUID
	PropertyID uuid.UUID
	Status     TransactionStatus
	Category   TransactionCategory
	DueFrom    time.Time
	DueTo      time.Time
}

// RevenueTransactionRepository persists RevenueTransaction aggregates
type RevenueTransactionRepository interface {
	shared.OwnerRepository[*RevenueTransaction]
	// FindAllUnsettled returns every non-PAID transaction for the owner.
	// The arrears calculator consumes this; no pagination, the ledger needs
	// the complete picture.
	FindAllUnsettled(ctx context.Context, ownerID uuid.UUID) ([]*RevenueTransaction, error)
	FindByTenancy(ctx context.Context, ownerID, tenancyID uuid.UUID) ([]*RevenueTransaction, error)
	FindByQuery(ctx context.Context, ownerID uuid.UUID, query TransactionQuery, filter shared.Filter) (shared.Paginated[*RevenueTransaction], error)
	SaveBatch(ctx context.Context, transactions []*RevenueTransaction) error
	DeleteBatch(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	// FindDuePending returns PENDING transactions whose due date is at or
	// before the given instant, across all owners. Used by the overdue sweep.
	FindDuePending(ctx context.Context, asOf time.Time, limit int) ([]*RevenueTransaction, error)
	SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (string, error)
}

// TerminationApplier applies a termination plan in one database transaction.
// The implementation re-validates owner, ACTIVE status and aggregate version
// against the plan's snapshot before touching anything; a mismatch is a
// PRECONDITION_FAILED error and nothing is applied.
type TerminationApplier interface {
	ApplyPlan(ctx context.Context, plan *TerminationPlan, endReason string) error
}

// TenancyChargeWriter persists a new tenancy together with its generated
// charge schedule in one database transaction
type TenancyChargeWriter interface {
	CreateTenancyWithCharges(ctx context.Context, tenancy *letting.Tenancy, charges []*RevenueTransaction) error
}

// ExpenseRepository persists Expense aggregates
type ExpenseRepository interface {
	shared.OwnerRepository[*Expense]
	FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*Expense], error)
	SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (string, error)
}
