package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TerminationPlan describes what an early termination will do before it is
// applied: which unpaid future charges get deleted and the tenancy snapshot
// the plan was computed against. The applying transaction re-validates the
// snapshot; a version mismatch means the data moved underneath the plan and
// the whole apply is refused.
type TerminationPlan struct {
	TenancyID       uuid.UUID            `json:"tenancy_id"`
	OwnerID         uuid.UUID            `json:"owner_id"`
	TenancyVersion  int                  `json:"tenancy_version"`
	NewEndDate      time.Time            `json:"new_end_date"`
	ChargesToDelete []RevenueTransaction `json:"charges_to_delete"`
	AmountReleased  decimal.Decimal      `json:"amount_released"`
}

// ChargeIDs returns the IDs of the charges the plan deletes, in plan order
func (p *TerminationPlan) ChargeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.ChargesToDelete))
	for i, txn := range p.ChargesToDelete {
		ids[i] = txn.ID
	}
	return ids
}

// PlanEarlyTermination computes the plan for ending a tenancy at newEndDate.
//
// Preconditions: the tenancy is ACTIVE; StartDate ≤ newEndDate; when the
// tenancy has a fixed EndDate, newEndDate ≤ EndDate (a later date is a
// renewal, not a termination); newEndDate ≤ today (backdating is how a
// missed move-out gets recorded, future-dating is not supported). Any
// violation is a VALIDATION_ERROR and nothing is planned.
//
// The plan deletes every unpaid charge falling due strictly after the new
// end date. PAID transactions are never deleted, whatever their due date:
// money already received stays on the books. Charges are ordered by due
// date then ID so the plan is deterministic.
func PlanEarlyTermination(
	tenancy *letting.Tenancy,
	transactions []*RevenueTransaction,
	newEndDate time.Time,
	today time.Time,
) (*TerminationPlan, error) {
	if tenancy == nil {
		return nil, shared.NewValidationError("Tenancy is required")
	}
	if !tenancy.IsActive() {
		return nil, shared.NewValidationError("Only an active tenancy can be terminated")
	}
	if newEndDate.IsZero() {
		return nil, shared.NewValidationError("New end date is required")
	}
	if newEndDate.Before(tenancy.StartDate) {
		return nil, shared.NewValidationError("New end date cannot precede the tenancy start date")
	}
	if tenancy.EndDate != nil && newEndDate.After(*tenancy.EndDate) {
		return nil, shared.NewValidationError("New end date cannot extend past the agreed end date")
	}
	if newEndDate.After(today) {
		return nil, shared.NewValidationError("New end date cannot be in the future")
	}

	plan := &TerminationPlan{
		TenancyID:       tenancy.ID,
		OwnerID:         tenancy.OwnerID,
		TenancyVersion:  tenancy.GetVersion(),
		NewEndDate:      newEndDate,
		ChargesToDelete: make([]RevenueTransaction, 0),
		AmountReleased:  decimal.Zero,
	}

	for _, txn := range transactions {
		if err := txn.Validate(); err != nil {
			return nil, err
		}
		if txn.TenancyID != tenancy.ID {
			continue
		}
		if txn.IsPaid() {
			continue
		}
		if txn.DueDate.After(newEndDate) {
			plan.ChargesToDelete = append(plan.ChargesToDelete, *txn)
			plan.AmountReleased = plan.AmountReleased.Add(txn.Amount)
		}
	}

	sort.Slice(plan.ChargesToDelete, func(i, j int) bool {
		a, b := plan.ChargesToDelete[i], plan.ChargesToDelete[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID.String() < b.ID.String()
	})

	return plan, nil
}
