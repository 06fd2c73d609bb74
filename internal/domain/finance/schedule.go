package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
)

// DefaultOpenEndedHorizonMonths bounds charge generation for open-ended
// tenancies. Overridable via arrears.open_ended_horizon_months.
const DefaultOpenEndedHorizonMonths = 12

// BuildChargeSchedule generates one pending rent charge per billing period
// from the tenancy start through its end date. Open-ended tenancies are
// billed through the horizon instead. Each charge falls due on its period
// start day. The function is pure and deterministic: the same tenancy and
// horizon always yield the same schedule (fresh IDs aside).
func BuildChargeSchedule(tenancy *letting.Tenancy, propertyID uuid.UUID, horizonMonths int) ([]*RevenueTransaction, error) {
	if tenancy == nil {
		return nil, shared.NewValidationError("Tenancy is required")
	}
	if horizonMonths <= 0 {
		horizonMonths = DefaultOpenEndedHorizonMonths
	}

	var until time.Time
	if tenancy.EndDate != nil {
		until = *tenancy.EndDate
	} else {
		until = tenancy.StartDate.AddDate(0, horizonMonths, 0)
	}

	rent := tenancy.GetRentMoney()
	charges := make([]*RevenueTransaction, 0)

	for due := tenancy.StartDate; !due.After(until); due = tenancy.PaymentFrequency.Advance(due) {
		txn, err := NewRevenueTransaction(
			tenancy.OwnerID,
			tenancy.ID,
			propertyID,
			CategoryRent,
			rent,
			due,
			"Rent for period starting "+due.Format("2006-01-02"),
		)
		if err != nil {
			return nil, err
		}
		charges = append(charges, txn)
	}

	return charges, nil
}
