package letting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenancyStatus represents the status of a tenancy agreement
type TenancyStatus string

const (
	TenancyStatusActive TenancyStatus = "ACTIVE" // Lease in force
	TenancyStatusEnded  TenancyStatus = "ENDED"  // Terminal: natural expiry or early termination
)

// IsValid checks if the status is a valid TenancyStatus
func (s TenancyStatus) IsValid() bool {
	return s == TenancyStatusActive || s == TenancyStatusEnded
}

// String returns the string representation of TenancyStatus
func (s TenancyStatus) String() string {
	return string(s)
}

// PaymentFrequency represents how often rent falls due
type PaymentFrequency string

const (
	FrequencyWeekly    PaymentFrequency = "WEEKLY"
	FrequencyMonthly   PaymentFrequency = "MONTHLY"
	FrequencyQuarterly PaymentFrequency = "QUARTERLY"
	FrequencyYearly    PaymentFrequency = "YEARLY"
)

// IsValid checks if the payment frequency is valid
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Advance returns the start of the billing period following t
func (f PaymentFrequency) Advance(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// Tenancy represents a lease agreement binding one tenant to one property
// for a date range. An open-ended lease has a nil EndDate.
type Tenancy struct {
	shared.OwnerAggregateRoot
	PropertyID       uuid.UUID        `json:"property_id"`
	TenantID         uuid.UUID        `json:"tenant_id"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	RentAmount       decimal.Decimal  `json:"rent_amount"`
	DepositAmount    decimal.Decimal  `json:"deposit_amount"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	Status           TenancyStatus    `json:"status"`
	EndedAt          *time.Time       `json:"ended_at,omitempty"`
	EndReason        string           `json:"end_reason,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

// NewTenancy creates a new active tenancy
func NewTenancy(
	ownerID uuid.UUID,
	propertyID uuid.UUID,
	tenantID uuid.UUID,
	startDate time.Time,
	endDate *time.Time,
	rent valueobject.Money,
	deposit valueobject.Money,
	frequency PaymentFrequency,
) (*Tenancy, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if startDate.IsZero() {
		return nil, shared.NewValidationError("Tenancy start date is required")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, shared.NewValidationError("Tenancy end date cannot precede the start date")
	}
	if !rent.IsPositive() {
		return nil, shared.NewValidationError("Rent amount must be positive")
	}
	if deposit.IsNegative() {
		return nil, shared.NewValidationError("Deposit amount cannot be negative")
	}
	if !frequency.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown payment frequency %q", frequency))
	}

	t := &Tenancy{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PropertyID:         propertyID,
		TenantID:           tenantID,
		StartDate:          startDate,
		EndDate:            endDate,
		RentAmount:         rent.Amount(),
		DepositAmount:      deposit.Amount(),
		PaymentFrequency:   frequency,
		Status:             TenancyStatusActive,
	}

	t.AddDomainEvent(NewTenancyCreatedEvent(t))

	return t, nil
}

// Renew extends an active tenancy to a new end date
func (t *Tenancy) Renew(newEndDate time.Time) error {
	if t.Status != TenancyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active tenancy can be renewed")
	}
	if newEndDate.Before(t.StartDate) {
		return shared.NewValidationError("Renewal end date cannot precede the tenancy start date")
	}
	if t.EndDate != nil && !newEndDate.After(*t.EndDate) {
		return shared.NewValidationError("Renewal end date must extend the current end date")
	}

	previous := t.EndDate
	t.EndDate = &newEndDate
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenancyRenewedEvent(t, previous))

	return nil
}

// End transitions the tenancy to ENDED as of the given date. The transition is
// terminal: there is no way back to ACTIVE. Callers terminating early must have
// applied a termination plan (see finance.PlanEarlyTermination) first so no
// unpaid future-dated charges survive the move-out.
func (t *Tenancy) End(endDate time.Time, reason string) error {
	if t.Status != TenancyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Tenancy has already ended")
	}
	if endDate.Before(t.StartDate) {
		return shared.NewValidationError("Tenancy end date cannot precede the start date")
	}

	now := time.Now()
	t.EndDate = &endDate
	t.Status = TenancyStatusEnded
	t.EndedAt = &now
	t.EndReason = reason
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTenancyEndedEvent(t))

	return nil
}

// GetRentMoney returns the rent amount as Money
func (t *Tenancy) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.RentAmount)
}

// GetDepositMoney returns the deposit amount as Money
func (t *Tenancy) GetDepositMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.DepositAmount)
}

// IsActive returns true if the lease is in force
func (t *Tenancy) IsActive() bool {
	return t.Status == TenancyStatusActive
}

// IsEnded returns true if the tenancy has ended
func (t *Tenancy) IsEnded() bool {
	return t.Status == TenancyStatusEnded
}

// IsOpenEnded returns true if the tenancy has no fixed end date
func (t *Tenancy) IsOpenEnded() bool {
	return t.EndDate == nil
}

// Covers reports whether the given date falls within the tenancy's date range
func (t *Tenancy) Covers(date time.Time) bool {
	if date.Before(t.StartDate) {
		return false
	}
	if t.EndDate != nil && date.After(*t.EndDate) {
		return false
	}
	return true
}
