package letting

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

const (
	EventTypeTenancyCreated = "letting.tenancy.created"
	EventTypeTenancyRenewed = "letting.tenancy.renewed"
	EventTypeTenancyEnded   = "letting.tenancy.ended"
)

// TenancyCreatedEvent is emitted when a new tenancy is created
type TenancyCreatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	StartDate  time.Time `json:"start_date"`
	RentAmount string    `json:"rent_amount"`
}

// NewTenancyCreatedEvent creates a new TenancyCreatedEvent
func NewTenancyCreatedEvent(t *Tenancy) *TenancyCreatedEvent {
	return &TenancyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyCreated, "Tenancy", t.ID, t.OwnerID),
		PropertyID:      t.PropertyID,
		TenantID:        t.TenantID,
		StartDate:       t.StartDate,
		RentAmount:      t.RentAmount.String(),
	}
}

// TenancyRenewedEvent is emitted when a tenancy's end date is extended
type TenancyRenewedEvent struct {
	shared.BaseDomainEvent
	PreviousEndDate *time.Time `json:"previous_end_date,omitempty"`
	NewEndDate      time.Time  `json:"new_end_date"`
}

// NewTenancyRenewedEvent creates a new TenancyRenewedEvent
func NewTenancyRenewedEvent(t *Tenancy, previousEndDate *time.Time) *TenancyRenewedEvent {
	return &TenancyRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyRenewed, "Tenancy", t.ID, t.OwnerID),
		PreviousEndDate: previousEndDate,
		NewEndDate:      *t.EndDate,
	}
}

// TenancyEndedEvent is emitted when a tenancy transitions to ENDED
type TenancyEndedEvent struct {
	shared.BaseDomainEvent
	EndDate   time.Time `json:"end_date"`
	EndReason string    `json:"end_reason,omitempty"`
}

// NewTenancyEndedEvent creates a new TenancyEndedEvent
func NewTenancyEndedEvent(t *Tenancy) *TenancyEndedEvent {
	return &TenancyEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyEnded, "Tenancy", t.ID, t.OwnerID),
		EndDate:         *t.EndDate,
		EndReason:       t.EndReason,
	}
}
