package identity

import (
	"github.com/proptraka/backend/internal/domain/shared"
)

const (
	EventTypeLandlordRegistered = "identity.landlord.registered"
)

// LandlordRegisteredEvent is emitted when a new landlord account is created
type LandlordRegisteredEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewLandlordRegisteredEvent creates a new LandlordRegisteredEvent
func NewLandlordRegisteredEvent(l *Landlord) *LandlordRegisteredEvent {
	return &LandlordRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLandlordRegistered, "Landlord", l.ID, l.ID),
		Email:           l.Email,
		FullName:        l.FullName,
	}
}
