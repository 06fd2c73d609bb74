package letting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle status of a tenant record
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "ACTIVE"
	TenantStatusArchived TenantStatus = "ARCHIVED"
)

// Tenant represents a person who rents (or has rented) from the landlord.
// Not to be confused with the Tenancy agreement that binds them to a property.
type Tenant struct {
	shared.OwnerAggregateRoot
	FullName         string       `json:"full_name"`
	Phone            string       `json:"phone"`
	Email            string       `json:"email"`
	NationalID       string       `json:"national_id"`
	EmergencyContact string       `json:"emergency_contact"`
	Status           TenantStatus `json:"status"`
}

// NewTenant creates a new tenant record for a landlord account
func NewTenant(ownerID uuid.UUID, fullName, phone, email, nationalID string) (*Tenant, error) {
	fullName = strings.TrimSpace(fullName)
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Tenant phone cannot be empty")
	}

	return &Tenant{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		FullName:           fullName,
		Phone:              phone,
		Email:              email,
		NationalID:         nationalID,
		Status:             TenantStatusActive,
	}, nil
}

// Update changes the editable tenant fields
func (t *Tenant) Update(fullName, phone, email, nationalID, emergencyContact string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Tenant phone cannot be empty")
	}

	t.FullName = fullName
	t.Phone = phone
	t.Email = email
	t.NationalID = nationalID
	t.EmergencyContact = emergencyContact
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Archive marks the tenant record as inactive
func (t *Tenant) Archive() error {
	if t.Status == TenantStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already archived")
	}
	t.Status = TenantStatusArchived
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
