package letting

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
)

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
	PropertyTypeLand       PropertyType = "LAND"
)

// IsValid checks if the property type is valid
func (p PropertyType) IsValid() bool {
	switch p {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

// PropertyStatus represents the lifecycle status of a property
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "ACTIVE"
	PropertyStatusArchived PropertyStatus = "ARCHIVED"
)

// Property represents a building or unit a landlord lets out
type Property struct {
	shared.OwnerAggregateRoot
	Name       string              `json:"name"`
	Type       PropertyType        `json:"type"`
	Address    valueobject.Address `json:"address"`
	UnitCount  int                 `json:"unit_count"`
	Notes      string              `json:"notes"`
	Status     PropertyStatus      `json:"status"`
	ArchivedAt *time.Time          `json:"archived_at,omitempty"`
}

// NewProperty creates a new property for a landlord account
func NewProperty(ownerID uuid.UUID, name string, propertyType PropertyType, address valueobject.Address, unitCount int) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}
	if unitCount <= 0 {
		return nil, shared.NewDomainError("INVALID_UNIT_COUNT", "Unit count must be positive")
	}

	return &Property{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               name,
		Type:               propertyType,
		Address:            address,
		UnitCount:          unitCount,
		Status:             PropertyStatusActive,
	}, nil
}

// Update changes the editable property fields
func (p *Property) Update(name string, propertyType PropertyType, address valueobject.Address, unitCount int, notes string) error {
	if p.Status == PropertyStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an archived property")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if !propertyType.IsValid() {
		return shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}
	if unitCount <= 0 {
		return shared.NewDomainError("INVALID_UNIT_COUNT", "Unit count must be positive")
	}

	p.Name = name
	p.Type = propertyType
	p.Address = address
	p.UnitCount = unitCount
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Archive marks the property as no longer managed
func (p *Property) Archive() error {
	if p.Status == PropertyStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Property is already archived")
	}
	now := time.Now()
	p.Status = PropertyStatusArchived
	p.ArchivedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// IsArchived returns true if the property has been archived
func (p *Property) IsArchived() bool {
	return p.Status == PropertyStatusArchived
}
