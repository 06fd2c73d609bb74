package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PropertyService handles property management operations
type PropertyService struct {
	propertyRepo letting.PropertyRepository
	tenancyRepo  letting.TenancyRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo letting.PropertyRepository,
	tenancyRepo letting.TenancyRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		tenancyRepo:  tenancyRepo,
		logger:       logger,
	}
}

// Create registers a new property for the landlord
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) (*PropertyResponse, error) {
	address, err := valueobject.NewAddress(input.County, input.Town, input.Street,
		valueobject.WithPostalCode(input.PostalCode))
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	property, err := letting.NewProperty(input.OwnerID, input.Name, letting.PropertyType(input.Type), address, input.UnitCount)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create property")
	}

	s.logger.Info("Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("owner_id", input.OwnerID.String()))

	resp := ToPropertyResponse(property)
	return &resp, nil
}

// Update changes the editable fields of a property
func (s *PropertyService) Update(ctx context.Context, input UpdatePropertyInput) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, input.OwnerID, input.PropertyID)
	if err != nil {
		return nil, err
	}

	address, err := valueobject.NewAddress(input.County, input.Town, input.Street,
		valueobject.WithPostalCode(input.PostalCode))
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	if err := property.Update(input.Name, letting.PropertyType(input.Type), address, input.UnitCount, input.Notes); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		s.logger.Error("Failed to update property",
			zap.String("property_id", input.PropertyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update property")
	}

	resp := ToPropertyResponse(property)
	return &resp, nil
}

// Archive marks a property as no longer managed. A property with active
// tenancies cannot be archived.
func (s *PropertyService) Archive(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}

	active, err := s.tenancyRepo.CountActiveByProperty(ctx, ownerID, propertyID)
	if err != nil {
		s.logger.Error("Failed to count active tenancies", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive property")
	}
	if active > 0 {
		return shared.NewValidationError("Cannot archive a property with active tenancies")
	}

	if err := property.Archive(); err != nil {
		return err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		s.logger.Error("Failed to archive property", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive property")
	}

	s.logger.Info("Property archived", zap.String("property_id", propertyID.String()))
	return nil
}

// Get returns a single property scoped to the landlord
func (s *PropertyService) Get(ctx context.Context, ownerID, propertyID uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	resp := ToPropertyResponse(property)
	return &resp, nil
}

// List returns the landlord's properties, paginated
func (s *PropertyService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[PropertyResponse], error) {
	properties, err := s.propertyRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return shared.Paginated[PropertyResponse]{}, err
	}
	total, err := s.propertyRepo.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return shared.Paginated[PropertyResponse]{}, err
	}

	items := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		items = append(items, ToPropertyResponse(p))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
