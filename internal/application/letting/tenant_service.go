package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles tenant record management
type TenantService struct {
	tenantRepo  letting.TenantRepository
	tenancyRepo letting.TenancyRepository
	logger      *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo letting.TenantRepository,
	tenancyRepo letting.TenancyRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		tenancyRepo: tenancyRepo,
		logger:      logger,
	}
}

// Create registers a new tenant for the landlord. Phone numbers are unique
// within one landlord's book; the same person renting from two landlords is
// two separate records.
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*TenantResponse, error) {
	if existing, err := s.tenantRepo.FindByPhone(ctx, input.OwnerID, input.Phone); err == nil && existing != nil {
		return nil, shared.NewDomainError("PHONE_TAKEN", "A tenant with this phone number already exists")
	}

	tenant, err := letting.NewTenant(input.OwnerID, input.FullName, input.Phone, input.Email, input.NationalID)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("owner_id", input.OwnerID.String()))

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// Update changes the editable fields of a tenant record
func (s *TenantService) Update(ctx context.Context, input UpdateTenantInput) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, input.OwnerID, input.TenantID)
	if err != nil {
		return nil, err
	}

	if tenant.Phone != input.Phone {
		if existing, err := s.tenantRepo.FindByPhone(ctx, input.OwnerID, input.Phone); err == nil && existing != nil && existing.ID != tenant.ID {
			return nil, shared.NewDomainError("PHONE_TAKEN", "A tenant with this phone number already exists")
		}
	}

	if err := tenant.Update(input.FullName, input.Phone, input.Email, input.NationalID, input.EmergencyContact); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// Archive marks a tenant record as inactive. A tenant with an active tenancy
// cannot be archived.
func (s *TenantService) Archive(ctx context.Context, ownerID, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, tenantID)
	if err != nil {
		return err
	}

	tenancies, err := s.tenancyRepo.FindByTenant(ctx, ownerID, tenantID, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to look up tenancies for tenant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive tenant")
	}
	for _, tc := range tenancies.Items {
		if tc.IsActive() {
			return shared.NewValidationError("Cannot archive a tenant with an active tenancy")
		}
	}

	if err := tenant.Archive(); err != nil {
		return err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to archive tenant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive tenant")
	}

	s.logger.Info("Tenant archived", zap.String("tenant_id", tenantID.String()))
	return nil
}

// Get returns a single tenant scoped to the landlord
func (s *TenantService) Get(ctx context.Context, ownerID, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// List returns the landlord's tenants. When filter.Search is set it matches
// against name and phone.
func (s *TenantService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[TenantResponse], error) {
	var (
		page shared.Paginated[*letting.Tenant]
		err  error
	)
	if filter.Search != "" {
		page, err = s.tenantRepo.Search(ctx, ownerID, filter.Search, filter)
	} else {
		var tenants []*letting.Tenant
		tenants, err = s.tenantRepo.FindAllForOwner(ctx, ownerID, filter)
		if err == nil {
			var total int64
			total, err = s.tenantRepo.CountForOwner(ctx, ownerID, filter)
			page = shared.NewPaginated(tenants, total, filter.Page, filter.PageSize)
		}
	}
	if err != nil {
		return shared.Paginated[TenantResponse]{}, err
	}

	items := make([]TenantResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, ToTenantResponse(t))
	}
	return shared.NewPaginated(items, page.Total, filter.Page, filter.PageSize), nil
}
