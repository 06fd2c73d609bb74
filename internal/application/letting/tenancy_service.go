package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// TenancyServiceConfig contains configuration for the tenancy service
type TenancyServiceConfig struct {
	// OpenEndedHorizonMonths is how far ahead rent charges are generated for a
	// tenancy without a fixed end date.
	OpenEndedHorizonMonths int
}

// DefaultTenancyServiceConfig returns default configuration
func DefaultTenancyServiceConfig() TenancyServiceConfig {
	return TenancyServiceConfig{
		OpenEndedHorizonMonths: finance.DefaultOpenEndedHorizonMonths,
	}
}

// TenancyService handles the tenancy lifecycle. Creating a tenancy also
// generates its rent charge schedule; both are written in one database
// transaction so a tenancy never exists without its charges.
type TenancyService struct {
	tenancyRepo  letting.TenancyRepository
	propertyRepo letting.PropertyRepository
	tenantRepo   letting.TenantRepository
	chargeWriter finance.TenancyChargeWriter
	config       TenancyServiceConfig
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// TenancyServiceOption configures optional service dependencies
type TenancyServiceOption func(*TenancyService)

// WithTenancyEventPublisher wires an event publisher for tenancy lifecycle events
func WithTenancyEventPublisher(publisher shared.EventPublisher) TenancyServiceOption {
	return func(s *TenancyService) {
		s.publisher = publisher
	}
}

// NewTenancyService creates a new tenancy service
func NewTenancyService(
	tenancyRepo letting.TenancyRepository,
	propertyRepo letting.PropertyRepository,
	tenantRepo letting.TenantRepository,
	chargeWriter finance.TenancyChargeWriter,
	config TenancyServiceConfig,
	logger *zap.Logger,
	opts ...TenancyServiceOption,
) *TenancyService {
	s := &TenancyService{
		tenancyRepo:  tenancyRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		chargeWriter: chargeWriter,
		config:       config,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishEvents drains and publishes the aggregate's recorded events.
// Publishing happens after the state change is persisted and is best-effort.
func (s *TenancyService) publishEvents(ctx context.Context, agg shared.AggregateRoot) {
	if err := shared.PublishRecorded(ctx, s.publisher, agg); err != nil {
		s.logger.Warn("Failed to publish tenancy events", zap.Error(err))
	}
}

// Create opens a new tenancy and generates its rent charge schedule
func (s *TenancyService) Create(ctx context.Context, input CreateTenancyInput) (*TenancyResponse, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, input.OwnerID, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.IsArchived() {
		return nil, shared.NewValidationError("Cannot open a tenancy on an archived property")
	}

	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, input.OwnerID, input.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Status == letting.TenantStatusArchived {
		return nil, shared.NewValidationError("Cannot open a tenancy for an archived tenant")
	}

	rent := valueobject.NewMoneyKES(input.RentAmount)
	deposit := valueobject.NewMoneyKES(input.DepositAmount)

	tenancy, err := letting.NewTenancy(
		input.OwnerID,
		input.PropertyID,
		input.TenantID,
		input.StartDate,
		input.EndDate,
		rent,
		deposit,
		letting.PaymentFrequency(input.PaymentFrequency),
	)
	if err != nil {
		return nil, err
	}

	charges, err := finance.BuildChargeSchedule(tenancy, property.ID, s.config.OpenEndedHorizonMonths)
	if err != nil {
		return nil, err
	}

	if err := s.chargeWriter.CreateTenancyWithCharges(ctx, tenancy, charges); err != nil {
		s.logger.Error("Failed to persist tenancy with charges",
			zap.String("property_id", input.PropertyID.String()),
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenancy")
	}

	s.publishEvents(ctx, tenancy)

	s.logger.Info("Tenancy created",
		zap.String("tenancy_id", tenancy.ID.String()),
		zap.String("property_id", input.PropertyID.String()),
		zap.Int("charges_generated", len(charges)))

	resp := ToTenancyResponse(tenancy)
	return &resp, nil
}

// Renew extends an active tenancy to a new end date. Renewal does not
// regenerate charges; the landlord records further rent periods as they fall
// due or terminates early through the termination flow.
func (s *TenancyService) Renew(ctx context.Context, input RenewTenancyInput) (*TenancyResponse, error) {
	tenancy, err := s.tenancyRepo.FindByIDForOwner(ctx, input.OwnerID, input.TenancyID)
	if err != nil {
		return nil, err
	}

	if err := tenancy.Renew(input.NewEndDate); err != nil {
		return nil, err
	}

	if err := s.tenancyRepo.Save(ctx, tenancy); err != nil {
		s.logger.Error("Failed to save renewed tenancy",
			zap.String("tenancy_id", input.TenancyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to renew tenancy")
	}

	s.publishEvents(ctx, tenancy)

	s.logger.Info("Tenancy renewed",
		zap.String("tenancy_id", tenancy.ID.String()),
		zap.Time("new_end_date", input.NewEndDate))

	resp := ToTenancyResponse(tenancy)
	return &resp, nil
}

// Get returns a single tenancy scoped to the landlord
func (s *TenancyService) Get(ctx context.Context, ownerID, tenancyID uuid.UUID) (*TenancyResponse, error) {
	tenancy, err := s.tenancyRepo.FindByIDForOwner(ctx, ownerID, tenancyID)
	if err != nil {
		return nil, err
	}
	resp := ToTenancyResponse(tenancy)
	return &resp, nil
}

// List returns the landlord's tenancies, optionally narrowed to one property
// or one tenant or to active agreements only.
func (s *TenancyService) List(ctx context.Context, ownerID uuid.UUID, propertyID, tenantID *uuid.UUID, activeOnly bool, filter shared.Filter) (shared.Paginated[TenancyResponse], error) {
	var (
		page shared.Paginated[*letting.Tenancy]
		err  error
	)
	switch {
	case propertyID != nil:
		page, err = s.tenancyRepo.FindByProperty(ctx, ownerID, *propertyID, filter)
	case tenantID != nil:
		page, err = s.tenancyRepo.FindByTenant(ctx, ownerID, *tenantID, filter)
	case activeOnly:
		page, err = s.tenancyRepo.FindActive(ctx, ownerID, filter)
	default:
		var tenancies []*letting.Tenancy
		tenancies, err = s.tenancyRepo.FindAllForOwner(ctx, ownerID, filter)
		if err == nil {
			var total int64
			total, err = s.tenancyRepo.CountForOwner(ctx, ownerID, filter)
			page = shared.NewPaginated(tenancies, total, filter.Page, filter.PageSize)
		}
	}
	if err != nil {
		return shared.Paginated[TenancyResponse]{}, err
	}

	items := make([]TenancyResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, ToTenancyResponse(t))
	}
	return shared.NewPaginated(items, page.Total, filter.Page, filter.PageSize), nil
}
