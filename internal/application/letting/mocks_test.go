package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a testify mock for letting.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *letting.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*letting.Property, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*letting.Property, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*letting.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status letting.PropertyStatus, filter shared.Filter) (shared.Paginated[*letting.Property], error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).(shared.Paginated[*letting.Property]), args.Error(1)
}

// MockTenantRepository is a testify mock for letting.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, t *letting.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*letting.Tenant, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*letting.Tenant, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*letting.Tenant, error) {
	args := m.Called(ctx, ownerID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, filter shared.Filter) (shared.Paginated[*letting.Tenant], error) {
	args := m.Called(ctx, ownerID, query, filter)
	return args.Get(0).(shared.Paginated[*letting.Tenant]), args.Error(1)
}

// MockTenancyRepository is a testify mock for letting.TenancyRepository
type MockTenancyRepository struct {
	mock.Mock
}

func (m *MockTenancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Tenancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) Save(ctx context.Context, t *letting.Tenancy) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenancyRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*letting.Tenancy, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letting.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*letting.Tenancy, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*letting.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenancyRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	args := m.Called(ctx, ownerID, propertyID, filter)
	return args.Get(0).(shared.Paginated[*letting.Tenancy]), args.Error(1)
}

func (m *MockTenancyRepository) FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	args := m.Called(ctx, ownerID, tenantID, filter)
	return args.Get(0).(shared.Paginated[*letting.Tenancy]), args.Error(1)
}

func (m *MockTenancyRepository) FindActive(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(shared.Paginated[*letting.Tenancy]), args.Error(1)
}

func (m *MockTenancyRepository) CountActiveByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTenancyChargeWriter is a testify mock for finance.TenancyChargeWriter
type MockTenancyChargeWriter struct {
	mock.Mock
}

func (m *MockTenancyChargeWriter) CreateTenancyWithCharges(ctx context.Context, tenancy *letting.Tenancy, charges []*finance.RevenueTransaction) error {
	args := m.Called(ctx, tenancy, charges)
	return args.Error(0)
}
