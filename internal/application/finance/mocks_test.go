package finance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a testify mock for finance.RevenueTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RevenueTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, t *finance.RevenueTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.RevenueTransaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*finance.RevenueTransaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindAllUnsettled(ctx context.Context, ownerID uuid.UUID) ([]*finance.RevenueTransaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByTenancy(ctx context.Context, ownerID, tenancyID uuid.UUID) ([]*finance.RevenueTransaction, error) {
	args := m.Called(ctx, ownerID, tenancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByQuery(ctx context.Context, ownerID uuid.UUID, query finance.TransactionQuery, filter shared.Filter) (shared.Paginated[*finance.RevenueTransaction], error) {
	args := m.Called(ctx, ownerID, query, filter)
	return args.Get(0).(shared.Paginated[*finance.RevenueTransaction]), args.Error(1)
}

func (m *MockTransactionRepository) SaveBatch(ctx context.Context, transactions []*finance.RevenueTransaction) error {
	args := m.Called(ctx, transactions)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteBatch(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindDuePending(ctx context.Context, asOf time.Time, limit int) ([]*finance.RevenueTransaction, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.RevenueTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (string, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.String(0), args.Error(1)
}

// MockExpenseRepository is a testify mock for finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *finance.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*finance.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*finance.Expense], error) {
	args := m.Called(ctx, ownerID, propertyID, filter)
	return args.Get(0).(shared.Paginated[*finance.Expense]), args.Error(1)
}

func (m *MockExpenseRepository) SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (string, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.String(0), args.Error(1)
}

// MockTerminationApplier is a testify mock for finance.TerminationApplier
type MockTerminationApplier struct {
	mock.Mock
}

func (m *MockTerminationApplier) ApplyPlan(ctx context.Context, plan *finance.TerminationPlan, endReason string) error {
	args := m.Called(ctx, plan, endReason)
	return args.Error(0)
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

// memoryIdempotencyStore is a trivial in-memory shared.IdempotencyStore for tests
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{seen: make(map[string]struct{})}
}

func (s *memoryIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}

func (s *memoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok, nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, key)
	return nil
}

func (s *memoryIdempotencyStore) Close() error { return nil }
