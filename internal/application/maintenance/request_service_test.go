package maintenance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/maintenance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRequestRepository is a testify mock for maintenance.RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.Request), args.Error(1)
}

func (m *MockRequestRepository) Save(ctx context.Context, r *maintenance.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*maintenance.Request, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*maintenance.Request, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*maintenance.Request), args.Error(1)
}

func (m *MockRequestRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*maintenance.Request], error) {
	args := m.Called(ctx, ownerID, propertyID, filter)
	return args.Get(0).(shared.Paginated[*maintenance.Request]), args.Error(1)
}

func (m *MockRequestRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status maintenance.RequestStatus, filter shared.Filter) (shared.Paginated[*maintenance.Request], error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).(shared.Paginated[*maintenance.Request]), args.Error(1)
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

func testProperty(t *testing.T, ownerID uuid.UUID) *letting.Property {
	t.Helper()
	addr, err := valueobject.NewAddress("Nairobi", "South B", "Mariakani Road 3")
	require.NoError(t, err)
	p, err := letting.NewProperty(ownerID, "Mariakani Flats", letting.PropertyTypeApartment, addr, 6)
	require.NoError(t, err)
	return p
}

func TestRequestService_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("opens request against owned property", func(t *testing.T) {
		property := testProperty(t, ownerID)
		requestRepo := new(MockRequestRepository)
		propertyRepo := new(MockPropertyRepository)
		propertyRepo.On("FindByIDForOwner", mock.Anything, ownerID, property.ID).Return(property, nil)
		requestRepo.On("Save", mock.Anything, mock.AnythingOfType("*maintenance.Request")).Return(nil)

		svc := NewRequestService(requestRepo, propertyRepo, zap.NewNop())
		resp, err := svc.Create(context.Background(), CreateRequestInput{
			OwnerID:     ownerID,
			PropertyID:  property.ID,
			Title:       "Burst water pipe in unit 4",
			Description: "Water leaking into the corridor",
			Priority:    "URGENT",
		})
		require.NoError(t, err)
		assert.Equal(t, "OPEN", resp.Status)
		assert.Equal(t, "URGENT", resp.Priority)
	})

	t.Run("rejects property of another landlord", func(t *testing.T) {
		propertyID := uuid.New()
		propertyRepo := new(MockPropertyRepository)
		propertyRepo.On("FindByIDForOwner", mock.Anything, ownerID, propertyID).Return(nil, shared.ErrNotFound)

		svc := NewRequestService(new(MockRequestRepository), propertyRepo, zap.NewNop())
		_, err := svc.Create(context.Background(), CreateRequestInput{
			OwnerID:    ownerID,
			PropertyID: propertyID,
			Title:      "Broken gate",
			Priority:   "LOW",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRequestService_UpdateStatus(t *testing.T) {
	ownerID := uuid.New()

	newOpenRequest := func(t *testing.T) *maintenance.Request {
		t.Helper()
		r, err := maintenance.NewRequest(ownerID, uuid.New(), nil,
			"Faulty water heater", "", maintenance.PriorityMedium)
		require.NoError(t, err)
		return r
	}

	t.Run("walks open through in-progress to resolved", func(t *testing.T) {
		request := newOpenRequest(t)
		requestRepo := new(MockRequestRepository)
		requestRepo.On("FindByIDForOwner", mock.Anything, ownerID, request.ID).Return(request, nil)
		requestRepo.On("Save", mock.Anything, request).Return(nil)

		svc := NewRequestService(requestRepo, new(MockPropertyRepository), zap.NewNop())

		resp, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			OwnerID: ownerID, RequestID: request.ID, Status: "IN_PROGRESS",
		})
		require.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", resp.Status)

		resp, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
			OwnerID: ownerID, RequestID: request.ID, Status: "RESOLVED", Note: "Replaced heating element",
		})
		require.NoError(t, err)
		assert.Equal(t, "RESOLVED", resp.Status)
		assert.Equal(t, "Replaced heating element", resp.Resolution)
		require.NotNil(t, resp.ResolvedAt)
	})

	t.Run("rejects reopening a resolved request", func(t *testing.T) {
		request := newOpenRequest(t)
		require.NoError(t, request.Resolve("Fixed"))

		requestRepo := new(MockRequestRepository)
		requestRepo.On("FindByIDForOwner", mock.Anything, ownerID, request.ID).Return(request, nil)

		svc := NewRequestService(requestRepo, new(MockPropertyRepository), zap.NewNop())
		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			OwnerID: ownerID, RequestID: request.ID, Status: "IN_PROGRESS",
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, "INVALID_STATE", dErr.Code)
		requestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
