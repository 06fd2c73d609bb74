package letting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPropertyService_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		propertyRepo := new(MockPropertyRepository)
		propertyRepo.On("Save", mock.Anything, mock.AnythingOfType("*letting.Property")).Return(nil)

		svc := NewPropertyService(propertyRepo, new(MockTenancyRepository), zap.NewNop())
		resp, err := svc.Create(context.Background(), CreatePropertyInput{
			OwnerID:   ownerID,
			Name:      "Kilimani Heights",
			Type:      "APARTMENT",
			County:    "Nairobi",
			Town:      "Kilimani",
			Street:    "Argwings Kodhek Road",
			UnitCount: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, "Kilimani Heights", resp.Name)
		assert.Equal(t, "ACTIVE", resp.Status)
		propertyRepo.AssertExpectations(t)
	})

	t.Run("invalid address", func(t *testing.T) {
		svc := NewPropertyService(new(MockPropertyRepository), new(MockTenancyRepository), zap.NewNop())
		_, err := svc.Create(context.Background(), CreatePropertyInput{
			OwnerID:   ownerID,
			Name:      "Kilimani Heights",
			Type:      "APARTMENT",
			County:    "",
			Town:      "Kilimani",
			Street:    "Argwings Kodhek Road",
			UnitCount: 12,
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, shared.CodeValidation, dErr.Code)
	})
}

func TestPropertyService_Archive(t *testing.T) {
	ownerID := uuid.New()

	t.Run("succeeds when no active tenancies", func(t *testing.T) {
		property := testProperty(t, ownerID)
		propertyRepo := new(MockPropertyRepository)
		tenancyRepo := new(MockTenancyRepository)
		propertyRepo.On("FindByIDForOwner", mock.Anything, ownerID, property.ID).Return(property, nil)
		tenancyRepo.On("CountActiveByProperty", mock.Anything, ownerID, property.ID).Return(int64(0), nil)
		propertyRepo.On("Save", mock.Anything, property).Return(nil)

		svc := NewPropertyService(propertyRepo, tenancyRepo, zap.NewNop())
		err := svc.Archive(context.Background(), ownerID, property.ID)
		require.NoError(t, err)
		assert.True(t, property.IsArchived())
	})

	t.Run("refuses while tenancies are active", func(t *testing.T) {
		property := testProperty(t, ownerID)
		propertyRepo := new(MockPropertyRepository)
		tenancyRepo := new(MockTenancyRepository)
		propertyRepo.On("FindByIDForOwner", mock.Anything, ownerID, property.ID).Return(property, nil)
		tenancyRepo.On("CountActiveByProperty", mock.Anything, ownerID, property.ID).Return(int64(2), nil)

		svc := NewPropertyService(propertyRepo, tenancyRepo, zap.NewNop())
		err := svc.Archive(context.Background(), ownerID, property.ID)
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, shared.CodeValidation, dErr.Code)
		assert.False(t, property.IsArchived())
		propertyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPropertyService_List(t *testing.T) {
	ownerID := uuid.New()
	property := testProperty(t, ownerID)

	propertyRepo := new(MockPropertyRepository)
	filter := shared.DefaultFilter()
	propertyRepo.On("FindAllForOwner", mock.Anything, ownerID, filter).
		Return([]*letting.Property{property}, nil)
	propertyRepo.On("CountForOwner", mock.Anything, ownerID, filter).Return(int64(1), nil)

	svc := NewPropertyService(propertyRepo, new(MockTenancyRepository), zap.NewNop())
	page, err := svc.List(context.Background(), ownerID, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, property.ID, page.Items[0].ID)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
