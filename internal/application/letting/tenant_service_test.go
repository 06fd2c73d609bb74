package letting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTenantService_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		tenantRepo.On("FindByPhone", mock.Anything, ownerID, "+254722000111").Return(nil, shared.ErrNotFound)
		tenantRepo.On("Save", mock.Anything, mock.AnythingOfType("*letting.Tenant")).Return(nil)

		svc := NewTenantService(tenantRepo, new(MockTenancyRepository), zap.NewNop())
		resp, err := svc.Create(context.Background(), CreateTenantInput{
			OwnerID:  ownerID,
			FullName: "Grace Wanjiku",
			Phone:    "+254722000111",
			Email:    "grace.wanjiku@gmail.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Grace Wanjiku", resp.FullName)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("duplicate phone within landlord book", func(t *testing.T) {
		existing := testTenant(t, ownerID)
		tenantRepo := new(MockTenantRepository)
		tenantRepo.On("FindByPhone", mock.Anything, ownerID, existing.Phone).Return(existing, nil)

		svc := NewTenantService(tenantRepo, new(MockTenancyRepository), zap.NewNop())
		_, err := svc.Create(context.Background(), CreateTenantInput{
			OwnerID:  ownerID,
			FullName: "Someone Else",
			Phone:    existing.Phone,
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, "PHONE_TAKEN", dErr.Code)
		tenantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTenantService_Archive(t *testing.T) {
	ownerID := uuid.New()

	t.Run("refuses while a tenancy is active", func(t *testing.T) {
		tenant := testTenant(t, ownerID)
		tenancy, err := letting.NewTenancy(ownerID, uuid.New(), tenant.ID,
			date(2025, 1, 1), nil,
			valueobject.NewMoneyKESFromFloat(45000), valueobject.ZeroKES(),
			letting.FrequencyMonthly)
		require.NoError(t, err)

		tenantRepo := new(MockTenantRepository)
		tenancyRepo := new(MockTenancyRepository)
		tenantRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenant.ID).Return(tenant, nil)
		tenancyRepo.On("FindByTenant", mock.Anything, ownerID, tenant.ID, mock.Anything).
			Return(shared.NewPaginated([]*letting.Tenancy{tenancy}, 1, 1, 20), nil)

		svc := NewTenantService(tenantRepo, tenancyRepo, zap.NewNop())
		err = svc.Archive(context.Background(), ownerID, tenant.ID)
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, shared.CodeValidation, dErr.Code)
	})

	t.Run("succeeds after tenancies ended", func(t *testing.T) {
		tenant := testTenant(t, ownerID)
		tenancy, err := letting.NewTenancy(ownerID, uuid.New(), tenant.ID,
			date(2024, 1, 1), nil,
			valueobject.NewMoneyKESFromFloat(45000), valueobject.ZeroKES(),
			letting.FrequencyMonthly)
		require.NoError(t, err)
		require.NoError(t, tenancy.End(date(2024, 12, 31), "Moved out"))

		tenantRepo := new(MockTenantRepository)
		tenancyRepo := new(MockTenancyRepository)
		tenantRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenant.ID).Return(tenant, nil)
		tenancyRepo.On("FindByTenant", mock.Anything, ownerID, tenant.ID, mock.Anything).
			Return(shared.NewPaginated([]*letting.Tenancy{tenancy}, 1, 1, 20), nil)
		tenantRepo.On("Save", mock.Anything, tenant).Return(nil)

		svc := NewTenantService(tenantRepo, tenancyRepo, zap.NewNop())
		require.NoError(t, svc.Archive(context.Background(), ownerID, tenant.ID))
		assert.Equal(t, letting.TenantStatusArchived, tenant.Status)
	})
}

func TestTenantService_List_Search(t *testing.T) {
	ownerID := uuid.New()
	tenant := testTenant(t, ownerID)

	tenantRepo := new(MockTenantRepository)
	filter := shared.DefaultFilter()
	filter.Search = "Otieno"
	tenantRepo.On("Search", mock.Anything, ownerID, "Otieno", filter).
		Return(shared.NewPaginated([]*letting.Tenant{tenant}, 1, 1, 20), nil)

	svc := NewTenantService(tenantRepo, new(MockTenancyRepository), zap.NewNop())
	page, err := svc.List(context.Background(), ownerID, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, tenant.FullName, page.Items[0].FullName)
}
