package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
)

func setupTerminationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TenancyModel{}, &models.RevenueTransactionModel{})
	require.NoError(t, err)

	return db
}

// seedTenancyWithCharges persists an active tenancy with one past-due and two
// future charges, then returns the pieces needed to plan a termination.
func seedTenancyWithCharges(t *testing.T, db *gorm.DB) (*letting.Tenancy, []*finance.RevenueTransaction) {
	t.Helper()
	ctx := context.Background()

	ownerID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	tenancy := newTestTenancy(t, ownerID, uuid.New(), uuid.New(), start, &end)
	require.NoError(t, NewGormTenancyRepository(db).Save(ctx, tenancy))

	charges := []*finance.RevenueTransaction{
		newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
		newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, NewGormRevenueTransactionRepository(db).SaveBatch(ctx, charges))

	return tenancy, charges
}

func TestGormTerminationApplier_ApplyPlan(t *testing.T) {
	db := setupTerminationTestDB(t)
	applier := NewGormTerminationApplier(db)
	txnRepo := NewGormRevenueTransactionRepository(db)
	tenancyRepo := NewGormTenancyRepository(db)
	ctx := context.Background()

	tenancy, charges := seedTenancyWithCharges(t, db)

	newEndDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	plan, err := finance.PlanEarlyTermination(tenancy, charges, newEndDate, today)
	require.NoError(t, err)
	require.Len(t, plan.ChargesToDelete, 2)

	require.NoError(t, applier.ApplyPlan(ctx, plan, "Tenant relocated"))

	// Tenancy ended with the new end date
	found, err := tenancyRepo.FindByID(ctx, tenancy.ID)
	require.NoError(t, err)
	assert.Equal(t, letting.TenancyStatusEnded, found.Status)
	assert.Equal(t, "Tenant relocated", found.EndReason)
	require.NotNil(t, found.EndDate)
	assert.True(t, found.EndDate.Equal(newEndDate))

	// Future charges gone, past-due charge survives
	remaining, err := txnRepo.FindByTenancy(ctx, tenancy.OwnerID, tenancy.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].DueDate.Equal(charges[0].DueDate))
}

func TestGormTerminationApplier_StaleVersionRefused(t *testing.T) {
	db := setupTerminationTestDB(t)
	applier := NewGormTerminationApplier(db)
	txnRepo := NewGormRevenueTransactionRepository(db)
	tenancyRepo := NewGormTenancyRepository(db)
	ctx := context.Background()

	tenancy, charges := seedTenancyWithCharges(t, db)

	newEndDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	plan, err := finance.PlanEarlyTermination(tenancy, charges, newEndDate, today)
	require.NoError(t, err)

	// The tenancy moves underneath the plan
	require.NoError(t, tenancy.Renew(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, tenancyRepo.Save(ctx, tenancy))

	err = applier.ApplyPlan(ctx, plan, "Tenant relocated")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodePreconditionFailed, domainErr.Code)

	// Nothing was applied: all charges intact, tenancy still active
	remaining, err := txnRepo.FindByTenancy(ctx, tenancy.OwnerID, tenancy.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)

	found, err := tenancyRepo.FindByID(ctx, tenancy.ID)
	require.NoError(t, err)
	assert.Equal(t, letting.TenancyStatusActive, found.Status)
}

func TestGormTerminationApplier_SettledChargeInvalidatesPlan(t *testing.T) {
	db := setupTerminationTestDB(t)
	applier := NewGormTerminationApplier(db)
	txnRepo := NewGormRevenueTransactionRepository(db)
	ctx := context.Background()

	tenancy, charges := seedTenancyWithCharges(t, db)

	newEndDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	plan, err := finance.PlanEarlyTermination(tenancy, charges, newEndDate, today)
	require.NoError(t, err)

	// One planned charge gets paid between planning and applying
	require.NoError(t, charges[1].MarkPaid(today, finance.PaymentMethodMpesa, "SBK72HF9QX"))
	require.NoError(t, txnRepo.Save(ctx, charges[1]))

	err = applier.ApplyPlan(ctx, plan, "Tenant relocated")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodePreconditionFailed, domainErr.Code)

	// The transaction rolled back: the other planned charge is still there
	remaining, err := txnRepo.FindByTenancy(ctx, tenancy.OwnerID, tenancy.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}
