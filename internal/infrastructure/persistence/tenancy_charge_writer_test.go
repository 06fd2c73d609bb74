package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTenancyChargeWriter_CreateTenancyWithCharges(t *testing.T) {
	db := setupTerminationTestDB(t)
	writer := NewGormTenancyChargeWriter(db)
	tenancyRepo := NewGormTenancyRepository(db)
	txnRepo := NewGormRevenueTransactionRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	tenancy := newTestTenancy(t, ownerID, uuid.New(), uuid.New(), start, &end)

	charges := []*finance.RevenueTransaction{
		newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, writer.CreateTenancyWithCharges(ctx, tenancy, charges))

	found, err := tenancyRepo.FindByID(ctx, tenancy.ID)
	require.NoError(t, err)
	assert.Equal(t, tenancy.ID, found.ID)

	persisted, err := txnRepo.FindByTenancy(ctx, ownerID, tenancy.ID)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestGormTenancyChargeWriter_NoCharges(t *testing.T) {
	db := setupTerminationTestDB(t)
	writer := NewGormTenancyChargeWriter(db)
	ctx := context.Background()

	tenancy := newTestTenancy(t, uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	require.NoError(t, writer.CreateTenancyWithCharges(ctx, tenancy, nil))

	found, err := NewGormTenancyRepository(db).FindByID(ctx, tenancy.ID)
	require.NoError(t, err)
	assert.Equal(t, tenancy.ID, found.ID)
}

func TestGormTenancyChargeWriter_DuplicateTenancyRollsBack(t *testing.T) {
	db := setupTerminationTestDB(t)
	writer := NewGormTenancyChargeWriter(db)
	txnRepo := NewGormRevenueTransactionRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	tenancy := newTestTenancy(t, ownerID, uuid.New(), uuid.New(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, writer.CreateTenancyWithCharges(ctx, tenancy, nil))

	// Inserting the same tenancy again violates the primary key; the charge
	// must not be left behind.
	charge := newTestCharge(t, ownerID, tenancy.ID, 45000, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	err := writer.CreateTenancyWithCharges(ctx, tenancy, []*finance.RevenueTransaction{charge})
	require.Error(t, err)

	persisted, err := txnRepo.FindByTenancy(ctx, ownerID, tenancy.ID)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}
