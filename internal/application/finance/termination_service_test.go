package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// terminationFixture builds a tenancy that started well in the past so early
// termination dates are never in the future
func terminationFixture(t *testing.T, ownerID uuid.UUID) (*letting.Tenancy, []*finance.RevenueTransaction) {
	t.Helper()
	start := time.Now().UTC().AddDate(-1, 0, 0)
	end := start.AddDate(2, 0, 0)
	tenancy, err := letting.NewTenancy(ownerID, uuid.New(), uuid.New(),
		start, &end,
		valueobject.NewMoneyKESFromFloat(45000), valueobject.ZeroKES(),
		letting.FrequencyMonthly)
	require.NoError(t, err)

	txns := []*finance.RevenueTransaction{
		pendingCharge(t, ownerID, tenancy.ID, start),                   // long overdue, survives
		pendingCharge(t, ownerID, tenancy.ID, start.AddDate(1, 1, 0)),  // future, deleted
		pendingCharge(t, ownerID, tenancy.ID, start.AddDate(1, 2, 0)),  // future, deleted
	}
	return tenancy, txns
}

func TestTerminationService_Preview(t *testing.T) {
	ownerID := uuid.New()
	tenancy, txns := terminationFixture(t, ownerID)
	newEnd := tenancy.StartDate.AddDate(1, 0, 0)

	tenancyRepo := new(MockTenancyRepository)
	txnRepo := new(MockTransactionRepository)
	applier := new(MockTerminationApplier)
	tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
	txnRepo.On("FindByTenancy", mock.Anything, ownerID, tenancy.ID).Return(txns, nil)

	svc := NewTerminationService(tenancyRepo, txnRepo, applier, zap.NewNop())
	plan, err := svc.Preview(context.Background(), TerminateTenancyInput{
		OwnerID:    ownerID,
		TenancyID:  tenancy.ID,
		NewEndDate: newEnd,
	})
	require.NoError(t, err)
	assert.Len(t, plan.ChargesToDelete, 2)
	assert.True(t, plan.AmountReleased.Equal(decimal.NewFromInt(90000)))
	applier.AssertNotCalled(t, "ApplyPlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestTerminationService_Terminate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("applies the plan atomically", func(t *testing.T) {
		tenancy, txns := terminationFixture(t, ownerID)
		newEnd := tenancy.StartDate.AddDate(1, 0, 0)

		tenancyRepo := new(MockTenancyRepository)
		txnRepo := new(MockTransactionRepository)
		applier := new(MockTerminationApplier)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
		txnRepo.On("FindByTenancy", mock.Anything, ownerID, tenancy.ID).Return(txns, nil)
		applier.On("ApplyPlan", mock.Anything, mock.AnythingOfType("*finance.TerminationPlan"), "Tenant relocated").
			Return(nil)

		svc := NewTerminationService(tenancyRepo, txnRepo, applier, zap.NewNop())
		plan, err := svc.Terminate(context.Background(), TerminateTenancyInput{
			OwnerID:    ownerID,
			TenancyID:  tenancy.ID,
			NewEndDate: newEnd,
			EndReason:  "Tenant relocated",
		})
		require.NoError(t, err)
		assert.Len(t, plan.ChargesToDelete, 2)
		applier.AssertExpectations(t)
	})

	t.Run("stale snapshot surfaces precondition failure without retry", func(t *testing.T) {
		tenancy, txns := terminationFixture(t, ownerID)
		newEnd := tenancy.StartDate.AddDate(1, 0, 0)

		tenancyRepo := new(MockTenancyRepository)
		txnRepo := new(MockTransactionRepository)
		applier := new(MockTerminationApplier)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
		txnRepo.On("FindByTenancy", mock.Anything, ownerID, tenancy.ID).Return(txns, nil)
		applier.On("ApplyPlan", mock.Anything, mock.Anything, mock.Anything).
			Return(shared.NewPreconditionFailure("Tenancy changed since the plan was computed")).Once()

		svc := NewTerminationService(tenancyRepo, txnRepo, applier, zap.NewNop())
		_, err := svc.Terminate(context.Background(), TerminateTenancyInput{
			OwnerID:    ownerID,
			TenancyID:  tenancy.ID,
			NewEndDate: newEnd,
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, shared.CodePreconditionFailed, dErr.Code)
		applier.AssertNumberOfCalls(t, "ApplyPlan", 1)
	})

	t.Run("same-day end date carrying a time of day is accepted", func(t *testing.T) {
		tenancy, txns := terminationFixture(t, ownerID)

		tenancyRepo := new(MockTenancyRepository)
		txnRepo := new(MockTransactionRepository)
		applier := new(MockTerminationApplier)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
		txnRepo.On("FindByTenancy", mock.Anything, ownerID, tenancy.ID).Return(txns, nil)
		applier.On("ApplyPlan", mock.Anything, mock.AnythingOfType("*finance.TerminationPlan"), "").
			Return(nil)

		svc := NewTerminationService(tenancyRepo, txnRepo, applier, zap.NewNop())
		plan, err := svc.Terminate(context.Background(), TerminateTenancyInput{
			OwnerID:    ownerID,
			TenancyID:  tenancy.ID,
			NewEndDate: time.Now().UTC(), // an instant, not a date
		})
		require.NoError(t, err)
		assert.Equal(t, plan.NewEndDate, dateOnly(plan.NewEndDate))
		applier.AssertExpectations(t)
	})

	t.Run("future end date is rejected before the applier runs", func(t *testing.T) {
		tenancy, txns := terminationFixture(t, ownerID)

		tenancyRepo := new(MockTenancyRepository)
		txnRepo := new(MockTransactionRepository)
		applier := new(MockTerminationApplier)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
		txnRepo.On("FindByTenancy", mock.Anything, ownerID, tenancy.ID).Return(txns, nil)

		svc := NewTerminationService(tenancyRepo, txnRepo, applier, zap.NewNop())
		_, err := svc.Terminate(context.Background(), TerminateTenancyInput{
			OwnerID:    ownerID,
			TenancyID:  tenancy.ID,
			NewEndDate: time.Now().UTC().AddDate(0, 1, 0),
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, shared.CodeValidation, dErr.Code)
		applier.AssertNotCalled(t, "ApplyPlan", mock.Anything, mock.Anything, mock.Anything)
	})
}
