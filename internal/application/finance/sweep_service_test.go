package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweepService_SweepOverdue(t *testing.T) {
	asOf := date(2025, 6, 15)
	ownerID := uuid.New()
	tenancyID := uuid.New()

	t.Run("flips due pending charges to overdue", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		service := NewSweepService(txnRepo, zap.NewNop())

		first := pendingCharge(t, ownerID, tenancyID, date(2025, 5, 1))
		second := pendingCharge(t, ownerID, tenancyID, date(2025, 6, 1))

		txnRepo.On("FindDuePending", mock.Anything, asOf, 100).
			Return([]*finance.RevenueTransaction{first, second}, nil).Once()
		txnRepo.On("SaveBatch", mock.Anything, mock.MatchedBy(func(batch []*finance.RevenueTransaction) bool {
			return len(batch) == 2 &&
				batch[0].Status == finance.TransactionStatusOverdue &&
				batch[1].Status == finance.TransactionStatusOverdue
		})).Return(nil).Once()

		result, err := service.SweepOverdue(context.Background(), asOf, 100)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		assert.Equal(t, 2, result.Flipped)
		txnRepo.AssertExpectations(t)
	})

	t.Run("drains the backlog across batches", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		service := NewSweepService(txnRepo, zap.NewNop())

		first := pendingCharge(t, ownerID, tenancyID, date(2025, 4, 1))
		second := pendingCharge(t, ownerID, tenancyID, date(2025, 5, 1))

		txnRepo.On("FindDuePending", mock.Anything, asOf, 1).
			Return([]*finance.RevenueTransaction{first}, nil).Once()
		txnRepo.On("FindDuePending", mock.Anything, asOf, 1).
			Return([]*finance.RevenueTransaction{second}, nil).Once()
		txnRepo.On("FindDuePending", mock.Anything, asOf, 1).
			Return([]*finance.RevenueTransaction{}, nil).Once()
		txnRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil).Twice()

		result, err := service.SweepOverdue(context.Background(), asOf, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		assert.Equal(t, 2, result.Flipped)
		txnRepo.AssertExpectations(t)
	})

	t.Run("empty backlog is a clean no-op", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		service := NewSweepService(txnRepo, zap.NewNop())

		txnRepo.On("FindDuePending", mock.Anything, asOf, 100).
			Return([]*finance.RevenueTransaction{}, nil).Once()

		result, err := service.SweepOverdue(context.Background(), asOf, 100)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Scanned)
		assert.Equal(t, 0, result.Flipped)
		txnRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive batch size", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		service := NewSweepService(txnRepo, zap.NewNop())

		_, err := service.SweepOverdue(context.Background(), asOf, 0)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}
