package finance

import (
	"context"
	"errors"
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeTenancy(t *testing.T, ownerID uuid.UUID) *letting.Tenancy {
	t.Helper()
	end := date(2025, 12, 31)
	tc, err := letting.NewTenancy(ownerID, uuid.New(), uuid.New(),
		date(2025, 1, 1), &end,
		valueobject.NewMoneyKESFromFloat(45000), valueobject.ZeroKES(),
		letting.FrequencyMonthly)
	require.NoError(t, err)
	return tc
}

func pendingCharge(t *testing.T, ownerID, tenancyID uuid.UUID, due time.Time) *finance.RevenueTransaction {
	t.Helper()
	txn, err := finance.NewRevenueTransaction(ownerID, tenancyID, uuid.New(),
		finance.CategoryRent, valueobject.NewMoneyKESFromFloat(45000),
		due, "Rent for period starting "+due.Format("2006-01-02"))
	require.NoError(t, err)
	return txn
}

func newTransactionService(txnRepo *MockTransactionRepository, tenancyRepo *MockTenancyRepository) *TransactionService {
	return NewTransactionService(txnRepo, tenancyRepo, newMemoryIdempotencyStore(),
		shared.DefaultIdempotencyConfig(), zap.NewNop())
}

func TestTransactionService_CreateCharge(t *testing.T) {
	ownerID := uuid.New()

	t.Run("raises penalty against owned tenancy", func(t *testing.T) {
		tenancy := activeTenancy(t, ownerID)
		txnRepo := new(MockTransactionRepository)
		tenancyRepo := new(MockTenancyRepository)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancy.ID).Return(tenancy, nil)
		txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.RevenueTransaction")).Return(nil)

		svc := newTransactionService(txnRepo, tenancyRepo)
		resp, err := svc.CreateCharge(context.Background(), CreateChargeInput{
			OwnerID:     ownerID,
			TenancyID:   tenancy.ID,
			Category:    "PENALTY",
			Amount:      decimal.NewFromInt(2000),
			DueDate:     date(2025, 3, 1),
			Description: "Late payment penalty",
		})
		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, tenancy.PropertyID, resp.PropertyID)
		txnRepo.AssertExpectations(t)
	})

	t.Run("rejects tenancy of another landlord", func(t *testing.T) {
		tenancyID := uuid.New()
		tenancyRepo := new(MockTenancyRepository)
		tenancyRepo.On("FindByIDForOwner", mock.Anything, ownerID, tenancyID).Return(nil, shared.ErrNotFound)

		svc := newTransactionService(new(MockTransactionRepository), tenancyRepo)
		_, err := svc.CreateCharge(context.Background(), CreateChargeInput{
			OwnerID:   ownerID,
			TenancyID: tenancyID,
			Category:  "PENALTY",
			Amount:    decimal.NewFromInt(2000),
			DueDate:   date(2025, 3, 1),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTransactionService_RecordPayment(t *testing.T) {
	ownerID := uuid.New()

	t.Run("settles a pending charge", func(t *testing.T) {
		txn := pendingCharge(t, ownerID, uuid.New(), date(2025, 2, 1))
		txnRepo := new(MockTransactionRepository)
		txnRepo.On("FindByIDForOwner", mock.Anything, ownerID, txn.ID).Return(txn, nil)
		txnRepo.On("Save", mock.Anything, txn).Return(nil)

		svc := newTransactionService(txnRepo, new(MockTenancyRepository))
		resp, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			OwnerID:       ownerID,
			TransactionID: txn.ID,
			PaymentDate:   date(2025, 2, 3),
			Method:        "MPESA",
			Reference:     "SBK72HF9QX",
		})
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.Equal(t, "SBK72HF9QX", resp.PaymentRef)
	})

	t.Run("replayed idempotency key settles once", func(t *testing.T) {
		txn := pendingCharge(t, ownerID, uuid.New(), date(2025, 2, 1))
		txnRepo := new(MockTransactionRepository)
		txnRepo.On("FindByIDForOwner", mock.Anything, ownerID, txn.ID).Return(txn, nil)
		txnRepo.On("Save", mock.Anything, txn).Return(nil).Once()

		svc := newTransactionService(txnRepo, new(MockTenancyRepository))
		input := RecordPaymentInput{
			OwnerID:        ownerID,
			TransactionID:  txn.ID,
			PaymentDate:    date(2025, 2, 3),
			Method:         "MPESA",
			Reference:      "SBK72HF9QX",
			IdempotencyKey: "cb-7731",
		}

		first, err := svc.RecordPayment(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "PAID", first.Status)

		// Same key replayed: no second MarkPaid, no error
		second, err := svc.RecordPayment(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "PAID", second.Status)
		txnRepo.AssertExpectations(t)
	})

	t.Run("failed save does not burn the idempotency key", func(t *testing.T) {
		txn := pendingCharge(t, ownerID, uuid.New(), date(2025, 2, 1))
		reloaded := pendingCharge(t, ownerID, txn.TenancyID, date(2025, 2, 1))
		reloaded.ID = txn.ID

		txnRepo := new(MockTransactionRepository)
		txnRepo.On("FindByIDForOwner", mock.Anything, ownerID, txn.ID).Return(txn, nil).Once()
		txnRepo.On("FindByIDForOwner", mock.Anything, ownerID, txn.ID).Return(reloaded, nil).Once()
		txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.RevenueTransaction")).
			Return(errors.New("connection reset")).Once()
		txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.RevenueTransaction")).
			Return(nil).Once()

		svc := newTransactionService(txnRepo, new(MockTenancyRepository))
		input := RecordPaymentInput{
			OwnerID:        ownerID,
			TransactionID:  txn.ID,
			PaymentDate:    date(2025, 2, 3),
			Method:         "MPESA",
			Reference:      "SBK72HF9QX",
			IdempotencyKey: "cb-7731",
		}

		_, err := svc.RecordPayment(context.Background(), input)
		require.Error(t, err)

		// The retry with the same key must settle the charge, not be answered
		// from the reservation left by the failed attempt
		resp, err := svc.RecordPayment(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		txnRepo.AssertExpectations(t)
	})

	t.Run("double payment without key is an error", func(t *testing.T) {
		txn := pendingCharge(t, ownerID, uuid.New(), date(2025, 2, 1))
		require.NoError(t, txn.MarkPaid(date(2025, 2, 3), finance.PaymentMethodMpesa, "SBK72HF9QX"))

		txnRepo := new(MockTransactionRepository)
		txnRepo.On("FindByIDForOwner", mock.Anything, ownerID, txn.ID).Return(txn, nil)

		svc := newTransactionService(txnRepo, new(MockTenancyRepository))
		_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			OwnerID:       ownerID,
			TransactionID: txn.ID,
			PaymentDate:   date(2025, 2, 4),
			Method:        "CASH",
		})
		require.Error(t, err)
		var dErr *shared.DomainError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, "ALREADY_PAID", dErr.Code)
	})
}

func TestTransactionService_List(t *testing.T) {
	ownerID := uuid.New()
	txn := pendingCharge(t, ownerID, uuid.New(), date(2025, 2, 1))

	txnRepo := new(MockTransactionRepository)
	filter := shared.DefaultFilter()
	txnRepo.On("FindByQuery", mock.Anything, ownerID, mock.Anything, filter).
		Return(shared.NewPaginated([]*finance.RevenueTransaction{txn}, 1, 1, 20), nil)

	svc := newTransactionService(txnRepo, new(MockTenancyRepository))
	page, err := svc.List(context.Background(), ListTransactionsInput{
		OwnerID: ownerID,
		Status:  "PENDING",
	}, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, txn.ID, page.Items[0].ID)
}
