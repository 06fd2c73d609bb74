package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// TransactionService handles charge and payment operations
type TransactionService struct {
	txnRepo           finance.RevenueTransactionRepository
	tenancyRepo       letting.TenancyRepository
	idempotencyStore  shared.IdempotencyStore
	idempotencyConfig shared.IdempotencyConfig
	publisher         shared.EventPublisher
	logger            *zap.Logger
}

// TransactionServiceOption configures optional service dependencies
type TransactionServiceOption func(*TransactionService)

// WithTransactionEventPublisher wires an event publisher for charge and payment events
func WithTransactionEventPublisher(publisher shared.EventPublisher) TransactionServiceOption {
	return func(s *TransactionService) {
		s.publisher = publisher
	}
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo finance.RevenueTransactionRepository,
	tenancyRepo letting.TenancyRepository,
	idempotencyStore shared.IdempotencyStore,
	idempotencyConfig shared.IdempotencyConfig,
	logger *zap.Logger,
	opts ...TransactionServiceOption,
) *TransactionService {
	s := &TransactionService{
		txnRepo:           txnRepo,
		tenancyRepo:       tenancyRepo,
		idempotencyStore:  idempotencyStore,
		idempotencyConfig: idempotencyConfig,
		logger:            logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishEvents drains and publishes the transaction's recorded events after
// the state change is persisted. Best-effort; a failed publish is logged.
func (s *TransactionService) publishEvents(ctx context.Context, agg shared.AggregateRoot) {
	if err := shared.PublishRecorded(ctx, s.publisher, agg); err != nil {
		s.logger.Warn("Failed to publish transaction events", zap.Error(err))
	}
}

// CreateCharge raises a manual charge against a tenancy. The scheduled rent
// charges come from tenancy creation; this covers everything else: penalties,
// utility recharges, a deposit top-up.
func (s *TransactionService) CreateCharge(ctx context.Context, input CreateChargeInput) (*TransactionResponse, error) {
	tenancy, err := s.tenancyRepo.FindByIDForOwner(ctx, input.OwnerID, input.TenancyID)
	if err != nil {
		return nil, err
	}

	txn, err := finance.NewRevenueTransaction(
		input.OwnerID,
		tenancy.ID,
		tenancy.PropertyID,
		finance.TransactionCategory(input.Category),
		valueobject.NewMoneyKES(input.Amount),
		input.DueDate,
		input.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Save(ctx, txn); err != nil {
		s.logger.Error("Failed to save charge",
			zap.String("tenancy_id", input.TenancyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create charge")
	}

	s.publishEvents(ctx, txn)

	s.logger.Info("Charge created",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("tenancy_id", tenancy.ID.String()),
		zap.String("category", input.Category))

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// RecordPayment settles a charge. When an idempotency key is supplied a
// replayed request (a retried M-Pesa callback, a double-clicked form) returns
// the already-settled transaction instead of failing on the terminal PAID
// state.
func (s *TransactionService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByIDForOwner(ctx, input.OwnerID, input.TransactionID)
	if err != nil {
		return nil, err
	}

	// The key is reserved atomically up front so two racing callbacks cannot
	// both settle the charge. If the settlement fails after the reservation,
	// the key is released again so a retry is not answered from a reservation
	// that never produced a payment.
	reserved := false
	if input.IdempotencyKey != "" && s.idempotencyConfig.Enabled {
		fresh, err := s.idempotencyStore.MarkProcessed(ctx, paymentIdempotencyKey(input), s.idempotencyConfig.TTL)
		if err != nil {
			s.logger.Error("Idempotency store unavailable", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record payment")
		}
		if !fresh {
			s.logger.Info("Duplicate payment request ignored",
				zap.String("transaction_id", input.TransactionID.String()),
				zap.String("idempotency_key", input.IdempotencyKey))
			resp := ToTransactionResponse(txn)
			return &resp, nil
		}
		reserved = true
	}

	if err := txn.MarkPaid(input.PaymentDate, finance.PaymentMethod(input.Method), input.Reference); err != nil {
		s.releaseReservation(ctx, input, reserved)
		return nil, err
	}

	if err := s.txnRepo.Save(ctx, txn); err != nil {
		s.logger.Error("Failed to save payment",
			zap.String("transaction_id", input.TransactionID.String()),
			zap.Error(err))
		s.releaseReservation(ctx, input, reserved)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record payment")
	}

	s.publishEvents(ctx, txn)

	s.logger.Info("Payment recorded",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("method", input.Method),
		zap.String("reference", input.Reference))

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

func paymentIdempotencyKey(input RecordPaymentInput) string {
	return "payment:" + input.TransactionID.String() + ":" + input.IdempotencyKey
}

// releaseReservation rolls back an idempotency reservation after a failed
// settlement. A failed release leaves the key behind until its TTL expires,
// which blocks retries with the same key, so it is logged loudly.
func (s *TransactionService) releaseReservation(ctx context.Context, input RecordPaymentInput, reserved bool) {
	if !reserved {
		return
	}
	if err := s.idempotencyStore.Release(ctx, paymentIdempotencyKey(input)); err != nil {
		s.logger.Error("Failed to release idempotency key after failed payment",
			zap.String("transaction_id", input.TransactionID.String()),
			zap.String("idempotency_key", input.IdempotencyKey),
			zap.Error(err))
	}
}

// Get returns a single transaction scoped to the landlord
func (s *TransactionService) Get(ctx context.Context, ownerID, transactionID uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByIDForOwner(ctx, ownerID, transactionID)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// List returns the landlord's transactions narrowed by the given input
func (s *TransactionService) List(ctx context.Context, input ListTransactionsInput, filter shared.Filter) (shared.Paginated[TransactionResponse], error) {
	query := finance.TransactionQuery{
		TenancyID:  input.TenancyID,
		PropertyID: input.PropertyID,
		Status:     finance.TransactionStatus(input.Status),
		Category:   finance.TransactionCategory(input.Category),
		DueFrom:    input.DueFrom,
		DueTo:      input.DueTo,
	}

	page, err := s.txnRepo.FindByQuery(ctx, input.OwnerID, query, filter)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}

	items := make([]TransactionResponse, 0, len(page.Items))
	for _, txn := range page.Items {
		items = append(items, ToTransactionResponse(txn))
	}
	return shared.NewPaginated(items, page.Total, filter.Page, filter.PageSize), nil
}
