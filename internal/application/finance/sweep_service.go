package finance

import (
	"context"
	"time"

	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SweepResult summarizes one overdue sweep run
type SweepResult struct {
	Scanned int `json:"scanned"`
	Flipped int `json:"flipped"`
}

// SweepService reconciles stored transaction statuses with the calendar.
// Arrears are always derived live from due dates, so a stale PENDING row never
// skews a ledger; the sweep exists so that stored statuses, list filters and
// exports catch up with reality.
type SweepService struct {
	txnRepo finance.RevenueTransactionRepository
	logger  *zap.Logger
}

// NewSweepService creates a new SweepService
func NewSweepService(txnRepo finance.RevenueTransactionRepository, logger *zap.Logger) *SweepService {
	return &SweepService{
		txnRepo: txnRepo,
		logger:  logger,
	}
}

// SweepOverdue flips PENDING transactions whose due date has passed to
// OVERDUE, in batches, until no due transactions remain or the context is
// cancelled. Batches are independent: a failed batch stops the run but
// earlier batches stay applied.
func (s *SweepService) SweepOverdue(ctx context.Context, asOf time.Time, batchSize int) (SweepResult, error) {
	if batchSize <= 0 {
		return SweepResult{}, shared.NewValidationError("Sweep batch size must be positive")
	}

	result := SweepResult{}
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		due, err := s.txnRepo.FindDuePending(ctx, asOf, batchSize)
		if err != nil {
			s.logger.Error("Overdue sweep failed to load due transactions", zap.Error(err))
			return result, shared.NewDomainError("INTERNAL_ERROR", "Failed to load due transactions")
		}
		if len(due) == 0 {
			return result, nil
		}
		result.Scanned += len(due)

		flipped := make([]*finance.RevenueTransaction, 0, len(due))
		for _, txn := range due {
			if err := txn.MarkOverdue(); err != nil {
				// A row another writer settled mid-sweep is fine to skip;
				// the next run no longer sees it.
				s.logger.Warn("Skipping transaction that cannot become overdue",
					zap.String("transaction_id", txn.ID.String()),
					zap.Error(err))
				continue
			}
			flipped = append(flipped, txn)
		}

		if len(flipped) > 0 {
			if err := s.txnRepo.SaveBatch(ctx, flipped); err != nil {
				s.logger.Error("Overdue sweep failed to save batch", zap.Error(err))
				return result, shared.NewDomainError("INTERNAL_ERROR", "Failed to save overdue transactions")
			}
			result.Flipped += len(flipped)
		}

		// A short batch means the backlog is drained
		if len(due) < batchSize {
			return result, nil
		}
	}
}
