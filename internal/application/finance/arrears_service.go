package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"go.uber.org/zap"
)

// ArrearsService computes arrears ledgers for a landlord's portfolio. The
// heavy lifting lives in the domain calculator; this service only loads the
// transactions and shapes the result.
type ArrearsService struct {
	txnRepo    finance.RevenueTransactionRepository
	calculator *finance.ArrearsCalculator
	logger     *zap.Logger
}

// NewArrearsService creates a new arrears service
func NewArrearsService(
	txnRepo finance.RevenueTransactionRepository,
	calculator *finance.ArrearsCalculator,
	logger *zap.Logger,
) *ArrearsService {
	return &ArrearsService{
		txnRepo:    txnRepo,
		calculator: calculator,
		logger:     logger,
	}
}

// Ledger builds the arrears ledger and its portfolio roll-up as of the given
// instant. A zero asOf means now. Overdue-ness is derived from due dates at
// computation time, so passing a historical asOf reproduces that day's ledger.
func (s *ArrearsService) Ledger(ctx context.Context, ownerID uuid.UUID, asOf time.Time) (*ArrearsLedgerResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	transactions, err := s.txnRepo.FindAllUnsettled(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to load unsettled transactions",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	entries, err := s.calculator.ComputeArrears(transactions, asOf)
	if err != nil {
		s.logger.Error("Arrears computation failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}
	portfolio := s.calculator.AggregatePortfolio(entries)
	threshold := s.calculator.CriticalThresholdDays()

	resp := &ArrearsLedgerResponse{
		AsOf:    asOf,
		Entries: make([]ArrearEntryResponse, 0, len(entries)),
		Portfolio: PortfolioArrearsResponse{
			TotalArrears:       portfolio.TotalArrears,
			Count:              portfolio.Count,
			LongestOverdueDays: portfolio.LongestOverdueDays,
			CriticalCount:      portfolio.CriticalCount,
		},
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ArrearEntryResponse{
			TenancyID:   e.TenancyID,
			AmountOwed:  e.AmountOwed,
			DueDate:     e.DueDate,
			DaysOverdue: e.DaysOverdue,
			ChargeCount: e.ChargeCount,
			Critical:    e.IsCritical(threshold),
		})
	}

	return resp, nil
}

// Summary returns the portfolio roll-up without the per-tenancy entries
func (s *ArrearsService) Summary(ctx context.Context, ownerID uuid.UUID, asOf time.Time) (*ArrearsSummaryResponse, error) {
	ledger, err := s.Ledger(ctx, ownerID, asOf)
	if err != nil {
		return nil, err
	}
	return &ArrearsSummaryResponse{AsOf: ledger.AsOf, Portfolio: ledger.Portfolio}, nil
}

// TenancyArrears returns the outstanding position of one tenancy, or nil if
// the tenancy owes nothing
func (s *ArrearsService) TenancyArrears(ctx context.Context, ownerID, tenancyID uuid.UUID, asOf time.Time) (*ArrearEntryResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	transactions, err := s.txnRepo.FindByTenancy(ctx, ownerID, tenancyID)
	if err != nil {
		return nil, err
	}

	entry, err := s.calculator.ComputeTenancyArrears(transactions, tenancyID, asOf)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	return &ArrearEntryResponse{
		TenancyID:   entry.TenancyID,
		AmountOwed:  entry.AmountOwed,
		DueDate:     entry.DueDate,
		DaysOverdue: entry.DaysOverdue,
		ChargeCount: entry.ChargeCount,
		Critical:    entry.IsCritical(s.calculator.CriticalThresholdDays()),
	}, nil
}
