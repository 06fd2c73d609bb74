package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService produces money-in / money-out summaries. Sums are computed in
// the database and returned as strings to avoid float drift; they are parsed
// back into decimals here.
type ReportService struct {
	txnRepo     finance.RevenueTransactionRepository
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	txnRepo finance.RevenueTransactionRepository,
	expenseRepo finance.ExpenseRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		txnRepo:     txnRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// PortfolioSummary reports collected revenue, expenses and net income for the
// landlord over the given period
func (s *ReportService) PortfolioSummary(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*PortfolioReportResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, shared.NewValidationError("Report period requires both from and to dates")
	}
	if to.Before(from) {
		return nil, shared.NewValidationError("Report period end cannot precede its start")
	}

	collectedStr, err := s.txnRepo.SumPaidBetween(ctx, ownerID, from, to)
	if err != nil {
		s.logger.Error("Failed to sum collected revenue", zap.Error(err))
		return nil, err
	}
	collected, err := parseSum(collectedStr)
	if err != nil {
		return nil, err
	}

	expensesStr, err := s.expenseRepo.SumBetween(ctx, ownerID, from, to)
	if err != nil {
		s.logger.Error("Failed to sum expenses", zap.Error(err))
		return nil, err
	}
	expenses, err := parseSum(expensesStr)
	if err != nil {
		return nil, err
	}

	return &PortfolioReportResponse{
		From:           from,
		To:             to,
		TotalCollected: collected,
		TotalExpenses:  expenses,
		NetIncome:      collected.Sub(expenses),
	}, nil
}

func parseSum(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.NewDataIntegrityError("Stored monetary sum is not a valid decimal: " + s)
	}
	return d, nil
}
