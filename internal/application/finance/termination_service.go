package finance

import (
	"context"
	"time"

	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"go.uber.org/zap"
)

// TerminationService ends tenancies early. Planning is pure and side-effect
// free; applying runs in one database transaction through the
// TerminationApplier so the tenancy never ends with its future charges still
// on the books. A PRECONDITION_FAILED from the applier means the tenancy
// changed between plan and apply; the caller re-fetches and retries, this
// service never retries on its own.
type TerminationService struct {
	tenancyRepo letting.TenancyRepository
	txnRepo     finance.RevenueTransactionRepository
	applier     finance.TerminationApplier
	logger      *zap.Logger
}

// NewTerminationService creates a new termination service
func NewTerminationService(
	tenancyRepo letting.TenancyRepository,
	txnRepo finance.RevenueTransactionRepository,
	applier finance.TerminationApplier,
	logger *zap.Logger,
) *TerminationService {
	return &TerminationService{
		tenancyRepo: tenancyRepo,
		txnRepo:     txnRepo,
		applier:     applier,
		logger:      logger,
	}
}

// Preview computes the termination plan without applying it, so the landlord
// sees which charges would be deleted before committing.
func (s *TerminationService) Preview(ctx context.Context, input TerminateTenancyInput) (*TerminationPlanResponse, error) {
	plan, err := s.plan(ctx, input)
	if err != nil {
		return nil, err
	}
	return toTerminationPlanResponse(plan), nil
}

// Terminate plans and applies an early termination
func (s *TerminationService) Terminate(ctx context.Context, input TerminateTenancyInput) (*TerminationPlanResponse, error) {
	plan, err := s.plan(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.applier.ApplyPlan(ctx, plan, input.EndReason); err != nil {
		s.logger.Error("Failed to apply termination plan",
			zap.String("tenancy_id", input.TenancyID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Tenancy terminated early",
		zap.String("tenancy_id", plan.TenancyID.String()),
		zap.Time("new_end_date", plan.NewEndDate),
		zap.Int("charges_deleted", len(plan.ChargesToDelete)),
		zap.String("amount_released", plan.AmountReleased.String()))

	return toTerminationPlanResponse(plan), nil
}

func (s *TerminationService) plan(ctx context.Context, input TerminateTenancyInput) (*finance.TerminationPlan, error) {
	tenancy, err := s.tenancyRepo.FindByIDForOwner(ctx, input.OwnerID, input.TenancyID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txnRepo.FindByTenancy(ctx, input.OwnerID, input.TenancyID)
	if err != nil {
		return nil, err
	}

	// Termination works in whole days. The end date is floored to midnight UTC
	// so a caller passing an instant cannot land a same-day termination in the
	// future relative to today's midnight
	return finance.PlanEarlyTermination(tenancy, transactions, dateOnly(input.NewEndDate), today())
}

// today returns midnight UTC of the current day
func today() time.Time {
	return dateOnly(time.Now())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
