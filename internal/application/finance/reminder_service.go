package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"go.uber.org/zap"
)

// ReminderService turns the arrears ledger into dispatch-ready payment
// reminders with the tenant's name and phone resolved. Actual delivery (SMS,
// WhatsApp) is the caller's concern.
type ReminderService struct {
	txnRepo     finance.RevenueTransactionRepository
	tenancyRepo letting.TenancyRepository
	tenantRepo  letting.TenantRepository
	calculator  *finance.ArrearsCalculator
	logger      *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	txnRepo finance.RevenueTransactionRepository,
	tenancyRepo letting.TenancyRepository,
	tenantRepo letting.TenantRepository,
	calculator *finance.ArrearsCalculator,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		txnRepo:     txnRepo,
		tenancyRepo: tenancyRepo,
		tenantRepo:  tenantRepo,
		calculator:  calculator,
		logger:      logger,
	}
}

// BuildReminders produces one reminder per tenancy in arrears, oldest debt
// first. A tenancy whose tenant record cannot be resolved is skipped with a
// warning rather than failing the whole batch; the arrears ledger itself is
// still strict about corrupted charges.
func (s *ReminderService) BuildReminders(ctx context.Context, ownerID uuid.UUID, asOf time.Time) ([]ReminderResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	transactions, err := s.txnRepo.FindAllUnsettled(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.calculator.ComputeArrears(transactions, asOf)
	if err != nil {
		return nil, err
	}

	threshold := s.calculator.CriticalThresholdDays()
	reminders := make([]ReminderResponse, 0, len(entries))
	for _, entry := range entries {
		tenancy, err := s.tenancyRepo.FindByIDForOwner(ctx, ownerID, entry.TenancyID)
		if err != nil {
			s.logger.Warn("Skipping reminder, tenancy not resolvable",
				zap.String("tenancy_id", entry.TenancyID.String()),
				zap.Error(err))
			continue
		}
		tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, tenancy.TenantID)
		if err != nil {
			s.logger.Warn("Skipping reminder, tenant not resolvable",
				zap.String("tenant_id", tenancy.TenantID.String()),
				zap.Error(err))
			continue
		}

		reminders = append(reminders, ReminderResponse{
			TenancyID:   entry.TenancyID,
			TenantName:  tenant.FullName,
			TenantPhone: tenant.Phone,
			AmountOwed:  entry.AmountOwed,
			DaysOverdue: entry.DaysOverdue,
			Critical:    entry.IsCritical(threshold),
			Message:     reminderMessage(tenant.FullName, entry),
		})
	}

	return reminders, nil
}

func reminderMessage(name string, entry finance.ArrearEntry) string {
	return fmt.Sprintf(
		"Dear %s, your rent account is in arrears of KES %s, outstanding for %d days. Kindly settle at your earliest convenience.",
		name, entry.GetAmountOwedMoney().StringFixed(2), entry.DaysOverdue)
}
