package persistence

import (
	"context"
	"errors"

	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTerminationApplier applies early-termination plans in a single
// database transaction. The plan carries a snapshot of the tenancy it was
// computed against; the applier re-reads the row inside the transaction and
// refuses to proceed when the owner, status or version no longer match.
// Either every planned charge is deleted and the tenancy ends, or nothing
// changes.
type GormTerminationApplier struct {
	db *gorm.DB
}

// NewGormTerminationApplier creates a new GormTerminationApplier
func NewGormTerminationApplier(db *gorm.DB) *GormTerminationApplier {
	return &GormTerminationApplier{db: db}
}

// ApplyPlan executes the termination plan atomically
func (a *GormTerminationApplier) ApplyPlan(ctx context.Context, plan *finance.TerminationPlan, endReason string) error {
	if plan == nil {
		return shared.NewValidationError("Termination plan is required")
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.TenancyModel
		if err := tx.Where("owner_id = ? AND id = ?", plan.OwnerID, plan.TenancyID).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		tenancy := model.ToDomain()
		if !tenancy.IsActive() {
			return shared.NewPreconditionFailure("Tenancy is no longer active")
		}
		if tenancy.GetVersion() != plan.TenancyVersion {
			return shared.NewPreconditionFailure("Tenancy was modified after the plan was computed")
		}

		if ids := plan.ChargeIDs(); len(ids) > 0 {
			result := tx.Delete(&models.RevenueTransactionModel{},
				"owner_id = ? AND id IN ? AND status <> ?",
				plan.OwnerID, ids, finance.TransactionStatusPaid)
			if result.Error != nil {
				return result.Error
			}
			// A planned charge that vanished or got settled since planning
			// means the plan is stale.
			if result.RowsAffected != int64(len(ids)) {
				return shared.NewPreconditionFailure("Planned charges changed after the plan was computed")
			}
		}

		if err := tenancy.End(plan.NewEndDate, endReason); err != nil {
			return err
		}

		return tx.Save(models.TenancyModelFromDomain(tenancy)).Error
	})
}

// Ensure GormTerminationApplier implements TerminationApplier
var _ finance.TerminationApplier = (*GormTerminationApplier)(nil)
