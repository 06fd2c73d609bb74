package persistence

import (
	"context"

	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenancyChargeWriter persists a new tenancy together with its generated
// charge schedule in one database transaction, so a tenancy never exists
// without its charges or vice versa.
type GormTenancyChargeWriter struct {
	db *gorm.DB
}

// NewGormTenancyChargeWriter creates a new GormTenancyChargeWriter
func NewGormTenancyChargeWriter(db *gorm.DB) *GormTenancyChargeWriter {
	return &GormTenancyChargeWriter{db: db}
}

// CreateTenancyWithCharges saves the tenancy and its charges atomically
func (w *GormTenancyChargeWriter) CreateTenancyWithCharges(ctx context.Context, tenancy *letting.Tenancy, charges []*finance.RevenueTransaction) error {
	if tenancy == nil {
		return shared.NewValidationError("Tenancy is required")
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.TenancyModelFromDomain(tenancy)).Error; err != nil {
			return err
		}

		if len(charges) == 0 {
			return nil
		}

		chargeModels := make([]*models.RevenueTransactionModel, len(charges))
		for i, c := range charges {
			chargeModels[i] = models.RevenueTransactionModelFromDomain(c)
		}
		return tx.Create(chargeModels).Error
	})
}

// Ensure GormTenancyChargeWriter implements TenancyChargeWriter
var _ finance.TenancyChargeWriter = (*GormTenancyChargeWriter)(nil)
