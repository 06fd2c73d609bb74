package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/identity"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLandlordRepository implements LandlordRepository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GormLandlordRepository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// FindByID finds a landlord by its ID
func (r *GormLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a landlord by email address
func (r *GormLandlordRepository) FindByEmail(ctx context.Context, email string) (*identity.Landlord, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if a landlord with the given email exists
func (r *GormLandlordRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LandlordModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a landlord
func (r *GormLandlordRepository) Save(ctx context.Context, landlord *identity.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a landlord
func (r *GormLandlordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LandlordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLandlordRepository implements LandlordRepository
var _ identity.LandlordRepository = (*GormLandlordRepository)(nil)
