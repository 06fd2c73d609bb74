package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenancyRepository implements TenancyRepository using GORM
type GormTenancyRepository struct {
	db *gorm.DB
}

// NewGormTenancyRepository creates a new GormTenancyRepository
func NewGormTenancyRepository(db *gorm.DB) *GormTenancyRepository {
	return &GormTenancyRepository{db: db}
}

// FindByID finds a tenancy by its ID
func (r *GormTenancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*letting.Tenancy, error) {
	var model models.TenancyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a tenancy by ID within a landlord account
func (r *GormTenancyRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*letting.Tenancy, error) {
	var model models.TenancyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all tenancies for a landlord account
func (r *GormTenancyRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*letting.Tenancy, error) {
	var tenancyModels []models.TenancyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenancyModel{}).Where("owner_id = ?", ownerID), filter)

	if err := query.Find(&tenancyModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(tenancyModels), nil
}

// FindByProperty finds tenancies for a property within a landlord account
func (r *GormTenancyRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	base := r.db.WithContext(ctx).Model(&models.TenancyModel{}).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID)
	return r.findPaginated(base, filter)
}

// FindByTenant finds tenancies for a tenant within a landlord account
func (r *GormTenancyRepository) FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	base := r.db.WithContext(ctx).Model(&models.TenancyModel{}).
		Where("owner_id = ? AND tenant_id = ?", ownerID, tenantID)
	return r.findPaginated(base, filter)
}

// FindActive finds all active tenancies for a landlord account
func (r *GormTenancyRepository) FindActive(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	base := r.db.WithContext(ctx).Model(&models.TenancyModel{}).
		Where("owner_id = ? AND status = ?", ownerID, letting.TenancyStatusActive)
	return r.findPaginated(base, filter)
}

// CountActiveByProperty counts active tenancies for a property
func (r *GormTenancyRepository) CountActiveByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TenancyModel{}).
		Where("owner_id = ? AND property_id = ? AND status = ?", ownerID, propertyID, letting.TenancyStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOwner counts tenancies for a landlord account
func (r *GormTenancyRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TenancyModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a tenancy
func (r *GormTenancyRepository) Save(ctx context.Context, tenancy *letting.Tenancy) error {
	model := models.TenancyModelFromDomain(tenancy)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a tenancy
func (r *GormTenancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenancyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findPaginated runs a counted, paginated query over an already scoped base query
func (r *GormTenancyRepository) findPaginated(base *gorm.DB, filter shared.Filter) (shared.Paginated[*letting.Tenancy], error) {
	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).Count(&total).Error; err != nil {
		return shared.Paginated[*letting.Tenancy]{}, err
	}

	var tenancyModels []models.TenancyModel
	if err := r.applyFilter(base, filter).Find(&tenancyModels).Error; err != nil {
		return shared.Paginated[*letting.Tenancy]{}, err
	}

	return shared.NewPaginated(r.toDomainSlice(tenancyModels), total, filter.Page, filter.PageSize), nil
}

func (r *GormTenancyRepository) toDomainSlice(tenancyModels []models.TenancyModel) []*letting.Tenancy {
	tenancies := make([]*letting.Tenancy, len(tenancyModels))
	for i := range tenancyModels {
		tenancies[i] = tenancyModels[i].ToDomain()
	}
	return tenancies
}

// applyFilter applies filter options to the query
func (r *GormTenancyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TenancySortFields, "start_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTenancyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		}
	}

	return query
}

// Ensure GormTenancyRepository implements TenancyRepository
var _ letting.TenancyRepository = (*GormTenancyRepository)(nil)
