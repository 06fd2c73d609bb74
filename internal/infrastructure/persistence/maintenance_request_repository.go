package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/maintenance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMaintenanceRequestRepository implements RequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a maintenance request by its ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a maintenance request by ID within a landlord account
func (r *GormMaintenanceRequestRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
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

// FindAllForOwner finds all maintenance requests for a landlord account
func (r *GormMaintenanceRequestRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*maintenance.Request, error) {
	var requestModels []models.MaintenanceRequestModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).Where("owner_id = ?", ownerID), filter)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(requestModels), nil
}

// FindByProperty finds maintenance requests for a property within a landlord account
func (r *GormMaintenanceRequestRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*maintenance.Request], error) {
	base := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID)
	return r.findPaginated(base, filter)
}

// FindByStatus finds maintenance requests by status for a landlord account
func (r *GormMaintenanceRequestRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status maintenance.RequestStatus, filter shared.Filter) (shared.Paginated[*maintenance.Request], error) {
	base := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Where("owner_id = ? AND status = ?", ownerID, status)
	return r.findPaginated(base, filter)
}

// CountForOwner counts maintenance requests for a landlord account
func (r *GormMaintenanceRequestRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a maintenance request
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, request *maintenance.Request) error {
	model := models.MaintenanceRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a maintenance request
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findPaginated runs a counted, paginated query over an already scoped base query
func (r *GormMaintenanceRequestRepository) findPaginated(base *gorm.DB, filter shared.Filter) (shared.Paginated[*maintenance.Request], error) {
	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).Count(&total).Error; err != nil {
		return shared.Paginated[*maintenance.Request]{}, err
	}

	var requestModels []models.MaintenanceRequestModel
	if err := r.applyFilter(base, filter).Find(&requestModels).Error; err != nil {
		return shared.Paginated[*maintenance.Request]{}, err
	}

	return shared.NewPaginated(r.toDomainSlice(requestModels), total, filter.Page, filter.PageSize), nil
}

func (r *GormMaintenanceRequestRepository) toDomainSlice(requestModels []models.MaintenanceRequestModel) []*maintenance.Request {
	requests := make([]*maintenance.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests
}

// applyFilter applies filter options to the query
func (r *GormMaintenanceRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MaintenanceRequestSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMaintenanceRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}

	return query
}

// Ensure GormMaintenanceRequestRepository implements RequestRepository
var _ maintenance.RequestRepository = (*GormMaintenanceRequestRepository)(nil)
