package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRevenueTransactionRepository implements RevenueTransactionRepository using GORM
type GormRevenueTransactionRepository struct {
	db *gorm.DB
}

// NewGormRevenueTransactionRepository creates a new GormRevenueTransactionRepository
func NewGormRevenueTransactionRepository(db *gorm.DB) *GormRevenueTransactionRepository {
	return &GormRevenueTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormRevenueTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RevenueTransaction, error) {
	var model models.RevenueTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a transaction by ID within a landlord account
func (r *GormRevenueTransactionRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.RevenueTransaction, error) {
	var model models.RevenueTransactionModel
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

// FindAllForOwner finds all transactions for a landlord account
func (r *GormRevenueTransactionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*finance.RevenueTransaction, error) {
	var txnModels []models.RevenueTransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RevenueTransactionModel{}).Where("owner_id = ?", ownerID), filter)

	if err := query.Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(txnModels), nil
}

// FindAllUnsettled returns every non-PAID transaction for the owner, ordered
// by due date. No pagination: the arrears calculator needs the full ledger.
func (r *GormRevenueTransactionRepository) FindAllUnsettled(ctx context.Context, ownerID uuid.UUID) ([]*finance.RevenueTransaction, error) {
	var txnModels []models.RevenueTransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status <> ?", ownerID, finance.TransactionStatusPaid).
		Order("due_date ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(txnModels), nil
}

// FindByTenancy finds all transactions raised against a tenancy
func (r *GormRevenueTransactionRepository) FindByTenancy(ctx context.Context, ownerID, tenancyID uuid.UUID) ([]*finance.RevenueTransaction, error) {
	var txnModels []models.RevenueTransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND tenancy_id = ?", ownerID, tenancyID).
		Order("due_date ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(txnModels), nil
}

// FindByQuery finds transactions matching the query within a landlord account
func (r *GormRevenueTransactionRepository) FindByQuery(ctx context.Context, ownerID uuid.UUID, query finance.TransactionQuery, filter shared.Filter) (shared.Paginated[*finance.RevenueTransaction], error) {
	base := r.db.WithContext(ctx).Model(&models.RevenueTransactionModel{}).Where("owner_id = ?", ownerID)

	if query.TenancyID != uuid.Nil {
		base = base.Where("tenancy_id = ?", query.TenancyID)
	}
	if query.PropertyID != uuid.Nil {
		base = base.Where("property_id = ?", query.PropertyID)
	}
	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}
	if query.Category != "" {
		base = base.Where("category = ?", query.Category)
	}
	if !query.DueFrom.IsZero() {
		base = base.Where("due_date >= ?", query.DueFrom)
	}
	if !query.DueTo.IsZero() {
		base = base.Where("due_date <= ?", query.DueTo)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[*finance.RevenueTransaction]{}, err
	}

	var txnModels []models.RevenueTransactionModel
	if err := r.applyFilter(base, filter).Find(&txnModels).Error; err != nil {
		return shared.Paginated[*finance.RevenueTransaction]{}, err
	}

	return shared.NewPaginated(r.toDomainSlice(txnModels), total, filter.Page, filter.PageSize), nil
}

// FindDuePending returns PENDING transactions due at or before asOf, across
// all owners. The overdue sweep consumes this in batches.
func (r *GormRevenueTransactionRepository) FindDuePending(ctx context.Context, asOf time.Time, limit int) ([]*finance.RevenueTransaction, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND due_date <= ?", finance.TransactionStatusPending, asOf).
		Order("due_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var txnModels []models.RevenueTransactionModel
	if err := query.Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(txnModels), nil
}

// SumPaidBetween sums settled amounts with a payment date in [from, to]
func (r *GormRevenueTransactionRepository) SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (string, error) {
	var sum string
	err := r.db.WithContext(ctx).
		Model(&models.RevenueTransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ? AND status = ? AND payment_date >= ? AND payment_date <= ?",
			ownerID, finance.TransactionStatusPaid, from, to).
		Scan(&sum).Error
	if err != nil {
		return "", err
	}
	return sum, nil
}

// CountForOwner counts transactions for a landlord account
func (r *GormRevenueTransactionRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RevenueTransactionModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a transaction
func (r *GormRevenueTransactionRepository) Save(ctx context.Context, transaction *finance.RevenueTransaction) error {
	model := models.RevenueTransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple transactions
func (r *GormRevenueTransactionRepository) SaveBatch(ctx context.Context, transactions []*finance.RevenueTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	txnModels := make([]*models.RevenueTransactionModel, len(transactions))
	for i, t := range transactions {
		txnModels[i] = models.RevenueTransactionModelFromDomain(t)
	}
	return r.db.WithContext(ctx).Save(txnModels).Error
}

// Delete deletes a transaction
func (r *GormRevenueTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RevenueTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBatch deletes the given transactions within a landlord account and
// returns how many rows were actually removed
func (r *GormRevenueTransactionRepository) DeleteBatch(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Delete(&models.RevenueTransactionModel{}, "owner_id = ? AND id IN ?", ownerID, ids)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormRevenueTransactionRepository) toDomainSlice(txnModels []models.RevenueTransactionModel) []*finance.RevenueTransaction {
	transactions := make([]*finance.RevenueTransaction, len(txnModels))
	for i := range txnModels {
		transactions[i] = txnModels[i].ToDomain()
	}
	return transactions
}

// applyFilter applies filter options to the query
func (r *GormRevenueTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "due_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRevenueTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "tenancy_id":
			query = query.Where("tenancy_id = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}

	return query
}

// Ensure GormRevenueTransactionRepository implements RevenueTransactionRepository
var _ finance.RevenueTransactionRepository = (*GormRevenueTransactionRepository)(nil)
