package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ExpenseService handles property expense bookkeeping
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	propertyRepo letting.PropertyRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	propertyRepo letting.PropertyRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// Create records an expense against one of the landlord's properties
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*ExpenseResponse, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, input.OwnerID, input.PropertyID)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(
		input.OwnerID,
		property.ID,
		finance.ExpenseCategory(input.Category),
		valueobject.NewMoneyKES(input.Amount),
		input.IncurredOn,
		input.Description,
	)
	if err != nil {
		return nil, err
	}
	expense.Receipt = input.Receipt

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		s.logger.Error("Failed to save expense",
			zap.String("property_id", input.PropertyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record expense")
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("property_id", property.ID.String()),
		zap.String("category", input.Category))

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List returns the landlord's expenses, optionally narrowed to one property
func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, filter shared.Filter) (shared.Paginated[ExpenseResponse], error) {
	var (
		page shared.Paginated[*finance.Expense]
		err  error
	)
	if propertyID != nil {
		page, err = s.expenseRepo.FindByProperty(ctx, ownerID, *propertyID, filter)
	} else {
		var expenses []*finance.Expense
		expenses, err = s.expenseRepo.FindAllForOwner(ctx, ownerID, filter)
		if err == nil {
			var total int64
			total, err = s.expenseRepo.CountForOwner(ctx, ownerID, filter)
			page = shared.NewPaginated(expenses, total, filter.Page, filter.PageSize)
		}
	}
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}

	items := make([]ExpenseResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, ToExpenseResponse(e))
	}
	return shared.NewPaginated(items, page.Total, filter.Page, filter.PageSize), nil
}
