package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/maintenance"
	"github.com/proptraka/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RequestService handles the maintenance request lifecycle
type RequestService struct {
	requestRepo  maintenance.RequestRepository
	propertyRepo letting.PropertyRepository
	logger       *zap.Logger
}

// NewRequestService creates a new maintenance request service
func NewRequestService(
	requestRepo maintenance.RequestRepository,
	propertyRepo letting.PropertyRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// Create opens a maintenance request against one of the landlord's properties
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*RequestResponse, error) {
	property, err := s.propertyRepo.FindByIDForOwner(ctx, input.OwnerID, input.PropertyID)
	if err != nil {
		return nil, err
	}

	request, err := maintenance.NewRequest(input.OwnerID, property.ID, input.TenancyID,
		input.Title, input.Description, maintenance.RequestPriority(input.Priority))
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save maintenance request",
			zap.String("property_id", input.PropertyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create maintenance request")
	}

	s.logger.Info("Maintenance request opened",
		zap.String("request_id", request.ID.String()),
		zap.String("property_id", property.ID.String()),
		zap.String("priority", input.Priority))

	resp := ToRequestResponse(request)
	return &resp, nil
}

// UpdateStatus moves a request through its lifecycle. The note becomes the
// resolution text for RESOLVED and the cancellation reason for CANCELLED.
func (s *RequestService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByIDForOwner(ctx, input.OwnerID, input.RequestID)
	if err != nil {
		return nil, err
	}

	switch maintenance.RequestStatus(input.Status) {
	case maintenance.RequestStatusInProgress:
		err = request.Start()
	case maintenance.RequestStatusResolved:
		err = request.Resolve(input.Note)
	case maintenance.RequestStatusCancelled:
		err = request.Cancel(input.Note)
	default:
		err = shared.NewValidationError("Unknown target status " + input.Status)
	}
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save maintenance request",
			zap.String("request_id", input.RequestID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update maintenance request")
	}

	resp := ToRequestResponse(request)
	return &resp, nil
}

// Get returns a single request scoped to the landlord
func (s *RequestService) Get(ctx context.Context, ownerID, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByIDForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}
	resp := ToRequestResponse(request)
	return &resp, nil
}

// List returns the landlord's maintenance requests, optionally narrowed to one
// property or one status
func (s *RequestService) List(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, status string, filter shared.Filter) (shared.Paginated[RequestResponse], error) {
	var (
		page shared.Paginated[*maintenance.Request]
		err  error
	)
	switch {
	case propertyID != nil:
		page, err = s.requestRepo.FindByProperty(ctx, ownerID, *propertyID, filter)
	case status != "":
		page, err = s.requestRepo.FindByStatus(ctx, ownerID, maintenance.RequestStatus(status), filter)
	default:
		var requests []*maintenance.Request
		requests, err = s.requestRepo.FindAllForOwner(ctx, ownerID, filter)
		if err == nil {
			var total int64
			total, err = s.requestRepo.CountForOwner(ctx, ownerID, filter)
			page = shared.NewPaginated(requests, total, filter.Page, filter.PageSize)
		}
	}
	if err != nil {
		return shared.Paginated[RequestResponse]{}, err
	}

	items := make([]RequestResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, ToRequestResponse(r))
	}
	return shared.NewPaginated(items, page.Total, filter.Page, filter.PageSize), nil
}
