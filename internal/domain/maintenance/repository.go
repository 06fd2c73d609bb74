package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

// RequestRepository persists maintenance Request aggregates
type RequestRepository interface {
	shared.OwnerRepository[*Request]
	FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*Request], error)
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status RequestStatus, filter shared.Filter) (shared.Paginated[*Request], error)
}
