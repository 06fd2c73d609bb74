package letting

import (
	"context"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

// PropertyRepository persists Property aggregates
type PropertyRepository interface {
	shared.OwnerRepository[*Property]
	FindByStatus(ctx context.Context, ownerID uuid.UUID, status PropertyStatus, filter shared.Filter) (shared.Paginated[*Property], error)
}

// TenantRepository persists Tenant aggregates
type TenantRepository interface {
	shared.OwnerRepository[*Tenant]
	FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*Tenant, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, filter shared.Filter) (shared.Paginated[*Tenant], error)
}

// TenancyRepository persists Tenancy aggregates
type TenancyRepository interface {
	shared.OwnerRepository[*Tenancy]
	FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID, filter shared.Filter) (shared.Paginated[*Tenancy], error)
	FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*Tenancy], error)
	FindActive(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*Tenancy], error)
	CountActiveByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (int64, error)
}
