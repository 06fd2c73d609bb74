package identity

import (
	"context"

	"github.com/proptraka/backend/internal/domain/shared"
)

// LandlordRepository persists Landlord aggregates
type LandlordRepository interface {
	shared.Repository[*Landlord]
	FindByEmail(ctx context.Context, email string) (*Landlord, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
