package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/maintenance"
)

// CreateRequestInput contains the input for opening a maintenance request
type CreateRequestInput struct {
	OwnerID     uuid.UUID
	PropertyID  uuid.UUID  `json:"property_id" binding:"required"`
	TenancyID   *uuid.UUID `json:"tenancy_id"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"required"`
}

// UpdateStatusInput contains the input for moving a request through its lifecycle
type UpdateStatusInput struct {
	OwnerID   uuid.UUID
	RequestID uuid.UUID
	Status    string `json:"status" binding:"required"`
	Note      string `json:"note"`
}

// RequestResponse represents a maintenance request in API responses
type RequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	TenancyID   *uuid.UUID `json:"tenancy_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToRequestResponse converts a Request aggregate to its response form
func ToRequestResponse(r *maintenance.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		TenancyID:   r.TenancyID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		ResolvedAt:  r.ResolvedAt,
		Resolution:  r.Resolution,
		CreatedAt:   r.CreatedAt,
	}
}
