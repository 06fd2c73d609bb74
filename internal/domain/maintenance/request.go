package maintenance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
)

// RequestStatus represents the lifecycle status of a maintenance request
type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusResolved   RequestStatus = "RESOLVED"
	RequestStatusCancelled  RequestStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusResolved, RequestStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if the request is closed
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusResolved || s == RequestStatusCancelled
}

// CanTransitionTo reports whether the transition s -> target is allowed
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusOpen:
		return target == RequestStatusInProgress || target == RequestStatusResolved || target == RequestStatusCancelled
	case RequestStatusInProgress:
		return target == RequestStatusResolved || target == RequestStatusCancelled
	}
	return false
}

// RequestPriority ranks how urgent a request is
type RequestPriority string

const (
	PriorityLow    RequestPriority = "LOW"
	PriorityMedium RequestPriority = "MEDIUM"
	PriorityHigh   RequestPriority = "HIGH"
	PriorityUrgent RequestPriority = "URGENT"
)

// IsValid checks if the priority is valid
func (p RequestPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Request represents a maintenance issue reported against a property
type Request struct {
	shared.OwnerAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	TenancyID   *uuid.UUID      `json:"tenancy_id,omitempty"` // Optional: who reported it
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    RequestPriority `json:"priority"`
	Status      RequestStatus   `json:"status"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
	Resolution  string          `json:"resolution,omitempty"`
}

// NewRequest opens a new maintenance request
func NewRequest(ownerID, propertyID uuid.UUID, tenancyID *uuid.UUID, title, description string, priority RequestPriority) (*Request, error) {
	title = strings.TrimSpace(title)
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("Request must reference a property")
	}
	if title == "" {
		return nil, shared.NewValidationError("Request title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewValidationError("Request title cannot exceed 200 characters")
	}
	if !priority.IsValid() {
		return nil, shared.NewValidationError("Unknown request priority")
	}

	return &Request{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PropertyID:         propertyID,
		TenancyID:          tenancyID,
		Title:              title,
		Description:        description,
		Priority:           priority,
		Status:             RequestStatusOpen,
	}, nil
}

// Start moves the request to IN_PROGRESS
func (r *Request) Start() error {
	return r.transition(RequestStatusInProgress)
}

// Resolve closes the request with a resolution note
func (r *Request) Resolve(resolution string) error {
	if err := r.transition(RequestStatusResolved); err != nil {
		return err
	}
	now := time.Now()
	r.ResolvedAt = &now
	r.Resolution = resolution
	return nil
}

// Cancel closes the request without work done
func (r *Request) Cancel(reason string) error {
	if err := r.transition(RequestStatusCancelled); err != nil {
		return err
	}
	r.Resolution = reason
	return nil
}

func (r *Request) transition(target RequestStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot move request from "+string(r.Status)+" to "+string(target))
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
