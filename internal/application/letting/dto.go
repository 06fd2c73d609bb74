package letting

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/shopspring/decimal"
)

// CreatePropertyInput contains the input for property creation
type CreatePropertyInput struct {
	OwnerID    uuid.UUID
	Name       string `json:"name" binding:"required,max=200"`
	Type       string `json:"type" binding:"required"`
	County     string `json:"county" binding:"required"`
	Town       string `json:"town" binding:"required"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code"`
	UnitCount  int    `json:"unit_count" binding:"required,min=1"`
}

// UpdatePropertyInput contains the input for property updates
type UpdatePropertyInput struct {
	OwnerID    uuid.UUID
	PropertyID uuid.UUID
	Name       string `json:"name" binding:"required,max=200"`
	Type       string `json:"type" binding:"required"`
	County     string `json:"county" binding:"required"`
	Town       string `json:"town" binding:"required"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code"`
	UnitCount  int    `json:"unit_count" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Address    string     `json:"address"`
	UnitCount  int        `json:"unit_count"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToPropertyResponse converts a Property aggregate to its response form
func ToPropertyResponse(p *letting.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		Name:       p.Name,
		Type:       string(p.Type),
		Address:    p.Address.String(),
		UnitCount:  p.UnitCount,
		Notes:      p.Notes,
		Status:     string(p.Status),
		ArchivedAt: p.ArchivedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// CreateTenantInput contains the input for tenant creation
type CreateTenantInput struct {
	OwnerID    uuid.UUID
	FullName   string `json:"full_name" binding:"required,max=200"`
	Phone      string `json:"phone" binding:"required,max=50"`
	Email      string `json:"email" binding:"omitempty,email"`
	NationalID string `json:"national_id"`
}

// UpdateTenantInput contains the input for tenant updates
type UpdateTenantInput struct {
	OwnerID          uuid.UUID
	TenantID         uuid.UUID
	FullName         string `json:"full_name" binding:"required,max=200"`
	Phone            string `json:"phone" binding:"required,max=50"`
	Email            string `json:"email" binding:"omitempty,email"`
	NationalID       string `json:"national_id"`
	EmergencyContact string `json:"emergency_contact"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email,omitempty"`
	NationalID       string    `json:"national_id,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToTenantResponse converts a Tenant aggregate to its response form
func ToTenantResponse(t *letting.Tenant) TenantResponse {
	return TenantResponse{
		ID:               t.ID,
		FullName:         t.FullName,
		Phone:            t.Phone,
		Email:            t.Email,
		NationalID:       t.NationalID,
		EmergencyContact: t.EmergencyContact,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
	}
}

// CreateTenancyInput contains the input for tenancy creation
type CreateTenancyInput struct {
	OwnerID          uuid.UUID
	PropertyID       uuid.UUID `json:"property_id" binding:"required"`
	TenantID         uuid.UUID `json:"tenant_id" binding:"required"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          *time.Time `json:"end_date"`
	RentAmount       decimal.Decimal `json:"rent_amount" binding:"required"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	PaymentFrequency string          `json:"payment_frequency" binding:"required"`
}

// RenewTenancyInput contains the input for tenancy renewal
type RenewTenancyInput struct {
	OwnerID    uuid.UUID
	TenancyID  uuid.UUID
	NewEndDate time.Time `json:"new_end_date" binding:"required"`
}

// TenancyResponse represents a tenancy in API responses
type TenancyResponse struct {
	ID               uuid.UUID       `json:"id"`
	PropertyID       uuid.UUID       `json:"property_id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	RentAmount       decimal.Decimal `json:"rent_amount"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	PaymentFrequency string          `json:"payment_frequency"`
	Status           string          `json:"status"`
	EndReason        string          `json:"end_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Version          int             `json:"version"`
}

// ToTenancyResponse converts a Tenancy aggregate to its response form
func ToTenancyResponse(t *letting.Tenancy) TenancyResponse {
	return TenancyResponse{
		ID:               t.ID,
		PropertyID:       t.PropertyID,
		TenantID:         t.TenantID,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		RentAmount:       t.RentAmount,
		DepositAmount:    t.DepositAmount,
		PaymentFrequency: string(t.PaymentFrequency),
		Status:           string(t.Status),
		EndReason:        t.EndReason,
		CreatedAt:        t.CreatedAt,
		Version:          t.GetVersion(),
	}
}
