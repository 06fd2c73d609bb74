package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/letting"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	OwnerAggregateModel
	Name       string                 `gorm:"type:varchar(200);not null"`
	Type       letting.PropertyType   `gorm:"type:varchar(20);not null"`
	Address    valueobject.Address    `gorm:"type:jsonb"`
	UnitCount  int                    `gorm:"not null;default:1"`
	Notes      string                 `gorm:"type:text"`
	Status     letting.PropertyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ArchivedAt *time.Time
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *letting.Property {
	p := &letting.Property{
		Name:       m.Name,
		Type:       m.Type,
		Address:    m.Address,
		UnitCount:  m.UnitCount,
		Notes:      m.Notes,
		Status:     m.Status,
		ArchivedAt: m.ArchivedAt,
	}
	m.PopulateOwnerAggregateRoot(&p.OwnerAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *letting.Property) {
	m.FromDomainOwnerAggregateRoot(p.OwnerAggregateRoot)
	m.Name = p.Name
	m.Type = p.Type
	m.Address = p.Address
	m.UnitCount = p.UnitCount
	m.Notes = p.Notes
	m.Status = p.Status
	m.ArchivedAt = p.ArchivedAt
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity.
func PropertyModelFromDomain(p *letting.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	OwnerAggregateModel
	FullName         string               `gorm:"type:varchar(200);not null"`
	Phone            string               `gorm:"type:varchar(50);not null;index"`
	Email            string               `gorm:"type:varchar(200)"`
	NationalID       string               `gorm:"type:varchar(50)"`
	EmergencyContact string               `gorm:"type:varchar(200)"`
	Status           letting.TenantStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *letting.Tenant {
	t := &letting.Tenant{
		FullName:         m.FullName,
		Phone:            m.Phone,
		Email:            m.Email,
		NationalID:       m.NationalID,
		EmergencyContact: m.EmergencyContact,
		Status:           m.Status,
	}
	m.PopulateOwnerAggregateRoot(&t.OwnerAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *letting.Tenant) {
	m.FromDomainOwnerAggregateRoot(t.OwnerAggregateRoot)
	m.FullName = t.FullName
	m.Phone = t.Phone
	m.Email = t.Email
	m.NationalID = t.NationalID
	m.EmergencyContact = t.EmergencyContact
	m.Status = t.Status
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *letting.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// TenancyModel is the persistence model for the Tenancy domain entity.
type TenancyModel struct {
	OwnerAggregateModel
	PropertyID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	TenantID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	StartDate        time.Time                `gorm:"not null"`
	EndDate          *time.Time               `gorm:"index"`
	RentAmount       decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DepositAmount    decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentFrequency letting.PaymentFrequency `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	Status           letting.TenancyStatus    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	EndedAt          *time.Time
	EndReason        string `gorm:"type:text"`
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenancyModel) TableName() string {
	return "tenancies"
}

// ToDomain converts the persistence model to a domain Tenancy entity.
func (m *TenancyModel) ToDomain() *letting.Tenancy {
	t := &letting.Tenancy{
		PropertyID:       m.PropertyID,
		TenantID:         m.TenantID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		RentAmount:       m.RentAmount,
		DepositAmount:    m.DepositAmount,
		PaymentFrequency: m.PaymentFrequency,
		Status:           m.Status,
		EndedAt:          m.EndedAt,
		EndReason:        m.EndReason,
		Notes:            m.Notes,
	}
	m.PopulateOwnerAggregateRoot(&t.OwnerAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Tenancy entity.
func (m *TenancyModel) FromDomain(t *letting.Tenancy) {
	m.FromDomainOwnerAggregateRoot(t.OwnerAggregateRoot)
	m.PropertyID = t.PropertyID
	m.TenantID = t.TenantID
	m.StartDate = t.StartDate
	m.EndDate = t.EndDate
	m.RentAmount = t.RentAmount
	m.DepositAmount = t.DepositAmount
	m.PaymentFrequency = t.PaymentFrequency
	m.Status = t.Status
	m.EndedAt = t.EndedAt
	m.EndReason = t.EndReason
	m.Notes = t.Notes
}

// TenancyModelFromDomain creates a new persistence model from a domain Tenancy entity.
func TenancyModelFromDomain(t *letting.Tenancy) *TenancyModel {
	m := &TenancyModel{}
	m.FromDomain(t)
	return m
}
