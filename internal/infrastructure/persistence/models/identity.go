package models

import (
	"time"

	"github.com/proptraka/backend/internal/domain/identity"
	"github.com/proptraka/backend/internal/domain/shared"
)

// LandlordModel is the persistence model for the Landlord domain entity.
type LandlordModel struct {
	AggregateModel
	Email          string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string                  `gorm:"type:varchar(200);not null"`
	FullName       string                  `gorm:"type:varchar(200);not null"`
	Phone          string                  `gorm:"type:varchar(50)"`
	BusinessName   string                  `gorm:"type:varchar(200)"`
	Status         identity.LandlordStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(50)"`
	FailedAttempts int    `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the persistence model to a domain Landlord entity.
func (m *LandlordModel) ToDomain() *identity.Landlord {
	return &identity.Landlord{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		FullName:       m.FullName,
		Phone:          m.Phone,
		BusinessName:   m.BusinessName,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain Landlord entity.
func (m *LandlordModel) FromDomain(l *identity.Landlord) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.Email = l.Email
	m.PasswordHash = l.PasswordHash
	m.FullName = l.FullName
	m.Phone = l.Phone
	m.BusinessName = l.BusinessName
	m.Status = l.Status
	m.LastLoginAt = l.LastLoginAt
	m.LastLoginIP = l.LastLoginIP
	m.FailedAttempts = l.FailedAttempts
	m.LockedUntil = l.LockedUntil
}

// LandlordModelFromDomain creates a new persistence model from a domain Landlord entity.
func LandlordModelFromDomain(l *identity.Landlord) *LandlordModel {
	m := &LandlordModel{}
	m.FromDomain(l)
	return m
}
