package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/maintenance"
)

// MaintenanceRequestModel is the persistence model for the maintenance Request domain entity.
type MaintenanceRequestModel struct {
	OwnerAggregateModel
	PropertyID  uuid.UUID                   `gorm:"type:uuid;not null;index"`
	TenancyID   *uuid.UUID                  `gorm:"type:uuid;index"`
	Title       string                      `gorm:"type:varchar(200);not null"`
	Description string                      `gorm:"type:text"`
	Priority    maintenance.RequestPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	Status      maintenance.RequestStatus   `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	ResolvedAt  *time.Time
	Resolution  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain Request entity.
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	r := &maintenance.Request{
		PropertyID:  m.PropertyID,
		TenancyID:   m.TenancyID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    m.Priority,
		Status:      m.Status,
		ResolvedAt:  m.ResolvedAt,
		Resolution:  m.Resolution,
	}
	m.PopulateOwnerAggregateRoot(&r.OwnerAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Request entity.
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.Request) {
	m.FromDomainOwnerAggregateRoot(r.OwnerAggregateRoot)
	m.PropertyID = r.PropertyID
	m.TenancyID = r.TenancyID
	m.Title = r.Title
	m.Description = r.Description
	m.Priority = r.Priority
	m.Status = r.Status
	m.ResolvedAt = r.ResolvedAt
	m.Resolution = r.Resolution
}

// MaintenanceRequestModelFromDomain creates a new persistence model from a domain Request entity.
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}
