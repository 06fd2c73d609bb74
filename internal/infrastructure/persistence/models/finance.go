package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// RevenueTransactionModel is the persistence model for the RevenueTransaction domain entity.
type RevenueTransactionModel struct {
	OwnerAggregateModel
	TenancyID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	PropertyID    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Category      finance.TransactionCategory `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DueDate       time.Time                   `gorm:"not null;index"`
	PaymentDate   *time.Time
	PaymentMethod finance.PaymentMethod     `gorm:"type:varchar(20)"`
	PaymentRef    string                    `gorm:"type:varchar(100)"`
	Status        finance.TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Description   string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RevenueTransactionModel) TableName() string {
	return "revenue_transactions"
}

// ToDomain converts the persistence model to a domain RevenueTransaction entity.
func (m *RevenueTransactionModel) ToDomain() *finance.RevenueTransaction {
	t := &finance.RevenueTransaction{
		TenancyID:     m.TenancyID,
		PropertyID:    m.PropertyID,
		Category:      m.Category,
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		PaymentDate:   m.PaymentDate,
		PaymentMethod: m.PaymentMethod,
		PaymentRef:    m.PaymentRef,
		Status:        m.Status,
		Description:   m.Description,
	}
	m.PopulateOwnerAggregateRoot(&t.OwnerAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain RevenueTransaction entity.
func (m *RevenueTransactionModel) FromDomain(t *finance.RevenueTransaction) {
	m.FromDomainOwnerAggregateRoot(t.OwnerAggregateRoot)
	m.TenancyID = t.TenancyID
	m.PropertyID = t.PropertyID
	m.Category = t.Category
	m.Amount = t.Amount
	m.DueDate = t.DueDate
	m.PaymentDate = t.PaymentDate
	m.PaymentMethod = t.PaymentMethod
	m.PaymentRef = t.PaymentRef
	m.Status = t.Status
	m.Description = t.Description
}

// RevenueTransactionModelFromDomain creates a new persistence model from a domain entity.
func RevenueTransactionModelFromDomain(t *finance.RevenueTransaction) *RevenueTransactionModel {
	m := &RevenueTransactionModel{}
	m.FromDomain(t)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	OwnerAggregateModel
	PropertyID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Category    finance.ExpenseCategory `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	IncurredOn  time.Time               `gorm:"not null;index"`
	Description string                  `gorm:"type:text"`
	Receipt     string                  `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	e := &finance.Expense{
		PropertyID:  m.PropertyID,
		Category:    m.Category,
		Amount:      m.Amount,
		IncurredOn:  m.IncurredOn,
		Description: m.Description,
		Receipt:     m.Receipt,
	}
	m.PopulateOwnerAggregateRoot(&e.OwnerAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainOwnerAggregateRoot(e.OwnerAggregateRoot)
	m.PropertyID = e.PropertyID
	m.Category = e.Category
	m.Amount = e.Amount
	m.IncurredOn = e.IncurredOn
	m.Description = e.Description
	m.Receipt = e.Receipt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
