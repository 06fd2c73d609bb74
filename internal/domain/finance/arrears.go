package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultCriticalThresholdDays is the number of days overdue beyond which an
// arrear entry counts as critical. Overridable via arrears.critical_threshold_days.
const DefaultCriticalThresholdDays = 30

// ArrearEntry is one tenancy's outstanding position: everything unpaid and
// due, collapsed to a single amount with the age of the oldest unpaid charge.
type ArrearEntry struct {
	TenancyID   uuid.UUID       `json:"tenancy_id"`
	AmountOwed  decimal.Decimal `json:"amount_owed"`
	DueDate     time.Time       `json:"due_date"` // Earliest unpaid due date
	DaysOverdue int             `json:"days_overdue"`
	ChargeCount int             `json:"charge_count"`
}

// IsCritical reports whether the entry has been outstanding longer than the
// given threshold in days
func (e ArrearEntry) IsCritical(thresholdDays int) bool {
	return e.DaysOverdue > thresholdDays
}

// GetAmountOwedMoney returns the owed amount as Money
func (e ArrearEntry) GetAmountOwedMoney() valueobject.Money {
	return valueobject.NewMoneyKES(e.AmountOwed)
}

// PortfolioArrears is the portfolio-wide roll-up of an arrears ledger
type PortfolioArrears struct {
	TotalArrears       decimal.Decimal `json:"total_arrears"`
	Count              int             `json:"count"`
	LongestOverdueDays int             `json:"longest_overdue_days"`
	CriticalCount      int             `json:"critical_count"`
}

// ArrearsCalculator computes arrears ledgers from revenue transactions.
// It is pure and stateless; the caller supplies the transactions and the
// reference instant, so results are reproducible for any historical date.
type ArrearsCalculator struct {
	criticalThresholdDays int
}

// ArrearsOption configures an ArrearsCalculator
type ArrearsOption func(*ArrearsCalculator)

// WithCriticalThreshold overrides the critical threshold in days
func WithCriticalThreshold(days int) ArrearsOption {
	return func(c *ArrearsCalculator) {
		if days > 0 {
			c.criticalThresholdDays = days
		}
	}
}

// NewArrearsCalculator creates a calculator with the default critical threshold
func NewArrearsCalculator(opts ...ArrearsOption) *ArrearsCalculator {
	c := &ArrearsCalculator{criticalThresholdDays: DefaultCriticalThresholdDays}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CriticalThresholdDays returns the configured threshold
func (c *ArrearsCalculator) CriticalThresholdDays() int {
	return c.criticalThresholdDays
}

// ComputeArrears builds the arrears ledger as of the given instant.
//
// A transaction contributes when it is not PAID and its due date is at or
// before asOf; overdue-ness is derived from the due date, never from the
// stored status, so a stale PENDING row still counts. Contributions are
// grouped per tenancy: AmountOwed is the sum, DueDate the earliest unpaid
// due date, DaysOverdue the whole days between that date and asOf, floored
// at zero. Tenancies with nothing outstanding do not appear.
//
// A transaction with a zero due date or nil tenancy reference is corrupted
// data. It is never skipped: the whole computation fails with a
// DATA_INTEGRITY error so the caller surfaces it instead of reporting a
// quietly wrong total.
func (c *ArrearsCalculator) ComputeArrears(transactions []*RevenueTransaction, asOf time.Time) ([]ArrearEntry, error) {
	groups := make(map[uuid.UUID]*ArrearEntry)

	for _, txn := range transactions {
		if err := txn.Validate(); err != nil {
			return nil, err
		}
		if !txn.IsOverdueAt(asOf) {
			continue
		}

		entry, ok := groups[txn.TenancyID]
		if !ok {
			groups[txn.TenancyID] = &ArrearEntry{
				TenancyID:   txn.TenancyID,
				AmountOwed:  txn.Amount,
				DueDate:     txn.DueDate,
				ChargeCount: 1,
			}
			continue
		}

		entry.AmountOwed = entry.AmountOwed.Add(txn.Amount)
		entry.ChargeCount++
		if txn.DueDate.Before(entry.DueDate) {
			entry.DueDate = txn.DueDate
		}
	}

	entries := make([]ArrearEntry, 0, len(groups))
	for _, entry := range groups {
		entry.DaysOverdue = wholeDaysBetween(entry.DueDate, asOf)
		entries = append(entries, *entry)
	}

	// Ordering is not contractual; sort oldest debt first so output is stable
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DaysOverdue != entries[j].DaysOverdue {
			return entries[i].DaysOverdue > entries[j].DaysOverdue
		}
		return entries[i].TenancyID.String() < entries[j].TenancyID.String()
	})

	return entries, nil
}

// AggregatePortfolio rolls an arrears ledger up to portfolio level
func (c *ArrearsCalculator) AggregatePortfolio(entries []ArrearEntry) PortfolioArrears {
	agg := PortfolioArrears{TotalArrears: decimal.Zero, Count: len(entries)}

	for _, entry := range entries {
		agg.TotalArrears = agg.TotalArrears.Add(entry.AmountOwed)
		if entry.DaysOverdue > agg.LongestOverdueDays {
			agg.LongestOverdueDays = entry.DaysOverdue
		}
		if entry.IsCritical(c.criticalThresholdDays) {
			agg.CriticalCount++
		}
	}

	return agg
}

// ComputeTenancyArrears returns the single entry for one tenancy, or nil if
// the tenancy has nothing outstanding
func (c *ArrearsCalculator) ComputeTenancyArrears(transactions []*RevenueTransaction, tenancyID uuid.UUID, asOf time.Time) (*ArrearEntry, error) {
	if tenancyID == uuid.Nil {
		return nil, shared.NewValidationError("Tenancy ID cannot be empty")
	}

	scoped := make([]*RevenueTransaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.TenancyID == tenancyID {
			scoped = append(scoped, txn)
		}
	}

	entries, err := c.ComputeArrears(scoped, asOf)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// wholeDaysBetween returns the count of whole 24h periods from a to b,
// floored at zero
func wholeDaysBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
