package models

import (
	"github.com/shopspring/decimal"
)

// DateFilter selects records by calendar date components. Nil components match any value.
// Month is 1-indexed.
type DateFilter struct {
	Year  *int
	Month *int
	Day   *int
}

// IsEmpty reports whether no component is set
func (f DateFilter) IsEmpty() bool {
	return f.Year == nil && f.Month == nil && f.Day == nil
}

// Matches reports whether the date satisfies every supplied component
func (f DateFilter) Matches(d CalendarDate) bool {
	if f.Year != nil && d.Year != *f.Year {
		return false
	}
	if f.Month != nil && int(d.Month) != *f.Month {
		return false
	}
	if f.Day != nil && d.Day != *f.Day {
		return false
	}
	return true
}

// TransactionFilters contains the composable list filters accepted by the API
type TransactionFilters struct {
	Type         TransactionType
	MerchantName string
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	StartDate    string
	EndDate      string
	BeforeDate   string
}
