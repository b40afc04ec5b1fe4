// Package query holds the pure query and aggregation functions over an ordered
// sequence of transactions. No function mutates its input; every derived slice
// is newly allocated.
package query

import (
	"errors"
	"fmt"
	"sort"

	"txn-query/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDate is returned when a date argument or a record date does not parse
	ErrInvalidDate = models.ErrInvalidDate
	// ErrEmptyInput is returned by the month aggregations when there is nothing to group
	ErrEmptyInput = errors.New("empty input")
)

// Dominance is the outcome of comparing debit and credit counts
type Dominance string

const (
	DominanceDebit  Dominance = "debit"
	DominanceCredit Dominance = "credit"
	DominanceEqual  Dominance = "equal"
)

// MonthCount is the number of records in one "YYYY-MM" group
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// UniqueTypes returns the distinct valid transaction types in first-seen order.
// Records with any other type tag are skipped.
func UniqueTypes(transactions []models.Transaction) []models.TransactionType {
	seen := make(map[models.TransactionType]struct{}, 2)
	types := make([]models.TransactionType, 0, 2)

	for _, t := range transactions {
		if !t.TransactionType.IsValid() {
			continue
		}
		if _, ok := seen[t.TransactionType]; ok {
			continue
		}
		seen[t.TransactionType] = struct{}{}
		types = append(types, t.TransactionType)
	}

	return types
}

// TotalAmount sums every amount. The total of an empty sequence is zero.
func TotalAmount(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// TotalAmountByDate sums the records whose date matches every supplied component of dateFilter
func TotalAmountByDate(transactions []models.Transaction, dateFilter models.DateFilter) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, t := range transactions {
		date, err := recordDate(t)
		if err != nil {
			return decimal.Zero, err
		}
		if dateFilter.Matches(date) {
			total = total.Add(t.Amount)
		}
	}

	return total, nil
}

// ByType returns the records with the given type tag
func ByType(transactions []models.Transaction, transactionType models.TransactionType) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return t.TransactionType == transactionType
	})
}

// InDateRange returns the records dated within [start, end], both inclusive
func InDateRange(transactions []models.Transaction, start, end string) ([]models.Transaction, error) {
	startDate, err := models.ParseCalendarDate(start)
	if err != nil {
		return nil, err
	}

	endDate, err := models.ParseCalendarDate(end)
	if err != nil {
		return nil, err
	}

	return filterDates(transactions, func(d models.CalendarDate) bool {
		return !d.Before(startDate) && !d.After(endDate)
	})
}

// ByMerchant returns the records whose merchant name matches exactly
func ByMerchant(transactions []models.Transaction, merchantName string) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return t.MerchantName == merchantName
	})
}

// AverageAmount returns TotalAmount divided by the count, or zero for an empty sequence
func AverageAmount(transactions []models.Transaction) decimal.Decimal {
	if len(transactions) == 0 {
		return decimal.Zero
	}
	return TotalAmount(transactions).Div(decimal.NewFromInt(int64(len(transactions))))
}

// ByAmountRange returns the records with amount within [minAmount, maxAmount], both inclusive
func ByAmountRange(transactions []models.Transaction, minAmount, maxAmount decimal.Decimal) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return t.Amount.GreaterThanOrEqual(minAmount) && t.Amount.LessThanOrEqual(maxAmount)
	})
}

// TotalDebitAmount sums the amounts of debit records
func TotalDebitAmount(transactions []models.Transaction) decimal.Decimal {
	return TotalAmount(ByType(transactions, models.TransactionTypeDebit))
}

// MonthlyCounts groups records by "YYYY-MM" and returns the counts sorted by month
func MonthlyCounts(transactions []models.Transaction) ([]MonthCount, error) {
	counts := make(map[string]int)

	for _, t := range transactions {
		date, err := recordDate(t)
		if err != nil {
			return nil, err
		}
		counts[date.MonthKey()]++
	}

	result := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		result = append(result, MonthCount{Month: month, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result, nil
}

// MonthWithMostTransactions returns the "YYYY-MM" key with the highest record count.
// Ties resolve to the earliest month. An empty sequence fails with ErrEmptyInput.
func MonthWithMostTransactions(transactions []models.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrEmptyInput
	}

	counts, err := MonthlyCounts(transactions)
	if err != nil {
		return "", err
	}

	// counts is sorted ascending, so a strict comparison keeps the earliest tied month
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}

	return best.Month, nil
}

// MonthWithMostDebitTransactions applies MonthWithMostTransactions to the debit records
func MonthWithMostDebitTransactions(transactions []models.Transaction) (string, error) {
	month, err := MonthWithMostTransactions(ByType(transactions, models.TransactionTypeDebit))
	if err != nil {
		return "", fmt.Errorf("no debit transactions: %w", err)
	}
	return month, nil
}

// DominantType compares debit and credit counts
func DominantType(transactions []models.Transaction) Dominance {
	debits, credits := 0, 0
	for _, t := range transactions {
		switch t.TransactionType {
		case models.TransactionTypeDebit:
			debits++
		case models.TransactionTypeCredit:
			credits++
		}
	}

	switch {
	case debits > credits:
		return DominanceDebit
	case credits > debits:
		return DominanceCredit
	default:
		return DominanceEqual
	}
}

// BeforeDate returns the records dated strictly before date
func BeforeDate(transactions []models.Transaction, date string) ([]models.Transaction, error) {
	cutoff, err := models.ParseCalendarDate(date)
	if err != nil {
		return nil, err
	}

	return filterDates(transactions, func(d models.CalendarDate) bool {
		return d.Before(cutoff)
	})
}

// FindByID returns the first record with the given id
func FindByID(transactions []models.Transaction, id string) (models.Transaction, bool) {
	for _, t := range transactions {
		if t.TransactionID == id {
			return t, true
		}
	}
	return models.Transaction{}, false
}

// MapDescriptions projects the description of every record
func MapDescriptions(transactions []models.Transaction) []string {
	descriptions := make([]string, 0, len(transactions))
	for _, t := range transactions {
		descriptions = append(descriptions, t.Description)
	}
	return descriptions
}

func filter(transactions []models.Transaction, keep func(models.Transaction) bool) []models.Transaction {
	result := make([]models.Transaction, 0)
	for _, t := range transactions {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func filterDates(transactions []models.Transaction, keep func(models.CalendarDate) bool) ([]models.Transaction, error) {
	result := make([]models.Transaction, 0)
	for _, t := range transactions {
		date, err := recordDate(t)
		if err != nil {
			return nil, err
		}
		if keep(date) {
			result = append(result, t)
		}
	}
	return result, nil
}

func recordDate(t models.Transaction) (models.CalendarDate, error) {
	date, err := models.ParseCalendarDate(t.TransactionDate)
	if err != nil {
		return models.CalendarDate{}, fmt.Errorf("transaction %s: %w", t.TransactionID, err)
	}
	return date, nil
}
