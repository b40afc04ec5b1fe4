package query

import (
	"errors"

	"txn-query/internal/models"

	"github.com/shopspring/decimal"
)

// Summary bundles the aggregate queries over one sequence
type Summary struct {
	Count               int                      `json:"count"`
	TotalAmount         decimal.Decimal          `json:"total_amount"`
	AverageAmount       decimal.Decimal          `json:"average_amount"`
	TotalDebitAmount    decimal.Decimal          `json:"total_debit_amount"`
	TotalCreditAmount   decimal.Decimal          `json:"total_credit_amount"`
	UniqueTypes         []models.TransactionType `json:"unique_types"`
	DominantType        Dominance                `json:"dominant_type"`
	BusiestMonth        string                   `json:"busiest_month,omitempty"`
	BusiestDebitMonth   string                   `json:"busiest_debit_month,omitempty"`
	MonthlyTransactions []MonthCount             `json:"monthly_transactions"`
}

// Summarize computes every aggregate at once. Month keys stay empty when there is
// nothing to group instead of failing; malformed record dates still fail.
func Summarize(transactions []models.Transaction) (Summary, error) {
	monthly, err := MonthlyCounts(transactions)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Count:               len(transactions),
		TotalAmount:         TotalAmount(transactions),
		AverageAmount:       AverageAmount(transactions),
		TotalDebitAmount:    TotalDebitAmount(transactions),
		TotalCreditAmount:   TotalAmount(ByType(transactions, models.TransactionTypeCredit)),
		UniqueTypes:         UniqueTypes(transactions),
		DominantType:        DominantType(transactions),
		MonthlyTransactions: monthly,
	}

	summary.BusiestMonth, err = optionalMonth(MonthWithMostTransactions(transactions))
	if err != nil {
		return Summary{}, err
	}

	summary.BusiestDebitMonth, err = optionalMonth(MonthWithMostDebitTransactions(transactions))
	if err != nil {
		return Summary{}, err
	}

	return summary, nil
}

func optionalMonth(month string, err error) (string, error) {
	if errors.Is(err, ErrEmptyInput) {
		return "", nil
	}
	return month, err
}
