package query

import (
	"testing"

	"txn-query/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	summary, err := Summarize(sampleTransactions())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(225)))
	assert.True(t, summary.AverageAmount.Equal(decimal.NewFromInt(75)))
	assert.True(t, summary.TotalDebitAmount.Equal(decimal.NewFromInt(175)))
	assert.True(t, summary.TotalCreditAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, DominanceDebit, summary.DominantType)
	assert.Equal(t, "2019-01", summary.BusiestMonth)
	assert.Equal(t, "2019-01", summary.BusiestDebitMonth)
	assert.Len(t, summary.MonthlyTransactions, 2)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(nil)
	require.NoError(t, err)

	assert.Zero(t, summary.Count)
	assert.True(t, summary.TotalAmount.IsZero())
	assert.Empty(t, summary.BusiestMonth)
	assert.Empty(t, summary.BusiestDebitMonth)
	assert.Equal(t, DominanceEqual, summary.DominantType)
}

func TestSummarize_CreditsOnly(t *testing.T) {
	summary, err := Summarize(ByType(sampleTransactions(), models.TransactionTypeCredit))
	require.NoError(t, err)

	assert.Equal(t, "2019-02", summary.BusiestMonth)
	assert.Empty(t, summary.BusiestDebitMonth)
}

func TestSummarize_MalformedDate(t *testing.T) {
	transactions := []models.Transaction{txn("x", "yesterday", 1, models.TransactionTypeDebit, "A")}

	_, err := Summarize(transactions)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
