package dto

import (
	"strings"

	"txn-query/internal/models"

	"github.com/shopspring/decimal"
)

// ImportTransactionsRequest is the request body for POST /api/v1/transactions
type ImportTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions" validate:"required,min=1,max=1000,dive"`
}

// TransactionRequest is a single record inside an import batch.
// The amount accepts both JSON numbers and quoted strings.
type TransactionRequest struct {
	TransactionID   string           `json:"transaction_id" validate:"required,not_blank,max=100"`
	TransactionDate string           `json:"transaction_date" validate:"required,iso_date"`
	Amount          *decimal.Decimal `json:"transaction_amount" validate:"required,amount"`
	TransactionType string           `json:"transaction_type" validate:"required,txn_type"`
	Description     string           `json:"transaction_description" validate:"max=1000"`
	MerchantName    string           `json:"merchant_name" validate:"max=255"`
	CardType        string           `json:"card_type" validate:"max=50"`
}

// ToModel converts the request into a storable transaction.
// Call it only after validation has passed.
func (r TransactionRequest) ToModel() models.Transaction {
	txnType, _ := models.ParseTransactionType(r.TransactionType)

	amount := decimal.Zero
	if r.Amount != nil {
		amount = *r.Amount
	}

	return models.Transaction{
		TransactionID:   strings.TrimSpace(r.TransactionID),
		TransactionDate: strings.TrimSpace(r.TransactionDate),
		Amount:          amount,
		TransactionType: txnType,
		Description:     r.Description,
		MerchantName:    r.MerchantName,
		CardType:        r.CardType,
	}
}

// ToModels converts every record of the batch, keeping input order
func (r ImportTransactionsRequest) ToModels() []models.Transaction {
	out := make([]models.Transaction, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		out = append(out, t.ToModel())
	}
	return out
}

// ImportTransactionsResponse reports how many records were stored
type ImportTransactionsResponse struct {
	Imported int `json:"imported"`
}

// ListTransactionsResponse is returned by GET /api/v1/transactions.
// Suggestions is set only when a merchant filter matched nothing.
type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	Suggestions  []string             `json:"suggestions,omitempty"`
}

// DescriptionsResponse lists transaction descriptions in storage order
type DescriptionsResponse struct {
	Descriptions []string `json:"descriptions"`
}

// TypesResponse lists distinct transaction types in first-seen order
type TypesResponse struct {
	Types []models.TransactionType `json:"types"`
}

// AverageResponse carries the mean transaction amount
type AverageResponse struct {
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// DominantTypeResponse names which type has more records
type DominantTypeResponse struct {
	DominantType string `json:"dominant_type"`
}

// BusiestMonthResponse names the YYYY-MM bucket with the most records
type BusiestMonthResponse struct {
	Month string `json:"month"`
	Type  string `json:"transaction_type,omitempty"`
}

// EvaluateExpressionRequest is the request body for POST /api/v1/calculator/evaluate
type EvaluateExpressionRequest struct {
	Expression string `json:"expression" validate:"required,not_blank,max=256"`
}

// EvaluateExpressionResponse carries the evaluated result as a decimal string
type EvaluateExpressionResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}
