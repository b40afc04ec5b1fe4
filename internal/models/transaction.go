package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the debit/credit tag carried by every transaction
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrMissingTransactionID   = errors.New("transaction id is required")
	ErrMissingTransactionDate = errors.New("transaction date is required")
	ErrInvalidAmount          = errors.New("invalid transaction amount")
)

// Transaction represents a single financial record.
// ID is the storage position and is never used as the domain identifier.
type Transaction struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	TransactionID   string          `gorm:"type:varchar(100);not null;index" json:"transaction_id"`
	TransactionDate string          `gorm:"type:varchar(35);not null" json:"transaction_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"transaction_amount"`
	TransactionType TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Description     string          `gorm:"type:text" json:"transaction_description"`
	MerchantName    string          `gorm:"type:varchar(255);index" json:"merchant_name"`
	CardType        string          `gorm:"type:varchar(50)" json:"card_type"`
	CreatedAt       time.Time       `gorm:"not null" json:"-"`
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return t.Validate()
}

// Validate checks the fields the query module relies on.
// The date must parse as a calendar date so date queries never see an unusable record.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.TransactionID) == "" {
		return ErrMissingTransactionID
	}

	if !t.TransactionType.IsValid() {
		return ErrInvalidTransactionType
	}

	if strings.TrimSpace(t.TransactionDate) == "" {
		return ErrMissingTransactionDate
	}

	if _, err := ParseCalendarDate(t.TransactionDate); err != nil {
		return err
	}

	return ValidateAmount(t.Amount)
}

const (
	// AmountScale and AmountIntegerDigits match the decimal(15,2) amount column
	AmountScale         = 2
	AmountIntegerDigits = 13
)

var amountLimit = decimal.New(1, AmountIntegerDigits)

// ValidateAmount rejects amounts the store cannot hold exactly: more than AmountScale
// decimal places or more than AmountIntegerDigits integer digits. Negative amounts are allowed.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount, AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(amountLimit) {
		return fmt.Errorf("%w: %s has more than %d integer digits", ErrInvalidAmount, amount, AmountIntegerDigits)
	}
	return nil
}

// IsDebit returns true for debit transactions
func (t Transaction) IsDebit() bool {
	return t.TransactionType == TransactionTypeDebit
}

// IsCredit returns true for credit transactions
func (t Transaction) IsCredit() bool {
	return t.TransactionType == TransactionTypeCredit
}

// IsValid reports whether the tag is one of the two known types
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeDebit, TransactionTypeCredit:
		return true
	default:
		return false
	}
}

func (tt TransactionType) String() string {
	return string(tt)
}

// ParseTransactionType normalizes and validates a textual type tag
func ParseTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !tt.IsValid() {
		return "", ErrInvalidTransactionType
	}
	return tt, nil
}

// Common card types for sample data
var SampleCardTypes = []string{
	"Visa",
	"MasterCard",
	"American Express",
	"Maestro",
	"UnionPay",
}
