package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"txn-query/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("txn_type", validateTransactionType)
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("not_blank", validateNotBlank)
	_ = v.RegisterValidation("amount", validateAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its validate tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateTransactionType accepts debit or credit in any case
func validateTransactionType(fl validator.FieldLevel) bool {
	_, err := models.ParseTransactionType(fl.Field().String())
	return err == nil
}

// validateISODate accepts YYYY-MM-DD or an RFC 3339 timestamp
func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseCalendarDate(fl.Field().String())
	return err == nil
}

// validateAmount accepts a decimal the amount column stores exactly
func validateAmount(fl validator.FieldLevel) bool {
	switch amount := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return models.ValidateAmount(amount) == nil
	case *decimal.Decimal:
		return amount != nil && models.ValidateAmount(*amount) == nil
	default:
		return false
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FieldErrors flattens validator errors into namespace -> message pairs.
// It returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors[fieldPath(fe)] = Message(fe)
	}
	return fieldErrors
}

// fieldPath drops the top-level struct name, e.g. "ImportTransactionsRequest.transactions[0].transaction_id"
// becomes "transactions[0].transaction_id"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Message converts a validator.FieldError to a human-readable message
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "not_blank":
		return "must not be blank"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		default:
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "txn_type":
		return "must be a valid transaction type (debit, credit)"
	case "iso_date":
		return "must be a valid date (YYYY-MM-DD)"
	case "amount":
		return fmt.Sprintf("must have at most %d decimal places and %d integer digits",
			models.AmountScale, models.AmountIntegerDigits)
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
