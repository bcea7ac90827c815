package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Underlying tickers: upper-case letters, digits and share-class dots, never leading with a dot
var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.]{0,9}$`)

// OCC-style option symbols as the provider spells them, e.g. O:AAPL250117C00150000
var optionTickerRegex = regexp.MustCompile(`^O:[A-Z0-9][A-Z0-9.]{0,9}\d{6}[CP]\d{8}$`)

// IsValidTicker validates an underlying ticker symbol
func IsValidTicker(ticker string) bool {
	return tickerRegex.MatchString(ticker)
}

// IsValidOptionTicker validates a provider option contract symbol
func IsValidOptionTicker(ticker string) bool {
	return optionTickerRegex.MatchString(ticker)
}

// NewValidator returns a validator with the option-specific tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return IsValidTicker(fl.Field().String())
	})
	_ = v.RegisterValidation("option_ticker", func(fl validator.FieldLevel) bool {
		return IsValidOptionTicker(fl.Field().String())
	})
	return v
}

// ValidateQuery checks a normalized query and returns an ErrInvalidQuery
// wrapping a readable description of every failed field.
func ValidateQuery(v *validator.Validate, query *OptionQuery) error {
	if query == nil {
		return fmt.Errorf("%w: query cannot be nil", ErrInvalidQuery)
	}

	err := v.Struct(query)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidQuery, strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "ticker":
		return fmt.Sprintf("%s must be 1-10 characters of A-Z, 0-9 or '.', starting with a letter or digit", field)
	case "option_ticker":
		return fmt.Sprintf("%s must look like O:AAPL250117C00150000", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldName maps struct field names back to the wire parameter names
func fieldName(structField string) string {
	switch structField {
	case "TickerSymbol":
		return "ticker_symbol"
	case "APIKey":
		return "api_key"
	case "Limit":
		return "limit"
	case "DaysForward":
		return "days_forward"
	case "ContractType":
		return "contract_type"
	case "OptionTicker":
		return "option_ticker"
	default:
		return structField
	}
}
