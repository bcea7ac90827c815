package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ContractType represents the option right
type ContractType string

const (
	ContractTypeCall ContractType = "call"
	ContractTypePut  ContractType = "put"
)

// DateLayout is the provider's date format for expiration filters
const DateLayout = "2006-01-02"

// QueryParams holds the raw, string-typed parameters as they arrive from an
// event, a query string or the CLI. Empty means "not supplied".
type QueryParams struct {
	TickerSymbol string `json:"ticker_symbol"`
	APIKey       string `json:"api_key"`
	Limit        string `json:"limit"`
	DaysForward  string `json:"days_forward"`
	ContractType string `json:"contract_type"`
	OptionTicker string `json:"option_ticker"`
}

// IsEmpty reports whether no recognized parameter was supplied
func (p QueryParams) IsEmpty() bool {
	return p == QueryParams{}
}

// QueryDefaults are applied to parameters that were not supplied
type QueryDefaults struct {
	TickerSymbol string
	APIKey       string
	Limit        int
	DaysForward  int
	ContractType ContractType
}

// OptionQuery is a normalized request for option contracts
type OptionQuery struct {
	TickerSymbol string       `json:"ticker_symbol" validate:"required,ticker"`
	APIKey       string       `json:"-" validate:"required"`
	Limit        int          `json:"limit" validate:"min=1,max=250"`
	DaysForward  int          `json:"days_forward" validate:"min=0,max=3650"`
	ContractType ContractType `json:"contract_type" validate:"oneof=call put"`
	OptionTicker string       `json:"option_ticker,omitempty" validate:"omitempty,option_ticker"`
}

// NewOptionQuery normalizes raw parameters into a query, filling defaults.
// An unparseable days_forward falls back to the default window; an
// unparseable limit is rejected.
func NewOptionQuery(params QueryParams, defaults QueryDefaults) (*OptionQuery, error) {
	query := &OptionQuery{
		TickerSymbol: defaults.TickerSymbol,
		APIKey:       defaults.APIKey,
		Limit:        defaults.Limit,
		DaysForward:  defaults.DaysForward,
		ContractType: defaults.ContractType,
	}

	if v := strings.TrimSpace(params.TickerSymbol); v != "" {
		query.TickerSymbol = v
	}
	query.TickerSymbol = strings.ToUpper(query.TickerSymbol)

	if v := strings.TrimSpace(params.APIKey); v != "" {
		query.APIKey = v
	}

	if v := strings.TrimSpace(params.Limit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: limit must be an integer, got %q", ErrInvalidQuery, v)
		}
		query.Limit = limit
	}

	if v := strings.TrimSpace(params.DaysForward); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			query.DaysForward = days
		}
	}

	if v := strings.TrimSpace(params.ContractType); v != "" {
		query.ContractType = ContractType(strings.ToLower(v))
	}

	query.OptionTicker = strings.ToUpper(strings.TrimSpace(params.OptionTicker))

	return query, nil
}

// ExpirationWindow returns the inclusive [gte, lte] expiration date bounds
// starting on the calendar day of today.
func (q *OptionQuery) ExpirationWindow(today time.Time) (string, string) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 0, q.DaysForward)
	return start.Format(DateLayout), end.Format(DateLayout)
}
