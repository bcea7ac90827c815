package models

// NotAvailable is reported for any field the provider omitted or mistyped
const NotAvailable = "N/A"

// OptionContract is the normalized, display-ready view of one contract
type OptionContract struct {
	ContractType      string `json:"contract_type"`
	ExpirationDate    string `json:"expiration_date"`
	ImpliedVolatility string `json:"implied_volatility"`
	OpenInterest      string `json:"open_interest"`
	Premium           string `json:"premium"`
	StrikePrice       string `json:"strike_price"`
	Ticker            string `json:"ticker"`
}

// ContractsResponse is the body returned for a contract listing
type ContractsResponse struct {
	OptionContracts []OptionContract `json:"option_contracts"`
	Error           string           `json:"error,omitempty"`
}

// ContractResponse is the body returned for a single contract lookup
type ContractResponse struct {
	OptionContract *OptionContract `json:"option_contract"`
	Error          string          `json:"error,omitempty"`
}
