package polygon

import "encoding/json"

// Normalized fields are kept as raw JSON so callers can tell a missing or
// mistyped value apart from a zero value.

// ContractSnapshot is one entry of an options snapshot response
type ContractSnapshot struct {
	Details           *ContractDetails `json:"details"`
	ImpliedVolatility json.RawMessage  `json:"implied_volatility"`
	OpenInterest      json.RawMessage  `json:"open_interest"`
	LastQuote         *LastQuote       `json:"last_quote"`
}

// ContractDetails holds the static contract terms
type ContractDetails struct {
	ContractType   json.RawMessage `json:"contract_type"`
	ExpirationDate json.RawMessage `json:"expiration_date"`
	StrikePrice    json.RawMessage `json:"strike_price"`
	Ticker         json.RawMessage `json:"ticker"`
}

// LastQuote holds the most recent NBBO quote summary
type LastQuote struct {
	Midpoint json.RawMessage `json:"midpoint"`
}

// ChainSnapshotResponse is the body of GET /v3/snapshot/options/{underlying}.
// Null entries in results decode as nil.
type ChainSnapshotResponse struct {
	Status    string              `json:"status"`
	RequestID string              `json:"request_id"`
	Results   []*ContractSnapshot `json:"results"`
	NextURL   string              `json:"next_url,omitempty"`
}

// ContractSnapshotResponse is the body of GET /v3/snapshot/options/{underlying}/{contract}
type ContractSnapshotResponse struct {
	Status    string            `json:"status"`
	RequestID string            `json:"request_id"`
	Results   *ContractSnapshot `json:"results"`
}

// ChainParams are the filters for a chain snapshot request
type ChainParams struct {
	Underlying    string
	APIKey        string
	ContractType  string
	ExpirationGTE string
	ExpirationLTE string
	Limit         int
}
