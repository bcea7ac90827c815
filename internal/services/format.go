package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/models"
)

// FormatContract maps a provider snapshot onto the output schema. Any field
// that is absent, null or of the wrong JSON type becomes "N/A".
func FormatContract(snapshot *polygon.ContractSnapshot) models.OptionContract {
	contract := models.OptionContract{
		ContractType:      models.NotAvailable,
		ExpirationDate:    models.NotAvailable,
		ImpliedVolatility: models.NotAvailable,
		OpenInterest:      models.NotAvailable,
		Premium:           models.NotAvailable,
		StrikePrice:       models.NotAvailable,
		Ticker:            models.NotAvailable,
	}
	if snapshot == nil {
		return contract
	}

	if d := snapshot.Details; d != nil {
		if s, ok := rawString(d.ContractType); ok {
			contract.ContractType = s
		}
		if s, ok := rawString(d.ExpirationDate); ok {
			contract.ExpirationDate = s
		}
		if f, ok := rawFloat(d.StrikePrice); ok {
			contract.StrikePrice = strconv.FormatFloat(f, 'f', -1, 64)
		}
		if s, ok := rawString(d.Ticker); ok {
			contract.Ticker = s
		}
	}

	if f, ok := rawFloat(snapshot.ImpliedVolatility); ok {
		contract.ImpliedVolatility = fmt.Sprintf("%.2f%%", f*100)
	}

	if n, ok := rawUint(snapshot.OpenInterest); ok {
		contract.OpenInterest = strconv.FormatUint(n, 10)
	}

	if q := snapshot.LastQuote; q != nil {
		if f, ok := rawFloat(q.Midpoint); ok {
			contract.Premium = fmt.Sprintf("%.2f", f)
		}
	}

	return contract
}

// FormatContracts formats every non-null snapshot, preserving provider order
func FormatContracts(snapshots []*polygon.ContractSnapshot) []models.OptionContract {
	contracts := make([]models.OptionContract, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot == nil {
			continue
		}
		contracts = append(contracts, FormatContract(snapshot))
	}
	return contracts
}

// rawString accepts only JSON strings
func rawString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawFloat accepts any JSON number
func rawFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if !isJSONNumber(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// rawUint accepts only non-negative integer literals, so 12.0 and -3 are rejected
func rawUint(raw json.RawMessage) (uint64, bool) {
	raw = bytes.TrimSpace(raw)
	if !isJSONNumber(raw) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isJSONNumber(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}
