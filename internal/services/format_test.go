package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/models"
)

func TestFormatContract(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		want     models.OptionContract
	}{
		{
			name: "complete snapshot",
			snapshot: `{
				"details": {"contract_type": "call", "expiration_date": "2026-10-17", "strike_price": 150, "ticker": "O:AAPL261017C00150000"},
				"implied_volatility": 0.2534,
				"open_interest": 1200,
				"last_quote": {"midpoint": 3.126}
			}`,
			want: models.OptionContract{
				ContractType:      "call",
				ExpirationDate:    "2026-10-17",
				ImpliedVolatility: "25.34%",
				OpenInterest:      "1200",
				Premium:           "3.13",
				StrikePrice:       "150",
				Ticker:            "O:AAPL261017C00150000",
			},
		},
		{
			name:     "fractional strike",
			snapshot: `{"details": {"strike_price": 152.5}}`,
			want:     na(func(c *models.OptionContract) { c.StrikePrice = "152.5" }),
		},
		{
			name:     "empty object",
			snapshot: `{}`,
			want:     na(nil),
		},
		{
			name:     "explicit nulls",
			snapshot: `{"details": {"ticker": null, "strike_price": null}, "implied_volatility": null, "open_interest": null, "last_quote": {"midpoint": null}}`,
			want:     na(nil),
		},
		{
			name:     "wrong types",
			snapshot: `{"details": {"ticker": 42, "contract_type": true, "strike_price": "150"}, "implied_volatility": "0.3", "last_quote": {"midpoint": "1.5"}}`,
			want:     na(nil),
		},
		{
			name:     "fractional open interest",
			snapshot: `{"open_interest": 12.5}`,
			want:     na(nil),
		},
		{
			name:     "negative open interest",
			snapshot: `{"open_interest": -3}`,
			want:     na(nil),
		},
		{
			name:     "zero values are real values",
			snapshot: `{"implied_volatility": 0, "open_interest": 0, "last_quote": {"midpoint": 0}}`,
			want: na(func(c *models.OptionContract) {
				c.ImpliedVolatility = "0.00%"
				c.OpenInterest = "0"
				c.Premium = "0.00"
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snapshot polygon.ContractSnapshot
			if err := json.Unmarshal([]byte(tt.snapshot), &snapshot); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			assert.Equal(t, tt.want, FormatContract(&snapshot))
		})
	}
}

func TestFormatContractNil(t *testing.T) {
	assert.Equal(t, na(nil), FormatContract(nil))
}

func TestFormatContractsSkipsNulls(t *testing.T) {
	var resp polygon.ChainSnapshotResponse
	body := `{"results": [null, {"details": {"ticker": "A"}}, null, {"details": {"ticker": "B"}}]}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	contracts := FormatContracts(resp.Results)
	if assert.Len(t, contracts, 2) {
		assert.Equal(t, "A", contracts[0].Ticker)
		assert.Equal(t, "B", contracts[1].Ticker)
	}
}

func TestFormatContractsEmpty(t *testing.T) {
	contracts := FormatContracts(nil)
	assert.NotNil(t, contracts)
	assert.Empty(t, contracts)

	out, err := json.Marshal(models.ContractsResponse{OptionContracts: contracts})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"option_contracts": []}`, string(out))
}

// na returns an all-"N/A" contract, optionally adjusted
func na(adjust func(*models.OptionContract)) models.OptionContract {
	c := models.OptionContract{
		ContractType:      models.NotAvailable,
		ExpirationDate:    models.NotAvailable,
		ImpliedVolatility: models.NotAvailable,
		OpenInterest:      models.NotAvailable,
		Premium:           models.NotAvailable,
		StrikePrice:       models.NotAvailable,
		Ticker:            models.NotAvailable,
	}
	if adjust != nil {
		adjust(&c)
	}
	return c
}
