package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/metrics"
	"options-contracts-api/internal/models"
)

type fakeProvider struct {
	chainParams *polygon.ChainParams
	chain       *polygon.ChainSnapshotResponse
	contract    *polygon.ContractSnapshotResponse
	err         error
	calls       int

	gotUnderlying, gotOptionTicker, gotAPIKey string
}

func (f *fakeProvider) ListChainSnapshot(ctx context.Context, params *polygon.ChainParams) (*polygon.ChainSnapshotResponse, error) {
	f.calls++
	f.chainParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.chain, nil
}

func (f *fakeProvider) GetContractSnapshot(ctx context.Context, underlying, optionTicker, apiKey string) (*polygon.ContractSnapshotResponse, error) {
	f.calls++
	f.gotUnderlying, f.gotOptionTicker, f.gotAPIKey = underlying, optionTicker, apiKey
	if f.err != nil {
		return nil, f.err
	}
	return f.contract, nil
}

var testDefaults = models.QueryDefaults{
	TickerSymbol: "AAPL",
	APIKey:       "default-key",
	Limit:        10,
	DaysForward:  30,
	ContractType: models.ContractTypeCall,
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 23, 30, 0, 0, time.UTC)
}

func newQuery(t *testing.T, params models.QueryParams) *models.OptionQuery {
	t.Helper()
	query, err := models.NewOptionQuery(params, testDefaults)
	require.NoError(t, err)
	return query
}

func TestListContracts(t *testing.T) {
	ctx := context.Background()

	t.Run("BuildsProviderRequest", func(t *testing.T) {
		provider := &fakeProvider{chain: &polygon.ChainSnapshotResponse{}}
		svc := NewOptionsService(provider, testDefaults, WithClock(fixedClock), WithLocation(time.UTC))

		resp, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{
			TickerSymbol: "msft",
			Limit:        "5",
			DaysForward:  "7",
			ContractType: "PUT",
		}))
		require.NoError(t, err)
		assert.Empty(t, resp.OptionContracts)

		require.NotNil(t, provider.chainParams)
		assert.Equal(t, &polygon.ChainParams{
			Underlying:    "MSFT",
			APIKey:        "default-key",
			ContractType:  "put",
			ExpirationGTE: "2026-10-16",
			ExpirationLTE: "2026-10-23",
			Limit:         5,
		}, provider.chainParams)
	})

	t.Run("EvaluatesTodayInConfiguredZone", func(t *testing.T) {
		provider := &fakeProvider{chain: &polygon.ChainSnapshotResponse{}}
		tokyo := time.FixedZone("JST", 9*60*60)
		svc := NewOptionsService(provider, testDefaults, WithClock(fixedClock), WithLocation(tokyo))

		_, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{}))
		require.NoError(t, err)
		assert.Equal(t, "2026-10-17", provider.chainParams.ExpirationGTE)
		assert.Equal(t, "2026-11-16", provider.chainParams.ExpirationLTE)
	})

	t.Run("FormatsResultsInOrder", func(t *testing.T) {
		provider := &fakeProvider{chain: &polygon.ChainSnapshotResponse{
			Results: []*polygon.ContractSnapshot{
				{Details: &polygon.ContractDetails{Ticker: []byte(`"O:AAPL261017C00150000"`)}},
				nil,
				{Details: &polygon.ContractDetails{Ticker: []byte(`"O:AAPL261024C00150000"`)}},
			},
		}}
		svc := NewOptionsService(provider, testDefaults, WithClock(fixedClock))

		resp, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{}))
		require.NoError(t, err)
		require.Len(t, resp.OptionContracts, 2)
		assert.Equal(t, "O:AAPL261017C00150000", resp.OptionContracts[0].Ticker)
		assert.Equal(t, "O:AAPL261024C00150000", resp.OptionContracts[1].Ticker)
	})

	t.Run("RejectsInvalidQueryWithoutCallingProvider", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := NewOptionsService(provider, testDefaults)

		_, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{ContractType: "straddle"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidQuery))
		assert.Contains(t, err.Error(), "contract_type must be one of: call put")
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("RejectsDotSegmentTicker", func(t *testing.T) {
		provider := &fakeProvider{chain: &polygon.ChainSnapshotResponse{}}
		svc := NewOptionsService(provider, testDefaults)

		_, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{TickerSymbol: ".."}))
		assert.True(t, errors.Is(err, models.ErrInvalidQuery))
		assert.Contains(t, err.Error(), "ticker_symbol must be")
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("RequiresAPIKey", func(t *testing.T) {
		defaults := testDefaults
		defaults.APIKey = ""
		query, err := models.NewOptionQuery(models.QueryParams{}, defaults)
		require.NoError(t, err)

		svc := NewOptionsService(&fakeProvider{}, defaults)
		_, err = svc.ListContracts(ctx, query)
		assert.True(t, errors.Is(err, models.ErrInvalidQuery))
		assert.Contains(t, err.Error(), "api_key is required")
	})

	t.Run("WrapsProviderErrors", func(t *testing.T) {
		provider := &fakeProvider{err: &polygon.APIError{Endpoint: "chain_snapshot", StatusCode: http.StatusForbidden}}
		svc := NewOptionsService(provider, testDefaults)

		_, err := svc.ListContracts(ctx, newQuery(t, models.QueryParams{}))
		apiErr, ok := polygon.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}

func TestGetContract(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchesSingleContract", func(t *testing.T) {
		provider := &fakeProvider{contract: &polygon.ContractSnapshotResponse{
			Results: &polygon.ContractSnapshot{
				Details:      &polygon.ContractDetails{ContractType: []byte(`"put"`), Ticker: []byte(`"O:AAPL261017P00150000"`)},
				OpenInterest: []byte(`42`),
			},
		}}
		svc := NewOptionsService(provider, testDefaults)

		contract, err := svc.GetContract(ctx, newQuery(t, models.QueryParams{OptionTicker: "o:aapl261017p00150000"}))
		require.NoError(t, err)
		assert.Equal(t, "AAPL", provider.gotUnderlying)
		assert.Equal(t, "O:AAPL261017P00150000", provider.gotOptionTicker)
		assert.Equal(t, "default-key", provider.gotAPIKey)
		assert.Equal(t, "put", contract.ContractType)
		assert.Equal(t, "42", contract.OpenInterest)
		assert.Equal(t, models.NotAvailable, contract.Premium)
	})

	t.Run("BoundsMetricLabelToKnownTypes", func(t *testing.T) {
		provider := &fakeProvider{contract: &polygon.ContractSnapshotResponse{
			Results: &polygon.ContractSnapshot{
				Details: &polygon.ContractDetails{ContractType: []byte(`"warrant"`)},
			},
		}}
		svc := NewOptionsService(provider, testDefaults)
		unknown := metrics.ContractsReturned.WithLabelValues("unknown")
		before := testutil.ToFloat64(unknown)

		contract, err := svc.GetContract(ctx, newQuery(t, models.QueryParams{OptionTicker: "O:AAPL261017C00150000"}))
		require.NoError(t, err)
		assert.Equal(t, "warrant", contract.ContractType)
		assert.Equal(t, 1.0, testutil.ToFloat64(unknown)-before)
	})

	t.Run("RequiresOptionTicker", func(t *testing.T) {
		svc := NewOptionsService(&fakeProvider{}, testDefaults)
		_, err := svc.GetContract(ctx, newQuery(t, models.QueryParams{}))
		assert.True(t, errors.Is(err, models.ErrInvalidQuery))
	})

	t.Run("MapsProviderNotFound", func(t *testing.T) {
		provider := &fakeProvider{err: &polygon.APIError{Endpoint: "contract_snapshot", StatusCode: http.StatusNotFound}}
		svc := NewOptionsService(provider, testDefaults)

		_, err := svc.GetContract(ctx, newQuery(t, models.QueryParams{OptionTicker: "O:AAPL261017C00150000"}))
		assert.True(t, errors.Is(err, models.ErrContractNotFound))
	})

	t.Run("NullResultIsNotFound", func(t *testing.T) {
		provider := &fakeProvider{contract: &polygon.ContractSnapshotResponse{}}
		svc := NewOptionsService(provider, testDefaults)

		_, err := svc.GetContract(ctx, newQuery(t, models.QueryParams{OptionTicker: "O:AAPL261017C00150000"}))
		assert.True(t, errors.Is(err, models.ErrContractNotFound))
	})
}
