package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/logging"
	"options-contracts-api/internal/metrics"
	"options-contracts-api/internal/models"
)

// optionsService implements the OptionsService interface
type optionsService struct {
	provider  SnapshotProvider
	defaults  models.QueryDefaults
	location  *time.Location
	now       func() time.Time
	validator *validator.Validate
}

// Option customizes an options service
type Option func(*optionsService)

// WithClock overrides the clock used to compute the expiration window
func WithClock(now func() time.Time) Option {
	return func(s *optionsService) {
		s.now = now
	}
}

// WithLocation sets the timezone in which "today" is evaluated
func WithLocation(loc *time.Location) Option {
	return func(s *optionsService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewOptionsService creates a new options service instance
func NewOptionsService(provider SnapshotProvider, defaults models.QueryDefaults, opts ...Option) OptionsService {
	s := &optionsService{
		provider:  provider,
		defaults:  defaults,
		location:  time.Local,
		now:       time.Now,
		validator: models.NewValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the values applied to omitted parameters
func (s *optionsService) Defaults() models.QueryDefaults {
	return s.defaults
}

// ListContracts fetches the chain snapshot for the query and normalizes it
func (s *optionsService) ListContracts(ctx context.Context, query *models.OptionQuery) (*models.ContractsResponse, error) {
	if err := models.ValidateQuery(s.validator, query); err != nil {
		return nil, err
	}

	gte, lte := query.ExpirationWindow(s.now().In(s.location))

	logger := logrus.WithFields(logrus.Fields{
		"ticker_symbol":  query.TickerSymbol,
		"api_key":        logging.MaskSecret(query.APIKey),
		"limit":          query.Limit,
		"days_forward":   query.DaysForward,
		"contract_type":  query.ContractType,
		"expiration_gte": gte,
		"expiration_lte": lte,
	})
	logger.Info("Listing option contracts")

	snapshot, err := s.provider.ListChainSnapshot(ctx, &polygon.ChainParams{
		Underlying:    query.TickerSymbol,
		APIKey:        query.APIKey,
		ContractType:  string(query.ContractType),
		ExpirationGTE: gte,
		ExpirationLTE: lte,
		Limit:         query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for %s: %w", query.TickerSymbol, err)
	}

	contracts := FormatContracts(snapshot.Results)
	if skipped := len(snapshot.Results) - len(contracts); skipped > 0 {
		logger.WithField("skipped", skipped).Warn("Provider returned null contract entries")
	}

	metrics.ContractsReturned.WithLabelValues(string(query.ContractType)).Add(float64(len(contracts)))
	logger.WithField("count", len(contracts)).Info("Listed option contracts")

	return &models.ContractsResponse{OptionContracts: contracts}, nil
}

// GetContract fetches and normalizes a single contract snapshot
func (s *optionsService) GetContract(ctx context.Context, query *models.OptionQuery) (*models.OptionContract, error) {
	if err := models.ValidateQuery(s.validator, query); err != nil {
		return nil, err
	}
	if query.OptionTicker == "" {
		return nil, fmt.Errorf("%w: option_ticker is required", models.ErrInvalidQuery)
	}

	logrus.WithFields(logrus.Fields{
		"ticker_symbol": query.TickerSymbol,
		"option_ticker": query.OptionTicker,
		"api_key":       logging.MaskSecret(query.APIKey),
	}).Info("Fetching option contract")

	snapshot, err := s.provider.GetContractSnapshot(ctx, query.TickerSymbol, query.OptionTicker, query.APIKey)
	if err != nil {
		if apiErr, ok := polygon.AsAPIError(err); ok && apiErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %s", models.ErrContractNotFound, query.OptionTicker)
		}
		return nil, fmt.Errorf("failed to get contract %s: %w", query.OptionTicker, err)
	}
	if snapshot.Results == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrContractNotFound, query.OptionTicker)
	}

	contract := FormatContract(snapshot.Results)
	metrics.ContractsReturned.WithLabelValues(contractTypeLabel(contract.ContractType)).Inc()

	return &contract, nil
}

// contractTypeLabel keeps provider supplied values out of metric labels
func contractTypeLabel(contractType string) string {
	switch models.ContractType(contractType) {
	case models.ContractTypeCall, models.ContractTypePut:
		return contractType
	}
	return "unknown"
}
