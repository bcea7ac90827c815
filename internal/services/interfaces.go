package services

import (
	"context"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/models"
)

// OptionsService defines the interface for option contract lookups
type OptionsService interface {
	// ListContracts returns the contracts matching the query filters
	ListContracts(ctx context.Context, query *models.OptionQuery) (*models.ContractsResponse, error)
	// GetContract returns a single contract identified by query.OptionTicker
	GetContract(ctx context.Context, query *models.OptionQuery) (*models.OptionContract, error)
	// Defaults returns the values applied to omitted parameters
	Defaults() models.QueryDefaults
}

// SnapshotProvider is the subset of the provider client the service needs
type SnapshotProvider interface {
	ListChainSnapshot(ctx context.Context, params *polygon.ChainParams) (*polygon.ChainSnapshotResponse, error)
	GetContractSnapshot(ctx context.Context, underlying, optionTicker, apiKey string) (*polygon.ContractSnapshotResponse, error)
}
