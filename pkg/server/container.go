package server

import (
	"fmt"
	"strings"

	"options-contracts-api/internal/adapters/polygon"
	"options-contracts-api/internal/config"
	"options-contracts-api/internal/models"
	"options-contracts-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	OptionsService services.OptionsService

	provider *polygon.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	provider, err := polygon.NewClient(&polygon.ClientConfig{
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	defaults := models.QueryDefaults{
		TickerSymbol: cfg.Defaults.TickerSymbol,
		APIKey:       cfg.Provider.APIKey,
		Limit:        cfg.Defaults.Limit,
		DaysForward:  cfg.Defaults.DaysForward,
		ContractType: models.ContractType(strings.ToLower(cfg.Defaults.ContractType)),
	}

	optionsService := services.NewOptionsService(provider, defaults, services.WithLocation(cfg.Location()))

	return &Container{
		Config:         cfg,
		OptionsService: optionsService,
		provider:       provider,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.provider != nil {
		if err := c.provider.Close(); err != nil {
			return fmt.Errorf("failed to close provider client: %w", err)
		}
	}
	return nil
}
