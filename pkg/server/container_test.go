package server

import (
	"testing"
	"time"

	"options-contracts-api/internal/config"
	"options-contracts-api/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Provider: config.ProviderConfig{
			BaseURL: "https://api.polygon.io",
			APIKey:  "test-key",
			Timeout: 5 * time.Second,
		},
		Defaults: config.QueryDefaults{
			TickerSymbol: "AAPL",
			Limit:        10,
			DaysForward:  30,
			ContractType: "CALL",
			Timezone:     "UTC",
		},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	if container.OptionsService == nil {
		t.Fatal("OptionsService is nil")
	}

	defaults := container.OptionsService.Defaults()
	if defaults.APIKey != "test-key" {
		t.Errorf("Defaults().APIKey = %s, expected test-key", defaults.APIKey)
	}
	if defaults.ContractType != models.ContractTypeCall {
		t.Errorf("Defaults().ContractType = %s, expected call", defaults.ContractType)
	}
	if defaults.Limit != 10 || defaults.DaysForward != 30 {
		t.Errorf("Defaults() limit/days = %d/%d, expected 10/30", defaults.Limit, defaults.DaysForward)
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil configuration")
	}
}

func TestNewContainer_InvalidBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.Provider.BaseURL = "api.polygon.io/v3"

	if _, err := NewContainer(cfg); err == nil {
		t.Error("Expected error for provider URL without scheme")
	}
}

func TestContainer_Close(t *testing.T) {
	container, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
