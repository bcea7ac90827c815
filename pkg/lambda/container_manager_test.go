package lambda

import (
	"context"
	"errors"
	"testing"
	"time"

	"options-contracts-api/internal/config"
)

func testConfig() (*config.Config, error) {
	return &config.Config{
		Provider: config.ProviderConfig{
			BaseURL: "https://api.polygon.io",
			Timeout: time.Second,
		},
		Defaults: config.QueryDefaults{
			TickerSymbol: "AAPL",
			Limit:        10,
			DaysForward:  30,
			ContractType: "call",
		},
	}, nil
}

func TestContainerManager_ReusesContainer(t *testing.T) {
	loads := 0
	cm := NewContainerManager(func() (*config.Config, error) {
		loads++
		return testConfig()
	})

	if cm.IsHealthy() {
		t.Error("Manager should not be healthy before first use")
	}

	first, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	second, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}

	if first != second {
		t.Error("Expected the same container on warm invocations")
	}
	if loads != 1 {
		t.Errorf("Config loaded %d times, expected 1", loads)
	}
	if !cm.IsHealthy() {
		t.Error("Manager should be healthy after use")
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if cm.IsHealthy() {
		t.Error("Manager should not be healthy after cleanup")
	}
}

func TestContainerManager_RetriesFailedLoad(t *testing.T) {
	calls := 0
	cm := NewContainerManager(func() (*config.Config, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("config unavailable")
		}
		return testConfig()
	})

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Fatal("Expected error from failed config load")
	}
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Fatalf("GetContainer() error on retry = %v", err)
	}
	if calls != 2 {
		t.Errorf("Config loaded %d times, expected 2", calls)
	}
}
