package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/mine/internal/definitions"
	"github.com/KirkDiggler/mine/internal/repositories/results"
	combatService "github.com/KirkDiggler/mine/internal/services/combat"
)

// Provider holds all service instances
type Provider struct {
	CombatService combatService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog          *definitions.Catalog // Optional, built-in definitions if nil
	ResultRepository results.Repository   // Optional, in-memory if nil
	Logger           *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = definitions.Default(); err != nil {
			return nil, err
		}
	}

	// Use in-memory repository if none provided
	resultRepo := cfg.ResultRepository
	if resultRepo == nil {
		resultRepo = results.NewInMemoryRepository()
	}

	return &Provider{
		CombatService: combatService.NewService(&combatService.ServiceConfig{
			Catalog:    catalog,
			Repository: resultRepo,
			Logger:     cfg.Logger,
		}),
	}, nil
}
