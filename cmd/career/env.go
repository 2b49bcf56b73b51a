package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/umacareer/internal/config"
	"github.com/cory-johannsen/umacareer/internal/game/training"
	"github.com/cory-johannsen/umacareer/internal/observability"
)

// env holds the configuration and logger shared by every subcommand.
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// facilities returns the configured facility table, or nil for the defaults.
func (e *env) facilities() ([]training.FacilityDef, error) {
	if e.cfg.Training.FacilitiesFile == "" {
		return nil, nil
	}
	defs, err := training.LoadFacilities(e.cfg.Training.FacilitiesFile)
	if err != nil {
		return nil, fmt.Errorf("loading facilities: %w", err)
	}
	e.logger.Info("facility table loaded", zap.String("path", e.cfg.Training.FacilitiesFile))
	return defs, nil
}
