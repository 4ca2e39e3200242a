package main

import (
	"context"
	"fmt"

	"github.com/brizzai/oauth-params/internal/config"
	"github.com/brizzai/oauth-params/internal/logger"
	"github.com/brizzai/oauth-params/internal/manifest"
	"github.com/brizzai/oauth-params/internal/requester"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// setup loads the configuration for cmd and initializes the global logger
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// populate builds the dependency graph for cfg and fills targets from it.
// route may be nil when no request builder is needed.
func populate(ctx context.Context, cfg *config.Config, route *requester.RouteConfig, targets ...any) error {
	supplies := []any{&cfg.Encoding, &cfg.EndpointConfig}
	if route != nil {
		supplies = append(supplies, route)
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.With().WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Supply(supplies...),
		manifest.Module,
		requester.Module,
		fx.Populate(targets...),
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	return app.Stop(ctx)
}
