package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modelgen/internal/compiler"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/ctxlog"
	"github.com/vk/modelgen/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
	compiler *compiler.Compiler
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs to logW. When no modules are given the core modules are
// registered. The registry is read-only once NewApp returns.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	if err := reg.RegisterAll(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All kernel modules registered.", "modules", len(modules), "types", len(reg.Types()))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
		compiler: compiler.New(reg),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandGenerate:
		err = a.Generate(ctx, a.config.DescriptionPath, a.config.OutputPath)
	case CommandInspect:
		err = a.Inspect(ctx, a.config.DescriptionPath)
	case CommandValidate:
		err = a.Validate(ctx, a.config.DescriptionPath)
	case CommandTypes:
		err = a.Types(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
