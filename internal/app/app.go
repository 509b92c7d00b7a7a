package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/build"
	"github.com/vk/turbarch/internal/config"
	"github.com/vk/turbarch/internal/ctxlog"
	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/inmemorycycle"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *prometheus.Registry
	metrics  *build.Metrics
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. Each App owns its logger and metrics registry.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
		metrics:  build.NewMetrics(reg),
	}
}

// Registry returns the application's metrics registry. This is primarily for testing.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Plan builds the architecture into an in-memory recording, pushes the
// operating targets and writes the recorded plan in the configured format.
func (a *App) Plan(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Plan method started.")
	defer a.writeMetrics()

	b, mp, _, err := a.build(ctx)
	if err != nil {
		return err
	}

	p := mp.Problem()
	if err := b.Configure(ctx, p); err != nil {
		return fmt.Errorf("failed to configure problem: %w", err)
	}

	plan := inmemorycycle.Snapshot(mp, p)
	switch a.config.OutputFormat {
	case "yaml":
		err = plan.WriteYAML(a.outW)
	default:
		err = plan.WriteText(a.outW)
	}
	if err != nil {
		return err
	}

	a.logger.Info("Plan written.", "format", a.config.OutputFormat, "points", len(plan.Points), "parameters", len(plan.Parameters), "links", len(plan.Links))
	return nil
}

// Validate runs a full build and reports a one-line summary without writing
// the plan.
func (a *App) Validate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Validate method started.")
	defer a.writeMetrics()

	_, mp, res, err := a.build(ctx)
	if err != nil {
		return err
	}

	modules := 0
	for _, pt := range res.Points {
		modules += len(pt.Modules)
	}
	_, err = fmt.Fprintf(a.outW, "%s: valid, %d points, %d modules, %d links\n",
		a.config.ArchitecturePath, len(res.Points), modules, len(mp.ResolvedLinks()))
	return err
}

func (a *App) build(ctx context.Context) (*build.Builder, *inmemorycycle.MultiPoint, *build.Result, error) {
	architecture, problem, err := a.load(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	var thermo cycle.ThermoData
	if a.config.ThermoData != "" {
		thermo = a.config.ThermoData
	}
	b := build.New(architecture, problem, build.WithThermoData(thermo), build.WithMetrics(a.metrics))

	mp := inmemorycycle.New()
	res, err := b.Build(ctx, mp)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build architecture: %w", err)
	}
	return b, mp, res, nil
}

func (a *App) load(ctx context.Context) (*arch.Architecture, *build.Problem, error) {
	model, err := a.loader.Load(ctx, a.config.ArchitecturePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load architecture: %w", err)
	}
	a.logger.Debug("Architecture loaded into unified model.", "points", len(model.Points), "elements", len(model.Elements))

	architecture, problem, err := config.Assemble(ctx, model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assemble architecture: %w", err)
	}
	return architecture, problem, nil
}

func (a *App) writeMetrics() {
	if a.config.MetricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(a.config.MetricsFile, a.registry); err != nil {
		a.logger.Error("Failed to write metrics.", "path", a.config.MetricsFile, "error", err)
		return
	}
	a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
}
