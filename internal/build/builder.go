package build

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/ctxlog"
	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/flowgraph"
)

// Builder realizes one architecture for one problem.
type Builder struct {
	arch    *arch.Architecture
	problem *Problem
	thermo  cycle.ThermoData
	metrics *Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithThermoData sets the thermo token handed to every module.
func WithThermoData(t cycle.ThermoData) Option {
	return func(b *Builder) { b.thermo = t }
}

// WithMetrics enables build instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New creates a Builder.
func New(a *arch.Architecture, p *Problem, opts ...Option) *Builder {
	b := &Builder{arch: a, problem: p}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Point is a realized operating point.
type Point struct {
	Condition *Condition
	Cycle     cycle.Cycle
	// Modules holds the realized module of each element, by element name.
	// Elements that realize no module are absent.
	Modules map[string]cycle.Module
}

// Result is the outcome of a successful build.
type Result struct {
	Points []*Point
	Graph  *flowgraph.Graph
}

// Point looks up a realized point by name.
func (r *Result) Point(name string) (*Point, bool) {
	for _, p := range r.Points {
		if p.Condition.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Build realizes the architecture into mp: one point per condition, then the
// shared parameters, then the design/off-design links.
func (b *Builder) Build(ctx context.Context, mp cycle.MultiPoint) (_ *Result, err error) {
	logger := ctxlog.FromContext(ctx).With("architecture", b.arch.ID().String())
	ctx = ctxlog.WithLogger(ctx, logger)
	start := time.Now()
	modules := 0
	defer func() {
		status := statusSuccess
		if err != nil {
			status = statusFailure
		}
		b.metrics.RecordBuild(status, time.Since(start), modules)
	}()

	if err := b.problem.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Indexing architecture flow graph.", "elements", b.arch.Len())
	graph, err := flowgraph.FromArchitecture(b.arch)
	if err != nil {
		return nil, fmt.Errorf("invalid architecture: %w", err)
	}
	if err := graph.DetectCycles(); err != nil {
		logger.Warn("Architecture contains a closed flow loop.", "error", err)
	}

	res := &Result{Graph: graph}
	for _, cond := range b.problem.Conditions() {
		pt, err := b.buildPoint(ctx, mp, graph, cond)
		if err != nil {
			return nil, err
		}
		modules += len(pt.Modules)
		res.Points = append(res.Points, pt)
	}

	err = b.forEach(ctx, arch.PhaseDeclareParameters, "", func(el arch.Element) error {
		return el.DeclareParameters(ctx, mp)
	})
	if err != nil {
		return nil, err
	}

	if len(b.problem.Evaluate) > 0 {
		err = b.forEach(ctx, arch.PhaseLinkDesignOffDesign, "", func(el arch.Element) error {
			return el.LinkDesignOffDesign(ctx, mp)
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Architecture built.", "points", len(res.Points), "elements", b.arch.Len(), "modules", modules)
	return res, nil
}

func (b *Builder) buildPoint(ctx context.Context, mp cycle.MultiPoint, graph *flowgraph.Graph, cond *Condition) (*Point, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Adding operating point.", "point", cond.Name, "design", cond.Design)

	c, err := mp.AddPoint(cond.Name, cond.Design)
	if err != nil {
		return nil, fmt.Errorf("failed to add point %q: %w", cond.Name, err)
	}
	if err := addFlightConditions(c, b.thermo, cond.Design); err != nil {
		return nil, fmt.Errorf("point %q: %w", cond.Name, err)
	}

	pt := &Point{Condition: cond, Cycle: c, Modules: make(map[string]cycle.Module)}
	err = b.forEach(ctx, arch.PhaseRealize, cond.Name, func(el arch.Element) error {
		m, err := el.Realize(ctx, c, b.thermo, cond.Design)
		if err != nil {
			return err
		}
		if m != nil {
			pt.Modules[el.Name()] = m
		} else {
			logger.Debug("Element realized no module.", "point", cond.Name, "element", el.Name(), "kind", el.Kind())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := addPerformance(c, b.arch, b.thermo, cond.Design); err != nil {
		return nil, fmt.Errorf("point %q: %w", cond.Name, err)
	}

	err = b.forEach(ctx, arch.PhaseWire, cond.Name, func(el arch.Element) error {
		return el.Wire(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	if err := connectPerformance(c, b.arch, graph); err != nil {
		return nil, fmt.Errorf("point %q: %w", cond.Name, err)
	}
	return pt, nil
}

// Configure pushes every condition's targets and every element's literal
// values into the solved problem.
func (b *Builder) Configure(ctx context.Context, p cycle.Problem) error {
	if err := b.problem.Validate(); err != nil {
		return err
	}
	for _, cond := range b.problem.Conditions() {
		if err := cond.Apply(p); err != nil {
			return err
		}
	}

	design, evals := b.problem.Design.Name, b.problem.EvaluateNames()
	return b.forEach(ctx, arch.PhaseExportSolvedValues, "", func(el arch.Element) error {
		return el.ExportSolvedValues(ctx, p, design, evals)
	})
}

// forEach runs fn over every element in order and stops at the first error.
func (b *Builder) forEach(ctx context.Context, phase arch.Phase, point string, fn func(arch.Element) error) error {
	logger := ctxlog.FromContext(ctx)
	for _, el := range b.arch.Elements() {
		logger.Debug("Running element phase.", "phase", phase.String(), "point", point, "element", el.Name(), "kind", el.Kind().String())

		err := fn(el)
		b.metrics.RecordPhase(phase.String(), el.Kind().String(), err)
		if err == nil {
			continue
		}

		var elErr *arch.ElementError
		if !errors.As(err, &elErr) {
			err = &arch.ElementError{Element: el.Name(), Kind: el.Kind(), Phase: phase, Err: err}
		}
		logger.Error("Element phase failed.", "phase", phase.String(), "point", point, "element", el.Name(), "error", err)
		if point != "" {
			return fmt.Errorf("point %q: %w", point, err)
		}
		return err
	}
	return nil
}
