package arch

import (
	"context"

	"github.com/vk/turbarch/internal/cycle"
)

// BleedInter extracts named bleed streams and hands them to another element.
// Without a target its outflow leaves the cycle.
type BleedInter struct {
	base
	Target Element
	// BleedTarget receives every named bleed on a port of the same name.
	BleedTarget Element
	BleedNames  []string
	SourceFracW float64
	TargetFracP float64
	FuelInAir   bool
}

// NewBleedInter creates a BleedInter extracting 5% of the flow per bleed.
func NewBleedInter(name string, bleedNames ...string) *BleedInter {
	return &BleedInter{
		base:        newBase(name, KindBleedInter),
		BleedNames:  bleedNames,
		SourceFracW: .05,
		TargetFracP: 1,
	}
}

func (e *BleedInter) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec := cycle.ModuleSpec{
		Kind:        cycle.KindBleedOut,
		Composition: composition(e.FuelInAir),
		BleedNames:  append([]string(nil), e.BleedNames...),
	}
	return e.addModule(c, spec, thermo, design)
}

func (e *BleedInter) Wire(ctx context.Context, c cycle.Cycle) error {
	if e.Target == nil {
		exit := cycle.Port(cycle.FlightConditions, cycle.PortFlowIn)
		return e.fail(PhaseWire, c.ConnectFlow(e.path(cycle.PortFlowOut), exit, cycle.WithoutMassFlow()))
	}
	if err := connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""); err != nil {
		return e.fail(PhaseWire, err)
	}
	if len(e.BleedNames) == 0 {
		return nil
	}
	if e.BleedTarget == nil {
		return e.fail(PhaseWire, ErrMissingElement)
	}
	for _, bleed := range e.BleedNames {
		to := cycle.Port(e.BleedTarget.Name(), bleed)
		if err := c.ConnectFlow(e.path(bleed), to, cycle.WithoutStatics()); err != nil {
			return e.fail(PhaseWire, err)
		}
	}
	return nil
}

func (e *BleedInter) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	if e.Target == nil {
		return nil
	}
	if len(e.BleedNames) > 0 && e.BleedTarget == nil {
		return e.fail(PhaseDeclareParameters, ErrMissingElement)
	}
	for _, bleed := range e.BleedNames {
		if err := mp.AddCycleParam(e.path(bleed+":frac_W"), e.SourceFracW); err != nil {
			return e.fail(PhaseDeclareParameters, err)
		}
		target := cycle.Port(e.BleedTarget.Name(), bleed+":frac_P")
		if err := mp.AddCycleParam(target, e.TargetFracP); err != nil {
			return e.fail(PhaseDeclareParameters, err)
		}
	}
	return nil
}

func (e *BleedInter) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	if e.Target == nil {
		return nil
	}
	return e.linkArea(mp, cycle.PortFlowOut, "area")
}

// BleedIntra describes a bleed path between two elements that already model
// the extraction and injection ports. It has no solver module of its own and
// only declares the bleed fractions.
type BleedIntra struct {
	base
	Source         Element
	Target         Element
	BleedNames     []string
	SourceFracW    float64
	SourceFracP    float64
	SourceFracWork float64
	TargetFracP    float64
}

// NewBleedIntra creates a BleedIntra extracting 5% of the source flow per
// bleed at full pressure and work fractions.
func NewBleedIntra(name string, bleedNames ...string) *BleedIntra {
	return &BleedIntra{
		base:           newBase(name, KindBleedIntra),
		BleedNames:     bleedNames,
		SourceFracW:    .05,
		SourceFracP:    1,
		SourceFracWork: 1,
		TargetFracP:    1,
	}
}

func (e *BleedIntra) Realize(context.Context, cycle.Cycle, cycle.ThermoData, bool) (cycle.Module, error) {
	return nil, nil
}

func (e *BleedIntra) Wire(context.Context, cycle.Cycle) error {
	return nil
}

func (e *BleedIntra) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	if e.Target == nil {
		return nil
	}
	if e.Source == nil {
		return e.fail(PhaseDeclareParameters, ErrMissingElement)
	}
	for _, bleed := range e.BleedNames {
		src := func(field string) string { return cycle.Port(e.Source.Name(), bleed+":"+field) }
		params := []struct {
			path  string
			value float64
		}{
			{src("frac_W"), e.SourceFracW},
			{src("frac_P"), e.SourceFracP},
			{src("frac_work"), e.SourceFracWork},
			{cycle.Port(e.Target.Name(), bleed+":frac_P"), e.TargetFracP},
		}
		for _, p := range params {
			if err := mp.AddCycleParam(p.path, p.value); err != nil {
				return e.fail(PhaseDeclareParameters, err)
			}
		}
	}
	return nil
}

func (e *BleedIntra) LinkDesignOffDesign(context.Context, cycle.MultiPoint) error {
	return nil
}
