package arch

import (
	"context"

	"github.com/vk/turbarch/internal/cycle"
)

// Inlet takes air from the free stream.
type Inlet struct {
	base
	Target           Element
	Mach             float64
	PressureRecovery float64
}

// NewInlet creates an Inlet with design Mach 0.6 and full pressure recovery.
func NewInlet(name string) *Inlet {
	return &Inlet{base: newBase(name, KindInlet), Mach: .6, PressureRecovery: 1}
}

func (e *Inlet) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	m, err := e.addModule(c, cycle.ModuleSpec{Kind: cycle.KindInlet, Composition: cycle.CompositionAir}, thermo, design)
	if err != nil {
		return nil, err
	}
	if design {
		if err := e.setDefaults(m, inputDefault{"MN", e.Mach}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (e *Inlet) Wire(ctx context.Context, c cycle.Cycle) error {
	from := cycle.Port(cycle.FlightConditions, cycle.PortFlowOut)
	if err := c.ConnectFlow(from, e.path(cycle.PortFlowIn), cycle.WithoutMassFlow()); err != nil {
		return e.fail(PhaseWire, err)
	}
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Inlet) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	return e.fail(PhaseDeclareParameters, mp.AddCycleParam(e.path("ram_recovery"), e.PressureRecovery))
}

func (e *Inlet) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	return e.linkArea(mp, cycle.PortFlowOut, "area")
}

// Duct is a pass-through flow element with a pressure loss.
type Duct struct {
	base
	Target           Element
	Mach             float64
	PressureLossFrac float64
	FuelInAir        bool
	Statics          bool
}

// NewDuct creates a Duct with design Mach 0.3, no loss and statics enabled.
func NewDuct(name string) *Duct {
	return &Duct{base: newBase(name, KindDuct), Mach: .3, Statics: true}
}

func (e *Duct) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec := cycle.ModuleSpec{
		Kind:        cycle.KindDuct,
		Composition: composition(e.FuelInAir),
		Statics:     e.Statics,
	}
	m, err := e.addModule(c, spec, thermo, design)
	if err != nil {
		return nil, err
	}
	defaults := []inputDefault{{"dPqP", e.PressureLossFrac}}
	if design {
		defaults = append(defaults, inputDefault{"MN", e.Mach})
	}
	if err := e.setDefaults(m, defaults...); err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Duct) Wire(ctx context.Context, c cycle.Cycle) error {
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Duct) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	return e.linkArea(mp, cycle.PortFlowOut, "area")
}

// Splitter divides a stream into a core branch on Fl_O1 and a bypass branch on
// Fl_O2.
type Splitter struct {
	base
	TargetCore   Element
	TargetBypass Element
	BPR          float64
	CoreMach     float64
	BypassMach   float64
}

// NewSplitter creates a Splitter with a bypass ratio of 1 and branch Mach 0.3.
func NewSplitter(name string) *Splitter {
	return &Splitter{base: newBase(name, KindSplitter), BPR: 1, CoreMach: .3, BypassMach: .3}
}

func (e *Splitter) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	m, err := e.addModule(c, cycle.ModuleSpec{Kind: cycle.KindSplitter, Composition: cycle.CompositionAir}, thermo, design)
	if err != nil {
		return nil, err
	}
	if design {
		err := e.setDefaults(m,
			inputDefault{"BPR", e.BPR},
			inputDefault{"MN1", e.CoreMach},
			inputDefault{"MN2", e.BypassMach},
		)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (e *Splitter) Wire(ctx context.Context, c cycle.Cycle) error {
	if err := connectFlowTarget(c, e, e.TargetCore, cycle.PortFlowOut1, ""); err != nil {
		return e.fail(PhaseWire, err)
	}
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.TargetBypass, cycle.PortFlowOut2, ""))
}

func (e *Splitter) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	if err := e.linkArea(mp, cycle.PortFlowOut1, "area1"); err != nil {
		return err
	}
	return e.linkArea(mp, cycle.PortFlowOut2, "area2")
}

// Mixer merges two streams. The first source enters on Fl_I1, the second on
// Fl_I2.
type Mixer struct {
	base
	Source1 Element
	Source2 Element
	Target  Element
}

// NewMixer creates a Mixer.
func NewMixer(name string) *Mixer {
	return &Mixer{base: newBase(name, KindMixer)}
}

func (e *Mixer) inletPortFor(src Element) string {
	if e.Source2 != nil && Same(src, e.Source2) {
		return cycle.PortFlowIn2
	}
	return cycle.PortFlowIn1
}

func (e *Mixer) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec := cycle.ModuleSpec{
		Kind:                 cycle.KindMixer,
		Composition:          cycle.CompositionAirFuel,
		SecondaryComposition: cycle.CompositionAir,
	}
	return e.addModule(c, spec, thermo, design)
}

func (e *Mixer) Wire(ctx context.Context, c cycle.Cycle) error {
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Mixer) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	if err := e.linkArea(mp, cycle.PortFlowOut, "area1"); err != nil {
		return err
	}
	err := mp.ConnectDesignOffDesign(e.path("Fl_I1_calc"+cycle.StatArea), e.path("Fl_I1_stat_calc.area"))
	return e.fail(PhaseLinkDesignOffDesign, err)
}

// NozzleType selects the nozzle exit geometry.
type NozzleType string

const (
	NozzleCV   NozzleType = "CV"
	NozzleCD   NozzleType = "CD"
	NozzleCVCD NozzleType = "CD_CV"
)

// Nozzle expands a stream to ambient pressure, or feeds another element when
// it has a target.
type Nozzle struct {
	base
	Target           Element
	Type             NozzleType
	VelocityLossCoef float64
	FuelInAir        bool
	// FlowOut names the target's inbound port. Empty picks the port from the
	// target's layout.
	FlowOut string
}

// NewNozzle creates a convergent Nozzle with Cv 1 carrying combustion products.
func NewNozzle(name string) *Nozzle {
	return &Nozzle{base: newBase(name, KindNozzle), Type: NozzleCV, VelocityLossCoef: 1, FuelInAir: true}
}

func (e *Nozzle) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec := cycle.ModuleSpec{
		Kind:        cycle.KindNozzle,
		Composition: composition(e.FuelInAir),
		NozzleType:  string(e.Type),
		LossCoef:    "Cv",
	}
	return e.addModule(c, spec, thermo, design)
}

func (e *Nozzle) Wire(ctx context.Context, c cycle.Cycle) error {
	if e.Target == nil {
		ambient := cycle.Port(cycle.FlightConditions, cycle.PortFlowOut+cycle.StatPressure)
		return e.fail(PhaseWire, c.Connect(ambient, e.path("Ps_exhaust")))
	}
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, e.FlowOut))
}

func (e *Nozzle) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	return e.fail(PhaseDeclareParameters, mp.AddCycleParam(e.path("Cv"), e.VelocityLossCoef))
}

func (e *Nozzle) LinkDesignOffDesign(context.Context, cycle.MultiPoint) error {
	return nil
}

func composition(fuelInAir bool) cycle.Composition {
	if fuelInAir {
		return cycle.CompositionAirFuel
	}
	return cycle.CompositionAir
}
