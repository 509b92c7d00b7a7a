package arch

import (
	"context"
	"fmt"

	"github.com/vk/turbarch/internal/cycle"
)

// Rotor is a turbomachinery element driven through a Shaft. Only Compressor
// and Turbine are rotors.
type Rotor interface {
	Element
	Shaft() *Shaft
	bindShaft(s *Shaft)
}

// rotor holds the shaft back-reference. It is written once, by NewShaft.
type rotor struct {
	shaft *Shaft
}

// Shaft returns the shaft driving the element, or nil when unbound.
func (r *rotor) Shaft() *Shaft { return r.shaft }

func (r *rotor) bindShaft(s *Shaft) { r.shaft = s }

// shaftSpeed returns the shaft-speed promotion of a rotor module, failing when
// no shaft is bound.
func (r *rotor) shaftSpeed() (map[string]string, error) {
	if r.shaft == nil {
		return nil, ErrUnboundTurbomachinery
	}
	return map[string]string{"Nmech": cycle.ShaftSpeed(r.shaft.Name())}, nil
}

// CompressorMap names a compressor performance map.
type CompressorMap string

const (
	CompressorMapAXI5 CompressorMap = "AXI5"
	CompressorMapLPC  CompressorMap = "LPCMap"
	CompressorMapHPC  CompressorMap = "HPCMap"
)

// TurbineMap names a turbine performance map.
type TurbineMap string

const (
	TurbineMapLPT2269 TurbineMap = "LPT2269"
	TurbineMapLPT     TurbineMap = "LPTMap"
	TurbineMapHPT     TurbineMap = "HPTMap"
)

// FuelType names the burner fuel.
type FuelType string

const (
	FuelJetA FuelType = "Jet-A(g)"
	FuelJP7  FuelType = "JP-7"
)

var (
	compressorScaleFactors = []string{"s_PR", "s_Wc", "s_eff", "s_Nc"}
	turbineScaleFactors    = []string{"s_PR", "s_Wp", "s_eff", "s_Np"}
)

// Compressor raises the pressure of its inflow.
type Compressor struct {
	base
	rotor
	Target        Element
	Map           CompressorMap
	Mach          float64
	PressureRatio float64
	Efficiency    float64
}

// NewCompressor creates a Compressor on the AXI5 map with a pressure ratio of 5.
func NewCompressor(name string) *Compressor {
	return &Compressor{
		base:          newBase(name, KindCompressor),
		Map:           CompressorMapAXI5,
		Mach:          .01,
		PressureRatio: 5,
		Efficiency:    1,
	}
}

func (e *Compressor) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	return realizeRotor(&e.base, &e.rotor, c, thermo, design, cycle.ModuleSpec{
		Kind:        cycle.KindCompressor,
		Map:         string(e.Map),
		Composition: cycle.CompositionAir,
	}, e.Mach)
}

func (e *Compressor) Wire(ctx context.Context, c cycle.Cycle) error {
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Compressor) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	return linkScaleFactors(&e.base, mp, compressorScaleFactors)
}

func (e *Compressor) ExportSolvedValues(ctx context.Context, p cycle.Problem, designPoint string, evalPoints []string) error {
	if err := p.SetValue(cycle.Path(designPoint, e.name, "PR"), e.PressureRatio, ""); err != nil {
		return e.fail(PhaseExportSolvedValues, err)
	}
	return e.fail(PhaseExportSolvedValues, p.SetValue(cycle.Path(designPoint, e.name, "eff"), e.Efficiency, ""))
}

// Burner adds fuel to its inflow.
type Burner struct {
	base
	Target           Element
	Fuel             FuelType
	Mach             float64
	PressureLossFrac float64
}

// NewBurner creates a Jet-A Burner without pressure loss.
func NewBurner(name string) *Burner {
	return &Burner{base: newBase(name, KindBurner), Fuel: FuelJetA, Mach: .01}
}

func (e *Burner) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec := cycle.ModuleSpec{
		Kind:                 cycle.KindCombustor,
		Fuel:                 string(e.Fuel),
		Composition:          cycle.CompositionAir,
		SecondaryComposition: cycle.CompositionAirFuel,
	}
	m, err := e.addModule(c, spec, thermo, design)
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

func (e *Burner) Wire(ctx context.Context, c cycle.Cycle) error {
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Burner) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	return e.fail(PhaseDeclareParameters, mp.AddCycleParam(e.path("dPqP"), e.PressureLossFrac))
}

func (e *Burner) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	return e.linkArea(mp, cycle.PortFlowOut, "area")
}

// Turbine extracts work from its inflow.
type Turbine struct {
	base
	rotor
	Target     Element
	Map        TurbineMap
	Mach       float64
	Efficiency float64
}

// NewTurbine creates a Turbine on the LPT2269 map.
func NewTurbine(name string) *Turbine {
	return &Turbine{
		base:       newBase(name, KindTurbine),
		Map:        TurbineMapLPT2269,
		Mach:       .4,
		Efficiency: 1,
	}
}

func (e *Turbine) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	return realizeRotor(&e.base, &e.rotor, c, thermo, design, cycle.ModuleSpec{
		Kind:        cycle.KindTurbine,
		Map:         string(e.Map),
		Composition: cycle.CompositionAirFuel,
	}, e.Mach)
}

func (e *Turbine) Wire(ctx context.Context, c cycle.Cycle) error {
	return e.fail(PhaseWire, connectFlowTarget(c, e, e.Target, cycle.PortFlowOut, ""))
}

func (e *Turbine) LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error {
	return linkScaleFactors(&e.base, mp, turbineScaleFactors)
}

func (e *Turbine) ExportSolvedValues(ctx context.Context, p cycle.Problem, designPoint string, evalPoints []string) error {
	return e.fail(PhaseExportSolvedValues, p.SetValue(cycle.Path(designPoint, e.name, "eff"), e.Efficiency, ""))
}

func realizeRotor(b *base, r *rotor, c cycle.Cycle, thermo cycle.ThermoData, design bool, spec cycle.ModuleSpec, mach float64) (cycle.Module, error) {
	promotes, err := r.shaftSpeed()
	if err != nil {
		return nil, b.fail(PhaseRealize, err)
	}
	spec.Promotes = promotes
	m, err := b.addModule(c, spec, thermo, design)
	if err != nil {
		return nil, err
	}
	if design {
		if err := b.setDefaults(m, inputDefault{"MN", mach}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func linkScaleFactors(b *base, mp cycle.MultiPoint, factors []string) error {
	for _, f := range factors {
		if err := mp.ConnectDesignOffDesign(b.path(f), b.path(f)); err != nil {
			return b.fail(PhaseLinkDesignOffDesign, err)
		}
	}
	return b.linkArea(mp, cycle.PortFlowOut, "area")
}

// DefaultShaftRPM is the design speed of a shaft created without one.
const DefaultShaftRPM = 10000.0

// Shaft couples two or more rotors at a common speed.
type Shaft struct {
	base
	connections []Rotor
	RPMDesign   float64
	PowerLoss   float64
}

// NewShaft creates a Shaft and binds it to each connection, in order. It fails
// with ErrDuplicateShaftBinding, leaving every connection untouched, when any
// connection is already driven by a shaft or is listed twice.
func NewShaft(name string, connections ...Rotor) (*Shaft, error) {
	s := &Shaft{
		base:        newBase(name, KindShaft),
		connections: append([]Rotor(nil), connections...),
		RPMDesign:   DefaultShaftRPM,
	}

	seen := make(map[Rotor]struct{}, len(connections))
	for _, conn := range connections {
		if conn == nil {
			return nil, s.fail(PhaseNone, fmt.Errorf("nil connection: %w", ErrMissingElement))
		}
		if bound := conn.Shaft(); bound != nil {
			return nil, s.fail(PhaseNone, fmt.Errorf("%s %q is driven by shaft %q: %w", conn.Kind(), conn.Name(), bound.Name(), ErrDuplicateShaftBinding))
		}
		if _, dup := seen[conn]; dup {
			return nil, s.fail(PhaseNone, fmt.Errorf("%s %q is listed twice: %w", conn.Kind(), conn.Name(), ErrDuplicateShaftBinding))
		}
		seen[conn] = struct{}{}
	}
	for _, conn := range connections {
		conn.bindShaft(s)
	}
	return s, nil
}

// Connections returns the bound rotors in torque-port order.
func (e *Shaft) Connections() []Rotor {
	return append([]Rotor(nil), e.connections...)
}

func (e *Shaft) Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	if len(e.connections) < 2 {
		return nil, e.fail(PhaseRealize, ErrInvalidShaftTopology)
	}
	speed := cycle.ShaftSpeed(e.name)
	spec := cycle.ModuleSpec{
		Kind:     cycle.KindShaft,
		NumPorts: len(e.connections),
		Promotes: map[string]string{"Nmech": speed},
	}
	m, err := e.addModule(c, spec, thermo, design)
	if err != nil {
		return nil, err
	}
	if design {
		if err := c.SetInputDefault(speed, e.RPMDesign, cycle.UnitRPM); err != nil {
			return nil, e.fail(PhaseRealize, err)
		}
	}
	return m, nil
}

func (e *Shaft) Wire(ctx context.Context, c cycle.Cycle) error {
	for i, conn := range e.connections {
		if err := c.Connect(cycle.Port(conn.Name(), cycle.PortTorque), e.path(cycle.TorquePort(i))); err != nil {
			return e.fail(PhaseWire, err)
		}
	}
	return nil
}

func (e *Shaft) DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error {
	return e.fail(PhaseDeclareParameters, mp.AddCycleParam(e.path("fracLoss"), e.PowerLoss))
}

func (e *Shaft) LinkDesignOffDesign(context.Context, cycle.MultiPoint) error {
	return nil
}
