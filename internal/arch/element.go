package arch

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/turbarch/internal/cycle"
)

// Element is a node of an engine architecture.
//
// Name is the external wiring key: every module, port and parameter the
// element declares is addressed through it. ID is an opaque handle assigned at
// construction; two elements are the same element only if they are the same
// instance.
type Element interface {
	Name() string
	ID() uuid.UUID
	Kind() Kind

	// Realize registers the element's solver module in c. It may return a nil
	// module when the element has no solver representation.
	Realize(ctx context.Context, c cycle.Cycle, thermo cycle.ThermoData, design bool) (cycle.Module, error)
	Wire(ctx context.Context, c cycle.Cycle) error
	DeclareParameters(ctx context.Context, mp cycle.MultiPoint) error
	LinkDesignOffDesign(ctx context.Context, mp cycle.MultiPoint) error
	ExportSolvedValues(ctx context.Context, p cycle.Problem, designPoint string, evalPoints []string) error

	sealed()
}

// Same reports whether a and b are the same element instance.
func Same(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// base carries identity and the default phase behavior. Realize, Wire and
// LinkDesignOffDesign have no default; variants that do not override them
// fail with ErrAbstractMethodInvoked.
type base struct {
	name string
	id   uuid.UUID
	kind Kind
}

func newBase(name string, kind Kind) base {
	return base{name: name, id: uuid.New(), kind: kind}
}

func (b *base) Name() string  { return b.name }
func (b *base) ID() uuid.UUID { return b.id }
func (b *base) Kind() Kind    { return b.kind }
func (b *base) sealed()       {}

func (b *base) Realize(context.Context, cycle.Cycle, cycle.ThermoData, bool) (cycle.Module, error) {
	return nil, b.fail(PhaseRealize, ErrAbstractMethodInvoked)
}

func (b *base) Wire(context.Context, cycle.Cycle) error {
	return b.fail(PhaseWire, ErrAbstractMethodInvoked)
}

func (b *base) DeclareParameters(context.Context, cycle.MultiPoint) error {
	return nil
}

func (b *base) LinkDesignOffDesign(context.Context, cycle.MultiPoint) error {
	return b.fail(PhaseLinkDesignOffDesign, ErrAbstractMethodInvoked)
}

func (b *base) ExportSolvedValues(context.Context, cycle.Problem, string, []string) error {
	return nil
}

func (b *base) fail(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	return &ElementError{Element: b.name, Kind: b.kind, Phase: phase, Err: err}
}

// path addresses one of the element's own variables.
func (b *base) path(field string) string {
	return cycle.Port(b.name, field)
}

// addModule registers spec under the element's name with the design flag and
// thermo token filled in.
func (b *base) addModule(c cycle.Cycle, spec cycle.ModuleSpec, thermo cycle.ThermoData, design bool) (cycle.Module, error) {
	spec.Design = design
	spec.Thermo = thermo
	m, err := c.AddModule(b.name, spec)
	if err != nil {
		return nil, b.fail(PhaseRealize, err)
	}
	return m, nil
}

// setDefaults seeds module inputs in the order given.
func (b *base) setDefaults(m cycle.Module, defaults ...inputDefault) error {
	for _, d := range defaults {
		if err := m.SetInputDefault(d.input, d.value); err != nil {
			return b.fail(PhaseRealize, err)
		}
	}
	return nil
}

type inputDefault struct {
	input string
	value float64
}

// linkArea fixes the off-design flow area from the design static area of port.
func (b *base) linkArea(mp cycle.MultiPoint, port, area string) error {
	if err := mp.ConnectDesignOffDesign(b.path(port+cycle.StatArea), b.path(area)); err != nil {
		return b.fail(PhaseLinkDesignOffDesign, err)
	}
	return nil
}

// inboundPort returns the port of target that receives flow from src.
func inboundPort(src, target Element) string {
	if m, ok := target.(*Mixer); ok {
		return m.inletPortFor(src)
	}
	return cycle.PortFlowIn
}

// connectFlowTarget connects outPort of src to target. An empty inPort is
// resolved from the target's own port layout. A nil target is not connected.
func connectFlowTarget(c cycle.Cycle, src, target Element, outPort, inPort string) error {
	if target == nil {
		return nil
	}
	if inPort == "" {
		inPort = inboundPort(src, target)
	}
	return c.ConnectFlow(cycle.Port(src.Name(), outPort), cycle.Port(target.Name(), inPort))
}
