package inmemorycycle

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/signalpath"
)

// Flow is a recorded flow connection.
type Flow struct {
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	SkipMassFlow bool   `yaml:"skip_mass_flow,omitempty"`
	SkipStatics  bool   `yaml:"skip_statics,omitempty"`
}

// Signal is a recorded scalar connection.
type Signal struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Default is a recorded input default.
type Default struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Units string  `yaml:"units,omitempty"`
}

// Module is a registered module.
type Module struct {
	mu       sync.RWMutex
	name     string
	spec     cycle.ModuleSpec
	defaults []Default
}

func (m *Module) Name() string { return m.name }

func (m *Module) Spec() cycle.ModuleSpec { return m.spec }

// SetInputDefault records a default for one of the module's inputs. Setting
// the same input again replaces the earlier value.
func (m *Module) SetInputDefault(input string, value float64) error {
	addr, err := signalpath.Parse(input)
	if err != nil {
		return fmt.Errorf("module %q: %w", m.name, err)
	}
	if addr.Len() != 1 {
		return fmt.Errorf("module %q: input %q must be a single segment", m.name, input)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.defaults {
		if m.defaults[i].Name == input {
			m.defaults[i].Value = value
			return nil
		}
	}
	m.defaults = append(m.defaults, Default{Name: input, Value: value})
	return nil
}

// Defaults returns the module's input defaults in the order they were first set.
func (m *Module) Defaults() []Default {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Default(nil), m.defaults...)
}

// Cycle records the modules and connections of a single operating point.
type Cycle struct {
	mu        sync.RWMutex
	name      string
	design    bool
	modules   []*Module
	byName    map[string]*Module
	promoted  map[string]struct{}
	connected map[string]string // input path -> source path
	flows     []Flow
	signals   []Signal
	defaults  []Default
}

func newCycle(name string, design bool) *Cycle {
	return &Cycle{
		name:      name,
		design:    design,
		byName:    make(map[string]*Module),
		promoted:  make(map[string]struct{}),
		connected: make(map[string]string),
	}
}

func (c *Cycle) Name() string { return c.name }

func (c *Cycle) Design() bool { return c.design }

// AddModule registers a module under a unique, single-segment name.
func (c *Cycle) AddModule(name string, spec cycle.ModuleSpec) (cycle.Module, error) {
	addr, err := signalpath.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", c.name, err)
	}
	if addr.Len() != 1 {
		return nil, fmt.Errorf("point %q: module name %q must be a single segment", c.name, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[name]; exists {
		return nil, fmt.Errorf("point %q: module %q: %w", c.name, name, ErrDuplicateModule)
	}
	m := &Module{name: name, spec: spec}
	c.modules = append(c.modules, m)
	c.byName[name] = m
	for _, promoted := range spec.Promotes {
		c.promoted[promoted] = struct{}{}
	}
	return m, nil
}

// ConnectFlow records a flow edge between two module ports.
func (c *Cycle) ConnectFlow(from, to string, opts ...cycle.FlowOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, err := c.checkPort(from, nil)
	if err != nil {
		return err
	}
	if _, err := c.checkPort(to, src); err != nil {
		return err
	}
	if err := c.claimInput(from, to); err != nil {
		return err
	}

	o := cycle.ApplyFlowOptions(opts...)
	c.flows = append(c.flows, Flow{From: from, To: to, SkipMassFlow: o.SkipMassFlow, SkipStatics: o.SkipStatics})
	return nil
}

// Connect records a scalar connection. Either end may be a promoted signal.
func (c *Cycle) Connect(from, to string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSignal(from); err != nil {
		return err
	}
	if err := c.checkSignal(to); err != nil {
		return err
	}
	if err := c.claimInput(from, to); err != nil {
		return err
	}

	c.signals = append(c.signals, Signal{From: from, To: to})
	return nil
}

// SetInputDefault records a default for a promoted input.
func (c *Cycle) SetInputDefault(name string, value float64, units string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.promoted[name]; !ok {
		return fmt.Errorf("point %q: %q: %w", c.name, name, ErrUnknownSignal)
	}
	for i := range c.defaults {
		if c.defaults[i].Name == name {
			c.defaults[i] = Default{Name: name, Value: value, Units: units}
			return nil
		}
	}
	c.defaults = append(c.defaults, Default{Name: name, Value: value, Units: units})
	return nil
}

// flowPorts lists the flow ports each module kind exposes. Kinds missing from
// the table have no flow ports.
var flowPorts = map[cycle.ModuleKind][]string{
	cycle.KindFlightConditions: {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindInlet:            {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindDuct:             {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindSplitter:         {cycle.PortFlowIn, cycle.PortFlowOut1, cycle.PortFlowOut2},
	cycle.KindMixer:            {cycle.PortFlowIn1, cycle.PortFlowIn2, cycle.PortFlowOut},
	cycle.KindBleedOut:         {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindNozzle:           {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindCompressor:       {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindCombustor:        {cycle.PortFlowIn, cycle.PortFlowOut},
	cycle.KindTurbine:          {cycle.PortFlowIn, cycle.PortFlowOut},
}

// flowPort is a resolved "<module>.<port>" address.
type flowPort struct {
	module *Module
	port   string
}

// bleed reports whether the port is one of a bleed module's named offtakes.
func (p *flowPort) bleed() bool {
	return p.module.spec.Kind == cycle.KindBleedOut && slices.Contains(p.module.spec.BleedNames, p.port)
}

// checkPort resolves path to a flow port of a registered module. A port the
// module kind does not expose is accepted only as the far end of a bleed
// offtake of the same name.
func (c *Cycle) checkPort(path string, from *flowPort) (*flowPort, error) {
	addr, err := signalpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", c.name, err)
	}
	if addr.Len() != 2 || len(addr.Path[1].Qualifiers) > 0 {
		return nil, fmt.Errorf("point %q: %q is not a module port", c.name, path)
	}
	m, ok := c.byName[addr.Head()]
	if !ok {
		return nil, fmt.Errorf("point %q: %q: %w", c.name, addr.Head(), ErrUnknownModule)
	}

	p := &flowPort{module: m, port: addr.Path[1].Name}
	switch {
	case slices.Contains(flowPorts[m.spec.Kind], p.port), p.bleed():
		return p, nil
	case from != nil && from.bleed() && from.port == p.port:
		return p, nil
	}
	return nil, fmt.Errorf("point %q: %s module %q has no flow port %q: %w", c.name, m.spec.Kind, m.name, p.port, ErrUnknownPort)
}

func (c *Cycle) checkSignal(path string) error {
	addr, err := signalpath.Parse(path)
	if err != nil {
		return fmt.Errorf("point %q: %w", c.name, err)
	}
	if addr.Len() == 1 {
		if _, ok := c.promoted[path]; !ok {
			return fmt.Errorf("point %q: %q: %w", c.name, path, ErrUnknownSignal)
		}
		return nil
	}
	if _, ok := c.byName[addr.Head()]; !ok {
		return fmt.Errorf("point %q: %q: %w", c.name, addr.Head(), ErrUnknownModule)
	}
	return nil
}

func (c *Cycle) claimInput(from, to string) error {
	if src, taken := c.connected[to]; taken {
		return fmt.Errorf("point %q: %q is fed by %q: %w", c.name, to, src, ErrInputConnected)
	}
	c.connected[to] = from
	return nil
}

// Modules returns every module in registration order.
func (c *Cycle) Modules() []*Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Module(nil), c.modules...)
}

// ElementModules returns the modules that represent engine elements, leaving
// out boundary modules.
func (c *Cycle) ElementModules() []*Module {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Module
	for _, m := range c.modules {
		if !m.spec.Kind.Boundary() {
			out = append(out, m)
		}
	}
	return out
}

// Module looks up a module by name.
func (c *Cycle) Module(name string) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byName[name]
	return m, ok
}

// Flows returns every flow edge in connection order.
func (c *Cycle) Flows() []Flow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Flow(nil), c.flows...)
}

// ElementFlows returns the flow edges between engine elements, leaving out
// edges from or to a boundary module.
func (c *Cycle) ElementFlows() []Flow {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Flow
	for _, f := range c.flows {
		if c.isBoundary(f.From) || c.isBoundary(f.To) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (c *Cycle) isBoundary(port string) bool {
	addr, err := signalpath.Parse(port)
	if err != nil {
		return false
	}
	m, ok := c.byName[addr.Head()]
	return ok && m.spec.Kind.Boundary()
}

// Signals returns every scalar connection in connection order.
func (c *Cycle) Signals() []Signal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Signal(nil), c.signals...)
}

// Defaults returns the cycle-level input defaults.
func (c *Cycle) Defaults() []Default {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Default(nil), c.defaults...)
}
