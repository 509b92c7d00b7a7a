package cycle

// ThermoData is the opaque thermodynamic table token handed to every module.
// It is passed through unmodified.
type ThermoData any

// ModuleKind identifies the solver module type registered for an element or a
// boundary condition.
type ModuleKind string

const (
	KindFlightConditions ModuleKind = "FlightConditions"
	KindInlet            ModuleKind = "Inlet"
	KindDuct             ModuleKind = "Duct"
	KindSplitter         ModuleKind = "Splitter"
	KindMixer            ModuleKind = "Mixer"
	KindBleedOut         ModuleKind = "BleedOut"
	KindNozzle           ModuleKind = "Nozzle"
	KindCompressor       ModuleKind = "Compressor"
	KindCombustor        ModuleKind = "Combustor"
	KindTurbine          ModuleKind = "Turbine"
	KindShaft            ModuleKind = "Shaft"
	KindPerformance      ModuleKind = "Performance"
)

// Boundary reports whether modules of this kind represent the free stream or
// the performance summary rather than an engine element.
func (k ModuleKind) Boundary() bool {
	return k == KindFlightConditions || k == KindPerformance
}

// Composition selects the element list a flow module is initialized with.
type Composition string

const (
	CompositionAir     Composition = "AIR_MIX"
	CompositionAirFuel Composition = "AIR_FUEL_MIX"
)

// ModuleSpec describes the solver module to register. Fields that do not apply
// to a kind are left zero.
type ModuleSpec struct {
	Kind   ModuleKind `yaml:"kind"`
	Design bool       `yaml:"design"`
	Thermo ThermoData `yaml:"-"`

	Composition          Composition `yaml:"composition,omitempty"`
	SecondaryComposition Composition `yaml:"secondary_composition,omitempty"`

	Map        string   `yaml:"map,omitempty"`
	Fuel       string   `yaml:"fuel,omitempty"`
	NozzleType string   `yaml:"nozzle_type,omitempty"`
	LossCoef   string   `yaml:"loss_coef,omitempty"`
	Statics    bool     `yaml:"statics,omitempty"`
	BleedNames []string `yaml:"bleed_names,omitempty"`

	NumPorts   int `yaml:"num_ports,omitempty"`
	NumNozzles int `yaml:"num_nozzles,omitempty"`
	NumBurners int `yaml:"num_burners,omitempty"`

	// Promotes maps a module-local input to the cycle-level name it is exposed
	// under, e.g. "Nmech" to "hp_shaft_Nmech".
	Promotes map[string]string `yaml:"promotes,omitempty"`
}

// Module is a registered solver module.
type Module interface {
	Name() string
	Spec() ModuleSpec
	// SetInputDefault assigns a default to one of the module's own inputs.
	SetInputDefault(input string, value float64) error
}

// Cycle is the flow/mechanical container of a single operating point.
type Cycle interface {
	Name() string
	Design() bool
	AddModule(name string, spec ModuleSpec) (Module, error)
	// ConnectFlow joins an outflow port to an inflow port, both addressed as
	// "<module>.<port>".
	ConnectFlow(from, to string, opts ...FlowOption) error
	// Connect joins two scalar signals.
	Connect(from, to string) error
	// SetInputDefault assigns a default to a promoted, cycle-level input.
	SetInputDefault(name string, value float64, units string) error
}

// MultiPoint holds every operating point plus the declarations shared across
// them.
type MultiPoint interface {
	AddPoint(name string, design bool) (Cycle, error)
	AddCycleParam(path string, value float64) error
	// ConnectDesignOffDesign declares that designPath, computed at the design
	// point, fixes offDesignPath at every off-design point.
	ConnectDesignOffDesign(designPath, offDesignPath string) error
}

// Problem is the solved-problem handle.
type Problem interface {
	SetValue(path string, value float64, units string) error
}

// FlowOptions tune a single flow connection.
type FlowOptions struct {
	SkipMassFlow bool
	SkipStatics  bool
}

// FlowOption mutates FlowOptions.
type FlowOption func(*FlowOptions)

// WithoutMassFlow connects the stream without propagating mass flow, as for
// free-stream sources and sinks.
func WithoutMassFlow() FlowOption {
	return func(o *FlowOptions) { o.SkipMassFlow = true }
}

// WithoutStatics connects only total properties.
func WithoutStatics() FlowOption {
	return func(o *FlowOptions) { o.SkipStatics = true }
}

// ApplyFlowOptions folds opts into a FlowOptions value.
func ApplyFlowOptions(opts ...FlowOption) FlowOptions {
	var o FlowOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
