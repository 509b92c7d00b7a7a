package arch

// Phase identifies one step of the build protocol.
type Phase int

const (
	// PhaseNone marks failures raised outside any phase, e.g. at construction.
	PhaseNone Phase = iota
	PhaseRealize
	PhaseWire
	PhaseDeclareParameters
	PhaseLinkDesignOffDesign
	PhaseExportSolvedValues
)

var phaseNames = map[Phase]string{
	PhaseNone:                "construct",
	PhaseRealize:             "realize",
	PhaseWire:                "wire",
	PhaseDeclareParameters:   "declare_parameters",
	PhaseLinkDesignOffDesign: "link_design_off_design",
	PhaseExportSolvedValues:  "export_solved_values",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
