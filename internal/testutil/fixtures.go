package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/build"
)

// Turbojet returns inlet -> comp -> burner -> turb -> nozz with comp and turb
// on a common shaft.
func Turbojet(t *testing.T) *arch.Architecture {
	t.Helper()

	inlet := arch.NewInlet("inlet")
	comp := arch.NewCompressor("comp")
	comp.Mach, comp.PressureRatio, comp.Efficiency = .02, 13.5, .83
	burner := arch.NewBurner("burner")
	burner.Mach, burner.PressureLossFrac = .02, .03
	turb := arch.NewTurbine("turb")
	turb.Efficiency = .86
	nozz := arch.NewNozzle("nozz")
	nozz.Type, nozz.VelocityLossCoef = arch.NozzleCD, .99

	inlet.Target = comp
	comp.Target = burner
	burner.Target = turb
	turb.Target = nozz

	shaft, err := arch.NewShaft("shaft", comp, turb)
	require.NoError(t, err)
	shaft.RPMDesign = 8070

	return arch.New(inlet, comp, burner, turb, nozz, shaft)
}

// SplitTurbofan returns inlet -> duct -> splitter, with the core branch through
// comp -> burner -> turb -> core_nozz and the bypass branch straight to
// byp_nozz. comp and turb share a shaft.
func SplitTurbofan(t *testing.T) *arch.Architecture {
	t.Helper()

	inlet := arch.NewInlet("inlet")
	duct := arch.NewDuct("duct")
	split := arch.NewSplitter("splitter")
	split.BPR, split.BypassMach = 5, .45
	comp := arch.NewCompressor("comp")
	comp.PressureRatio, comp.Efficiency = 13.5, .83
	burner := arch.NewBurner("burner")
	burner.PressureLossFrac = .03
	turb := arch.NewTurbine("turb")
	turb.Efficiency = .86
	coreNozz := arch.NewNozzle("core_nozz")
	bypNozz := arch.NewNozzle("byp_nozz")
	bypNozz.FuelInAir = false

	inlet.Target = duct
	duct.Target = split
	split.TargetCore, split.TargetBypass = comp, bypNozz
	comp.Target = burner
	burner.Target = turb
	turb.Target = coreNozz

	shaft, err := arch.NewShaft("shaft", comp, turb)
	require.NoError(t, err)
	shaft.RPMDesign = 8070

	return arch.New(inlet, duct, split, comp, burner, turb, coreNozz, bypNozz, shaft)
}

// DesignOnly returns the sea-level static design problem.
func DesignOnly() *build.Problem {
	return &build.Problem{Design: build.NewDesignCondition(1e-6, 0, 20017, 1314)}
}

// DesignAndOffDesign returns the design problem plus one off-design point OD0.
func DesignAndOffDesign() *build.Problem {
	p := DesignOnly()
	p.Evaluate = []*build.Condition{build.NewEvaluateCondition("OD0", 1e-5, 0, 10e3)}
	return p
}

// TurbojetHCL describes the Turbojet fixture with an off-design point.
const TurbojetHCL = `
point "design" {
  design          = true
  mach            = 0.000001
  alt             = 0
  thrust          = 20017
  turbine_in_temp = 1314
}

point "OD0" {
  mach   = 0.00001
  alt    = 0
  thrust = 10000
}

element "inlet" "inlet" {
  target     = "comp"
  mach       = 0.6
  p_recovery = 1
}

element "compressor" "comp" {
  target = "burner"
  map    = "AXI5"
  mach   = 0.02
  pr     = 13.5
  eff    = 0.83
}

element "burner" "burner" {
  target      = "turb"
  fuel        = "Jet-A(g)"
  mach        = 0.02
  p_loss_frac = 0.03
}

element "turbine" "turb" {
  target = "nozz"
  map    = "LPT2269"
  mach   = 0.4
  eff    = 0.86
}

element "nozzle" "nozz" {
  type               = "CD"
  v_loss_coefficient = 0.99
}

element "shaft" "shaft" {
  connections = ["comp", "turb"]
  rpm_design  = 8070
  power_loss  = 0
}
`

// TurbofanHCL describes a mixed-exhaust turbofan whose single shaft drives
// the fan, the core compressor and the turbine.
const TurbofanHCL = `
point "design" {
  design          = true
  mach            = 0.000001
  alt             = 0
  thrust          = 20017
  turbine_in_temp = 1314
}

element "inlet" "inlet" {
  target = "fan"
}

element "compressor" "fan" {
  target = "splitter"
  mach   = 0.4578
  pr     = 1.5
  eff    = 0.89
}

element "splitter" "splitter" {
  target_core   = "comp"
  target_bypass = "byp_duct"
  bpr           = 5
  core_mach     = 0.3
  bypass_mach   = 0.45
}

element "compressor" "comp" {
  target = "burner"
  map    = "HPCMap"
  pr     = 13.5
  eff    = 0.83
}

element "burner" "burner" {
  target      = "turb"
  p_loss_frac = 0.03
}

element "turbine" "turb" {
  target = "mixer"
  eff    = 0.86
}

element "duct" "byp_duct" {
  target      = "mixer"
  p_loss_frac = 0.01
}

element "mixer" "mixer" {
  source_1 = "turb"
  source_2 = "byp_duct"
  target   = "nozz"
}

element "nozzle" "nozz" {
  type = "CD_CV"
}

element "shaft" "shaft" {
  connections = ["comp", "turb", "fan"]
  rpm_design  = 8070
}
`
