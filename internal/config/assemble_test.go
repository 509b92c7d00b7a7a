package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/build"
	"github.com/zclconf/go-cty/cty"
)

func element(kind, name string, attrs map[string]cty.Value) *Element {
	return &Element{Kind: kind, Name: name, Attributes: attrs}
}

func turbojetModel() *Model {
	return &Model{
		Points: []*Point{
			{Name: "design", Design: true, Mach: 1e-6, Thrust: 20017, TurbineInletTemp: 1314},
			{Name: "OD0", Mach: 1e-5, Thrust: 10e3},
		},
		Elements: []*Element{
			element("inlet", "inlet", map[string]cty.Value{
				"target": cty.StringVal("comp"),
			}),
			element("compressor", "comp", map[string]cty.Value{
				"target": cty.StringVal("burner"),
				"map":    cty.StringVal("HPCMap"),
				"pr":     cty.NumberFloatVal(13.5),
				"eff":    cty.NumberFloatVal(.83),
			}),
			element("burner", "burner", map[string]cty.Value{
				"target":      cty.StringVal("turb"),
				"fuel":        cty.StringVal("JP-7"),
				"p_loss_frac": cty.NumberFloatVal(.03),
			}),
			element("shaft", "shaft", map[string]cty.Value{
				"connections": cty.ListVal([]cty.Value{cty.StringVal("comp"), cty.StringVal("turb")}),
				"rpm_design":  cty.NumberIntVal(8070),
			}),
			element("turbine", "turb", map[string]cty.Value{
				"target": cty.StringVal("nozz"),
				"eff":    cty.NumberFloatVal(.86),
			}),
			element("nozzle", "nozz", map[string]cty.Value{
				"type":               cty.StringVal("CD"),
				"v_loss_coefficient": cty.NumberFloatVal(.99),
			}),
		},
	}
}

func TestAssemble_Turbojet(t *testing.T) {
	a, p, err := Assemble(context.Background(), turbojetModel())
	require.NoError(t, err)

	var names []string
	for _, el := range a.Elements() {
		names = append(names, el.Name())
	}
	assert.Equal(t, []string{"inlet", "comp", "burner", "shaft", "turb", "nozz"}, names)

	inlet := arch.ElementsOf[*arch.Inlet](a)[0]
	comp := arch.ElementsOf[*arch.Compressor](a)[0]
	burner := arch.ElementsOf[*arch.Burner](a)[0]
	turb := arch.ElementsOf[*arch.Turbine](a)[0]
	nozz := arch.ElementsOf[*arch.Nozzle](a)[0]
	shaft := a.Shafts()[0]

	assert.True(t, arch.Same(inlet.Target, comp))
	assert.True(t, arch.Same(comp.Target, burner))
	assert.True(t, arch.Same(burner.Target, turb))
	assert.True(t, arch.Same(turb.Target, nozz))
	assert.Nil(t, nozz.Target)

	assert.Equal(t, .6, inlet.Mach)
	assert.Equal(t, arch.CompressorMapHPC, comp.Map)
	assert.Equal(t, 13.5, comp.PressureRatio)
	assert.Equal(t, arch.FuelJP7, burner.Fuel)
	assert.Equal(t, arch.TurbineMapLPT2269, turb.Map)
	assert.Equal(t, arch.NozzleCD, nozz.Type)
	assert.Equal(t, .99, nozz.VelocityLossCoef)

	assert.Equal(t, 8070.0, shaft.RPMDesign)
	assert.Same(t, shaft, comp.Shaft())
	assert.Same(t, shaft, turb.Shaft())
	require.Len(t, shaft.Connections(), 2)
	assert.True(t, arch.Same(shaft.Connections()[0], comp))

	assert.Equal(t, "design", p.Design.Name)
	assert.Equal(t, 1314.0, p.Design.TurbineInletTemp)
	assert.Equal(t, []string{"OD0"}, p.EvaluateNames())
}

func TestArchitecture_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		elements []*Element
		wantErr  error
	}{
		{
			name:     "unknown kind",
			elements: []*Element{element("fan", "f", nil)},
		},
		{
			name: "unknown attribute",
			elements: []*Element{element("duct", "d", map[string]cty.Value{
				"mach":  cty.NumberFloatVal(.3),
				"color": cty.StringVal("red"),
			})},
			wantErr: ErrUnknownAttribute,
		},
		{
			name: "wrong attribute type",
			elements: []*Element{element("duct", "d", map[string]cty.Value{
				"mach": cty.StringVal("fast"),
			})},
			wantErr: ErrInvalidAttribute,
		},
		{
			name: "unsupported nozzle type",
			elements: []*Element{element("nozzle", "n", map[string]cty.Value{
				"type": cty.StringVal("plug"),
			})},
			wantErr: ErrInvalidAttribute,
		},
		{
			name: "unknown reference",
			elements: []*Element{element("inlet", "i", map[string]cty.Value{
				"target": cty.StringVal("nowhere"),
			})},
			wantErr: ErrUnknownReference,
		},
		{
			name: "duplicate name",
			elements: []*Element{
				element("duct", "d", nil),
				element("nozzle", "d", nil),
			},
			wantErr: arch.ErrDuplicateElementName,
		},
		{
			name: "shaft connected to a duct",
			elements: []*Element{
				element("duct", "d", nil),
				element("shaft", "s", map[string]cty.Value{
					"connections": cty.ListVal([]cty.Value{cty.StringVal("d")}),
				}),
			},
			wantErr: ErrInvalidAttribute,
		},
		{
			name: "flow into a shaft",
			elements: []*Element{
				element("duct", "d", map[string]cty.Value{"target": cty.StringVal("s")}),
				element("shaft", "s", nil),
			},
			wantErr: ErrInvalidAttribute,
		},
		{
			name: "rotor on two shafts",
			elements: []*Element{
				element("compressor", "c", nil),
				element("turbine", "t", nil),
				element("shaft", "hp", map[string]cty.Value{
					"connections": cty.ListVal([]cty.Value{cty.StringVal("c"), cty.StringVal("t")}),
				}),
				element("shaft", "lp", map[string]cty.Value{
					"connections": cty.ListVal([]cty.Value{cty.StringVal("t")}),
				}),
			},
			wantErr: arch.ErrDuplicateShaftBinding,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := (&Model{Elements: tc.elements}).Architecture(context.Background())
			require.Error(t, err)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestArchitecture_NullAttributeKeepsDefault(t *testing.T) {
	m := &Model{Elements: []*Element{
		element("duct", "d", map[string]cty.Value{"mach": cty.NullVal(cty.Number)}),
	}}
	a, err := m.Architecture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, .3, arch.ElementsOf[*arch.Duct](a)[0].Mach)
}

func TestArchitecture_ShaftValues(t *testing.T) {
	rotors := cty.ListVal([]cty.Value{cty.StringVal("comp"), cty.StringVal("turb")})
	testCases := []struct {
		name     string
		attrs    map[string]cty.Value
		wantRPM  float64
		wantLoss float64
	}{
		{name: "defaults", attrs: map[string]cty.Value{"connections": rotors}, wantRPM: arch.DefaultShaftRPM},
		{
			name: "explicit",
			attrs: map[string]cty.Value{
				"connections": rotors,
				"rpm_design":  cty.NumberIntVal(4666),
				"power_loss":  cty.NumberFloatVal(.01),
			},
			wantRPM:  4666,
			wantLoss: .01,
		},
		{
			name: "null speed",
			attrs: map[string]cty.Value{
				"connections": rotors,
				"rpm_design":  cty.NullVal(cty.Number),
			},
			wantRPM: arch.DefaultShaftRPM,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Model{Elements: []*Element{
				element("compressor", "comp", nil),
				element("turbine", "turb", nil),
				element("shaft", "shaft", tc.attrs),
			}}
			a, err := m.Architecture(context.Background())
			require.NoError(t, err)

			shaft := a.Shafts()[0]
			assert.Equal(t, tc.wantRPM, shaft.RPMDesign)
			assert.Equal(t, tc.wantLoss, shaft.PowerLoss)
			assert.Len(t, shaft.Connections(), 2)
		})
	}
}

func TestArchitecture_BleedsAndMixer(t *testing.T) {
	m := &Model{Elements: []*Element{
		element("bleed_inter", "bld", map[string]cty.Value{
			"target":        cty.StringVal("mix"),
			"bleed_target":  cty.StringVal("turb"),
			"bleed_names":   cty.ListVal([]cty.Value{cty.StringVal("cool1"), cty.StringVal("cool2")}),
			"source_frac_w": cty.NumberFloatVal(.02),
		}),
		element("turbine", "turb", map[string]cty.Value{"target": cty.StringVal("mix")}),
		element("mixer", "mix", map[string]cty.Value{
			"source_1": cty.StringVal("turb"),
			"source_2": cty.StringVal("bld"),
		}),
		element("bleed_intra", "cool", map[string]cty.Value{
			"source":      cty.StringVal("bld"),
			"target":      cty.StringVal("turb"),
			"bleed_names": cty.TupleVal([]cty.Value{cty.StringVal("cool1")}),
		}),
	}}

	a, err := m.Architecture(context.Background())
	require.NoError(t, err)

	bld := arch.ElementsOf[*arch.BleedInter](a)[0]
	mix := arch.ElementsOf[*arch.Mixer](a)[0]
	intra := arch.ElementsOf[*arch.BleedIntra](a)[0]
	turb := arch.ElementsOf[*arch.Turbine](a)[0]

	assert.Equal(t, []string{"cool1", "cool2"}, bld.BleedNames)
	assert.Equal(t, .02, bld.SourceFracW)
	assert.True(t, arch.Same(bld.BleedTarget, turb))
	assert.True(t, arch.Same(mix.Source1, turb))
	assert.True(t, arch.Same(mix.Source2, bld))
	assert.True(t, arch.Same(intra.Source, bld))
	assert.Equal(t, []string{"cool1"}, intra.BleedNames)
}

func TestProblem(t *testing.T) {
	testCases := []struct {
		name    string
		points  []*Point
		wantErr error
	}{
		{
			name:   "design only",
			points: []*Point{{Name: "design", Design: true, TurbineInletTemp: 1314}},
		},
		{
			name:    "no design point",
			points:  []*Point{{Name: "OD0"}},
			wantErr: build.ErrInvalidCondition,
		},
		{
			name: "two design points",
			points: []*Point{
				{Name: "design", Design: true, TurbineInletTemp: 1314},
				{Name: "again", Design: true, TurbineInletTemp: 1314},
			},
			wantErr: build.ErrInvalidCondition,
		},
		{
			name:    "design point without turbine inlet temperature",
			points:  []*Point{{Name: "design", Design: true}},
			wantErr: build.ErrMissingTurbineInletTemp,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := (&Model{Points: tc.points}).Problem()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Design.Design)
		})
	}
}
