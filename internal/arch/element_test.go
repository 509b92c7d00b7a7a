package arch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/inmemorycycle"
)

func TestBase_AbstractPhases(t *testing.T) {
	ctx := context.Background()
	mp, c := newPoint(t, true)
	b := newBase("raw", KindDuct)

	_, err := b.Realize(ctx, c, testThermo, true)
	require.ErrorIs(t, err, ErrAbstractMethodInvoked)

	err = b.Wire(ctx, c)
	require.ErrorIs(t, err, ErrAbstractMethodInvoked)

	err = b.LinkDesignOffDesign(ctx, mp)
	require.ErrorIs(t, err, ErrAbstractMethodInvoked)

	var elErr *ElementError
	require.True(t, errors.As(err, &elErr))
	assert.Equal(t, "raw", elErr.Element)
	assert.Equal(t, PhaseLinkDesignOffDesign, elErr.Phase)

	assert.NoError(t, b.DeclareParameters(ctx, mp))
	assert.NoError(t, b.ExportSolvedValues(ctx, mp.Problem(), "design", nil))
}

func TestElementError(t *testing.T) {
	err := &ElementError{Element: "comp", Kind: KindCompressor, Phase: PhaseRealize, Err: ErrUnboundTurbomachinery}
	assert.Equal(t, `compressor "comp": realize: turbomachinery element is not bound to a shaft`, err.Error())
	assert.ErrorIs(t, err, ErrUnboundTurbomachinery)

	construct := &ElementError{Element: "hp", Kind: KindShaft, Err: ErrDuplicateShaftBinding}
	assert.Equal(t, `shaft "hp": turbomachinery element is already bound to a shaft`, construct.Error())
}

func TestSame(t *testing.T) {
	a := NewDuct("duct")
	b := NewDuct("duct")

	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b), "equal names and values are still different elements")
	assert.False(t, Same(a, nil))
	assert.True(t, Same(nil, nil))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestKind(t *testing.T) {
	testCases := []struct {
		name string
		kind Kind
	}{
		{name: "inlet", kind: KindInlet},
		{name: "duct", kind: KindDuct},
		{name: "splitter", kind: KindSplitter},
		{name: "mixer", kind: KindMixer},
		{name: "bleed_inter", kind: KindBleedInter},
		{name: "bleed_intra", kind: KindBleedIntra},
		{name: "nozzle", kind: KindNozzle},
		{name: "compressor", kind: KindCompressor},
		{name: "burner", kind: KindBurner},
		{name: "turbine", kind: KindTurbine},
		{name: "shaft", kind: KindShaft},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.kind.String())

			parsed, err := ParseKind(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, parsed)
		})
	}

	_, err := ParseKind("propeller")
	require.Error(t, err)
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestPhases(t *testing.T) {
	phases := []Phase{PhaseRealize, PhaseWire, PhaseDeclareParameters, PhaseLinkDesignOffDesign, PhaseExportSolvedValues}
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.String())
	}
	assert.Equal(t, []string{
		"realize",
		"wire",
		"declare_parameters",
		"link_design_off_design",
		"export_solved_values",
	}, names)
}

func TestConstructorKinds(t *testing.T) {
	comp, turb := NewCompressor("comp"), NewTurbine("turb")
	shaft, err := NewShaft("shaft", comp, turb)
	require.NoError(t, err)

	elements := []Element{
		NewInlet("inlet"), NewDuct("duct"), NewSplitter("split"), NewMixer("mix"),
		NewBleedInter("bi"), NewBleedIntra("bx"), NewNozzle("noz"),
		comp, NewBurner("burner"), turb, shaft,
	}
	want := []Kind{
		KindInlet, KindDuct, KindSplitter, KindMixer,
		KindBleedInter, KindBleedIntra, KindNozzle,
		KindCompressor, KindBurner, KindTurbine, KindShaft,
	}
	for i, el := range elements {
		assert.Equal(t, want[i], el.Kind(), el.Name())
	}
}

// Every concrete element must not accidentally fall back to the abstract
// defaults for the phases it is expected to implement.
func TestNoAbstractFallbacks(t *testing.T) {
	ctx := context.Background()
	comp, turb := NewCompressor("comp"), NewTurbine("turb")
	shaft, err := NewShaft("shaft", comp, turb)
	require.NoError(t, err)

	elements := []Element{
		NewInlet("inlet"), NewDuct("duct"), NewSplitter("split"), NewMixer("mix"),
		NewBleedInter("bi"), NewBleedIntra("bx"), NewNozzle("noz"),
		comp, NewBurner("burner"), turb, shaft,
	}

	mp := inmemorycycle.New()
	c, err := mp.AddPoint("design", true)
	require.NoError(t, err)
	_, err = mp.AddPoint("OD0", false)
	require.NoError(t, err)
	_, err = c.AddModule("fc", specFlightConditions)
	require.NoError(t, err)

	for _, el := range elements {
		_, err := el.Realize(ctx, c, testThermo, true)
		assert.NotErrorIs(t, err, ErrAbstractMethodInvoked, el.Name())
		assert.NotErrorIs(t, el.Wire(ctx, c), ErrAbstractMethodInvoked, el.Name())
		assert.NotErrorIs(t, el.LinkDesignOffDesign(ctx, mp), ErrAbstractMethodInvoked, el.Name())
	}
}
