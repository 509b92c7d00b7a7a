package inmemorycycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiPoint_AddPoint(t *testing.T) {
	mp := New()

	des, err := mp.AddPoint("design", true)
	require.NoError(t, err)
	assert.True(t, des.Design())

	_, err = mp.AddPoint("OD0", false)
	require.NoError(t, err)

	_, err = mp.AddPoint("OD0", false)
	require.ErrorIs(t, err, ErrDuplicatePoint)

	_, err = mp.AddPoint("design2", true)
	require.ErrorIs(t, err, ErrDuplicateDesignPoint)

	_, err = mp.AddPoint("a.b", false)
	require.Error(t, err)

	assert.Equal(t, "design", mp.DesignPoint().Name())
	require.Len(t, mp.OffDesignPoints(), 1)
	assert.Equal(t, "OD0", mp.OffDesignPoints()[0].Name())
}

func TestMultiPoint_Params(t *testing.T) {
	mp := New()

	require.NoError(t, mp.AddCycleParam("inlet.ram_recovery", 1))
	require.NoError(t, mp.AddCycleParam("bld.cool:frac_W", .05))
	require.ErrorIs(t, mp.AddCycleParam("inlet.ram_recovery", .99), ErrDuplicateParam)
	require.Error(t, mp.AddCycleParam("ram_recovery", 1))

	assert.Equal(t, []Param{
		{Path: "inlet.ram_recovery", Value: 1},
		{Path: "bld.cool:frac_W", Value: .05},
	}, mp.Params())
}

func TestMultiPoint_ResolvedLinks(t *testing.T) {
	mp := New()
	require.NoError(t, mp.ConnectDesignOffDesign("comp.s_PR", "comp.s_PR"))
	require.NoError(t, mp.ConnectDesignOffDesign("comp.Fl_O:stat:area", "comp.area"))
	require.ErrorIs(t, mp.ConnectDesignOffDesign("comp.s_PR", "comp.s_PR"), ErrDuplicateLink)

	assert.Empty(t, mp.ResolvedLinks(), "no points yet")

	_, _ = mp.AddPoint("design", true)
	_, _ = mp.AddPoint("OD0", false)
	_, _ = mp.AddPoint("OD1", false)

	assert.Equal(t, []ResolvedLink{
		{Point: "OD0", From: "design.comp.s_PR", To: "OD0.comp.s_PR"},
		{Point: "OD0", From: "design.comp.Fl_O:stat:area", To: "OD0.comp.area"},
		{Point: "OD1", From: "design.comp.s_PR", To: "OD1.comp.s_PR"},
		{Point: "OD1", From: "design.comp.Fl_O:stat:area", To: "OD1.comp.area"},
	}, mp.ResolvedLinks())
}

func TestProblem_SetValue(t *testing.T) {
	mp := New()
	_, _ = mp.AddPoint("design", true)
	p := mp.Problem()

	require.NoError(t, p.SetValue("design.comp.PR", 5, ""))
	require.NoError(t, p.SetValue("design.comp.PR", 13.5, ""))
	require.NoError(t, p.SetValue("design.fc.alt", 0, "ft"))
	require.ErrorIs(t, p.SetValue("OD9.comp.PR", 5, ""), ErrUnknownPoint)
	require.Error(t, p.SetValue("design.PR", 5, ""))

	v, ok := p.Value("design.comp.PR")
	require.True(t, ok)
	assert.Equal(t, 13.5, v.Value)
	assert.Len(t, p.Values(), 2)

	_, ok = p.Value("design.comp.eff")
	assert.False(t, ok)
}
