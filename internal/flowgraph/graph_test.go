package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/arch"
)

func names(elements []arch.Element) []string {
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, el.Name())
	}
	return out
}

func turbofan(t *testing.T) *arch.Architecture {
	t.Helper()

	inlet, duct, split := arch.NewInlet("inlet"), arch.NewDuct("duct"), arch.NewSplitter("split")
	comp, burner, turb := arch.NewCompressor("comp"), arch.NewBurner("burner"), arch.NewTurbine("turb")
	coreNoz, bypNoz := arch.NewNozzle("core_noz"), arch.NewNozzle("byp_noz")

	inlet.Target = duct
	duct.Target = split
	split.TargetCore, split.TargetBypass = comp, bypNoz
	comp.Target = burner
	burner.Target = turb
	turb.Target = coreNoz

	shaft, err := arch.NewShaft("shaft", comp, turb)
	require.NoError(t, err)

	return arch.New(inlet, duct, split, comp, burner, turb, coreNoz, bypNoz, shaft)
}

func TestFromArchitecture(t *testing.T) {
	g, err := FromArchitecture(turbofan(t))
	require.NoError(t, err)
	assert.Equal(t, 9, g.Len())

	preds, err := g.Predecessors("burner")
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "comp", preds[0].From.Name())
	assert.Equal(t, "Fl_O", preds[0].FromPort)

	_, err = g.Predecessors("ghost")
	require.Error(t, err)

	require.NoError(t, g.DetectCycles())

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"inlet", "duct", "split", "comp", "burner", "turb", "core_noz", "byp_noz", "shaft"}, names(order))
}

func TestFromArchitecture_DuplicateName(t *testing.T) {
	a := arch.New(arch.NewDuct("duct"), arch.NewNozzle("duct"))
	_, err := FromArchitecture(a)
	require.ErrorIs(t, err, arch.ErrDuplicateElementName)
}

func TestFromArchitecture_ForeignTarget(t *testing.T) {
	inlet := arch.NewInlet("inlet")
	inlet.Target = arch.NewDuct("duct")

	_, err := FromArchitecture(arch.New(inlet))
	require.ErrorIs(t, err, arch.ErrMissingElement)
}

func TestFromArchitecture_IgnoresBleeds(t *testing.T) {
	duct, noz := arch.NewDuct("duct"), arch.NewNozzle("noz")
	bld := arch.NewBleedInter("bld", "cool")
	duct.Target = bld
	bld.Target, bld.BleedTarget = noz, duct

	g, err := FromArchitecture(arch.New(duct, bld, noz))
	require.NoError(t, err)
	require.NoError(t, g.DetectCycles(), "bleed back to an upstream element is not a flow loop")
}

func TestAddNode(t *testing.T) {
	g := New()
	duct := arch.NewDuct("duct")

	require.NoError(t, g.AddNode(duct))
	require.NoError(t, g.AddNode(duct), "re-adding the same element is a no-op")
	require.ErrorIs(t, g.AddNode(arch.NewDuct("duct")), arch.ErrDuplicateElementName)
	assert.Equal(t, 1, g.Len())
}

func TestAddEdge(t *testing.T) {
	g := New()
	a, b := arch.NewDuct("a"), arch.NewDuct("b")
	require.NoError(t, g.AddNode(a))

	err := g.AddEdge(arch.Edge{From: a, To: a, FromPort: "Fl_O", ToPort: "Fl_I"})
	require.ErrorContains(t, err, "self-referential")

	err = g.AddEdge(arch.Edge{From: a, To: b, FromPort: "Fl_O", ToPort: "Fl_I"})
	require.ErrorIs(t, err, arch.ErrMissingElement)

	err = g.AddEdge(arch.Edge{From: a})
	require.ErrorIs(t, err, arch.ErrMissingElement)

	require.NoError(t, g.AddNode(b))
	require.NoError(t, g.AddEdge(arch.Edge{From: a, To: b, FromPort: "Fl_O", ToPort: "Fl_I"}))
}

func TestDetectCycles(t *testing.T) {
	a, b, c := arch.NewDuct("a"), arch.NewDuct("b"), arch.NewDuct("c")
	a.Target, b.Target, c.Target = b, c, a

	g, err := FromArchitecture(arch.New(a, b, c))
	require.NoError(t, err)

	err = g.DetectCycles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow cycle detected")

	_, err = g.Order()
	require.Error(t, err)
}
