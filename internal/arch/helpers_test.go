package arch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/inmemorycycle"
)

type thermoToken struct{ name string }

var testThermo = &thermoToken{name: "janaf"}

// newPoint returns a recorder with one point holding the free-stream module.
func newPoint(t *testing.T, design bool) (*inmemorycycle.MultiPoint, *inmemorycycle.Cycle) {
	t.Helper()

	mp := inmemorycycle.New()
	name := "design"
	if !design {
		name = "OD0"
	}
	c, err := mp.AddPoint(name, design)
	require.NoError(t, err)
	_, err = c.AddModule(cycle.FlightConditions, cycle.ModuleSpec{Kind: cycle.KindFlightConditions})
	require.NoError(t, err)

	rec, ok := mp.Point(name)
	require.True(t, ok)
	return mp, rec
}

// realizeAll realizes every element into c, failing the test on error.
func realizeAll(t *testing.T, c cycle.Cycle, design bool, elements ...Element) {
	t.Helper()
	for _, el := range elements {
		_, err := el.Realize(context.Background(), c, testThermo, design)
		require.NoError(t, err, el.Name())
	}
}

func defaultsOf(t *testing.T, c *inmemorycycle.Cycle, module string) map[string]float64 {
	t.Helper()
	m, ok := c.Module(module)
	require.True(t, ok, module)
	out := make(map[string]float64)
	for _, d := range m.Defaults() {
		out[d.Name] = d.Value
	}
	return out
}

var specFlightConditions = cycle.ModuleSpec{Kind: cycle.KindFlightConditions}
