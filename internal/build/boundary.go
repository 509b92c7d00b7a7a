package build

import (
	"fmt"

	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/flowgraph"
)

// addFlightConditions registers the free-stream module every inlet draws from
// and every untargeted outflow returns to.
func addFlightConditions(c cycle.Cycle, thermo cycle.ThermoData, design bool) error {
	_, err := c.AddModule(cycle.FlightConditions, cycle.ModuleSpec{
		Kind:        cycle.KindFlightConditions,
		Design:      design,
		Thermo:      thermo,
		Composition: cycle.CompositionAir,
	})
	return err
}

// addPerformance registers the performance summary sized for the
// architecture's nozzles and burners.
func addPerformance(c cycle.Cycle, a *arch.Architecture, thermo cycle.ThermoData, design bool) error {
	_, err := c.AddModule(cycle.Performance, cycle.ModuleSpec{
		Kind:       cycle.KindPerformance,
		Design:     design,
		Thermo:     thermo,
		NumNozzles: len(arch.ElementsOf[*arch.Nozzle](a)),
		NumBurners: len(arch.ElementsOf[*arch.Burner](a)),
	})
	return err
}

// connectPerformance feeds the performance summary: gross thrust of every
// nozzle, fuel flow of every burner, the first burner's inlet pressure and the
// first inlet's ram drag and exit pressure.
func connectPerformance(c cycle.Cycle, a *arch.Architecture, graph *flowgraph.Graph) error {
	perf := func(field string) string { return cycle.Port(cycle.Performance, field) }

	for i, noz := range arch.ElementsOf[*arch.Nozzle](a) {
		if err := c.Connect(cycle.Port(noz.Name(), "Fg"), perf(fmt.Sprintf("Fg_%d", i))); err != nil {
			return err
		}
	}

	burners := arch.ElementsOf[*arch.Burner](a)
	for i, burner := range burners {
		if err := c.Connect(cycle.Port(burner.Name(), "Wfuel"), perf(fmt.Sprintf("Wfuel_%d", i))); err != nil {
			return err
		}
	}
	if len(burners) > 0 {
		preds, err := graph.Predecessors(burners[0].Name())
		if err != nil {
			return err
		}
		if len(preds) == 0 {
			return fmt.Errorf("burner %q: %w", burners[0].Name(), ErrNoBurnerInflow)
		}
		src := preds[0]
		if err := c.Connect(cycle.Port(src.From.Name(), src.FromPort+cycle.TotPressure), perf("Pt3")); err != nil {
			return err
		}
	}

	if inlets := arch.ElementsOf[*arch.Inlet](a); len(inlets) > 0 {
		inlet := inlets[0].Name()
		if err := c.Connect(cycle.Port(inlet, "F_ram"), perf("ram_drag")); err != nil {
			return err
		}
		if err := c.Connect(cycle.Port(inlet, cycle.PortFlowOut+cycle.TotPressure), perf("Pt2")); err != nil {
			return err
		}
	}
	return nil
}
