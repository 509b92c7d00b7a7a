package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "comp.Fl_O", Port("comp", PortFlowOut))
	assert.Equal(t, "trq_0", TorquePort(0))
	assert.Equal(t, "trq_12", TorquePort(12))
	assert.Equal(t, "hp_shaft_Nmech", ShaftSpeed("hp_shaft"))
	assert.Equal(t, "design.comp.PR", Path("design", "comp", "PR"))
	assert.Equal(t, "comp.PR", Path("", "comp", "PR"))
}

func TestApplyFlowOptions(t *testing.T) {
	assert.Equal(t, FlowOptions{}, ApplyFlowOptions())
	assert.Equal(t, FlowOptions{SkipMassFlow: true}, ApplyFlowOptions(WithoutMassFlow()))
	assert.Equal(t, FlowOptions{SkipMassFlow: true, SkipStatics: true}, ApplyFlowOptions(WithoutStatics(), WithoutMassFlow()))
}

func TestModuleKindBoundary(t *testing.T) {
	assert.True(t, KindFlightConditions.Boundary())
	assert.True(t, KindPerformance.Boundary())
	assert.False(t, KindShaft.Boundary())
	assert.False(t, KindInlet.Boundary())
}
