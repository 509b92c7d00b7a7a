package cycle

import (
	"fmt"
	"strings"
)

// Port names.
const (
	PortFlowIn   = "Fl_I"
	PortFlowIn1  = "Fl_I1"
	PortFlowIn2  = "Fl_I2"
	PortFlowOut  = "Fl_O"
	PortFlowOut1 = "Fl_O1"
	PortFlowOut2 = "Fl_O2"
	PortTorque   = "trq"
)

// Boundary module names shared by every point.
const (
	FlightConditions = "fc"
	Performance      = "perf"
	Balance          = "balance"
)

// Unit tags.
const (
	UnitRPM         = "RPM"
	UnitAltitude    = "ft"
	UnitForce       = "N"
	UnitTemperature = "degC"
)

// Static and total property qualifiers appended to a flow port.
const (
	StatArea     = ":stat:area"
	StatPressure = ":stat:P"
	TotPressure  = ":tot:P"
)

// Path joins non-empty parts with dots.
func Path(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}

// Port addresses a port of a named module.
func Port(module, port string) string {
	return module + "." + port
}

// TorquePort is the i-th torque input of a shaft.
func TorquePort(i int) string {
	return fmt.Sprintf("%s_%d", PortTorque, i)
}

// ShaftSpeed is the promoted mechanical speed signal of a shaft.
func ShaftSpeed(shaft string) string {
	return shaft + "_Nmech"
}
