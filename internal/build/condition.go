package build

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vk/turbarch/internal/cycle"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DesignPointName is the point name of a design condition created without
// an explicit name.
const DesignPointName = "design"

// Condition is an operating condition: one point of the multi-point problem.
// Altitude is in ft, Thrust in N, temperatures in degC. A zero DeltaTemp
// means a standard day. Conditions compare by identity.
type Condition struct {
	Name             string `validate:"required,excludes=.,excludes=:"`
	Design           bool
	Mach             float64
	Altitude         float64
	Thrust           float64
	DeltaTemp        float64
	TurbineInletTemp float64 `validate:"required_if=Design true"`
}

// NewDesignCondition creates the design condition.
func NewDesignCondition(mach, altitude, thrust, turbineInletTemp float64) *Condition {
	return &Condition{
		Name:             DesignPointName,
		Design:           true,
		Mach:             mach,
		Altitude:         altitude,
		Thrust:           thrust,
		TurbineInletTemp: turbineInletTemp,
	}
}

// NewEvaluateCondition creates a named off-design condition.
func NewEvaluateCondition(name string, mach, altitude, thrust float64) *Condition {
	return &Condition{Name: name, Mach: mach, Altitude: altitude, Thrust: thrust}
}

// Validate checks the condition's own fields.
func (c *Condition) Validate() error {
	if c == nil {
		return fmt.Errorf("nil condition: %w", ErrInvalidCondition)
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.StructField() == "TurbineInletTemp" {
				return fmt.Errorf("condition %q: %w", c.Name, ErrMissingTurbineInletTemp)
			}
		}
		fe := verrs[0]
		return fmt.Errorf("condition %q: field %s failed %q: %w", c.Name, fe.Field(), fe.Tag(), ErrInvalidCondition)
	}
	return fmt.Errorf("condition %q: %v: %w", c.Name, err, ErrInvalidCondition)
}

// Apply pushes the condition's targets into p under the condition's point.
func (c *Condition) Apply(p cycle.Problem) error {
	if err := c.Validate(); err != nil {
		return err
	}

	values := []conditionValue{
		{cycle.FlightConditions, "MN", c.Mach, ""},
		{cycle.FlightConditions, "alt", c.Altitude, cycle.UnitAltitude},
		{cycle.Balance, "Fn_target", c.Thrust, cycle.UnitForce},
	}
	if c.DeltaTemp != 0 {
		values = append(values, conditionValue{cycle.FlightConditions, "dTs", c.DeltaTemp, cycle.UnitTemperature})
	}
	if c.Design {
		values = append(values, conditionValue{cycle.Balance, "T4_target", c.TurbineInletTemp, cycle.UnitTemperature})
	}

	for _, v := range values {
		if err := p.SetValue(cycle.Path(c.Name, v.module, v.field), v.value, v.units); err != nil {
			return fmt.Errorf("condition %q: %w", c.Name, err)
		}
	}
	return nil
}

type conditionValue struct {
	module, field string
	value         float64
	units         string
}

// Problem groups the design condition with the off-design conditions to
// evaluate.
type Problem struct {
	Design   *Condition
	Evaluate []*Condition
}

// Validate checks that the problem has exactly one design condition and that
// every point name is unique.
func (p *Problem) Validate() error {
	if p == nil || p.Design == nil {
		return fmt.Errorf("problem has no design condition: %w", ErrInvalidCondition)
	}
	if !p.Design.Design {
		return fmt.Errorf("condition %q is not a design condition: %w", p.Design.Name, ErrInvalidCondition)
	}
	if err := p.Design.Validate(); err != nil {
		return err
	}

	seen := map[string]bool{p.Design.Name: true}
	for _, c := range p.Evaluate {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Design {
			return fmt.Errorf("condition %q: only one design condition is allowed: %w", c.Name, ErrInvalidCondition)
		}
		if seen[c.Name] {
			return fmt.Errorf("condition %q: duplicate point name: %w", c.Name, ErrInvalidCondition)
		}
		seen[c.Name] = true
	}
	return nil
}

// Conditions returns the design condition followed by the off-design ones.
func (p *Problem) Conditions() []*Condition {
	return append([]*Condition{p.Design}, p.Evaluate...)
}

// EvaluateNames returns the off-design point names in order.
func (p *Problem) EvaluateNames() []string {
	out := make([]string, 0, len(p.Evaluate))
	for _, c := range p.Evaluate {
		out = append(out, c.Name)
	}
	return out
}
