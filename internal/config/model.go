package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the format-agnostic representation of one architecture definition.
type Model struct {
	Points   []*Point
	Elements []*Element
}

// Point is the format-agnostic representation of a `point` block.
type Point struct {
	Name             string
	Design           bool
	Mach             float64
	Altitude         float64
	Thrust           float64
	DeltaTemp        float64
	TurbineInletTemp float64
}

// Element is the format-agnostic representation of an `element` block.
// Attributes are kept raw; their meaning depends on Kind.
type Element struct {
	Kind       string
	Name       string
	Attributes map[string]cty.Value
	Range      hcl.Range
}
