package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of an architecture file. Any other
// top-level block or attribute is a decode error.
type fileRoot struct {
	Points   []*PointBlock   `hcl:"point,block"`
	Elements []*ElementBlock `hcl:"element,block"`
}

// PointBlock represents a `point` block: one operating condition.
type PointBlock struct {
	Name             string   `hcl:"name,label"`
	Design           *bool    `hcl:"design,optional"`
	Mach             float64  `hcl:"mach"`
	Altitude         float64  `hcl:"alt"`
	Thrust           float64  `hcl:"thrust"`
	DeltaTemp        *float64 `hcl:"d_ts,optional"`
	TurbineInletTemp *float64 `hcl:"turbine_in_temp,optional"`
}

// ElementBlock represents an `element` block. Its attributes depend on the
// kind label and are decoded later, so the body is kept whole.
type ElementBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
