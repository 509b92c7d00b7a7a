package arch

import (
	"github.com/google/uuid"
	"github.com/vk/turbarch/internal/cycle"
)

// Architecture is an ordered collection of elements. It is built once and
// never mutated afterwards.
type Architecture struct {
	id       uuid.UUID
	elements []Element
}

// New creates an Architecture holding elements in the given order.
func New(elements ...Element) *Architecture {
	return &Architecture{
		id:       uuid.New(),
		elements: append([]Element(nil), elements...),
	}
}

// ID returns the architecture's identity handle.
func (a *Architecture) ID() uuid.UUID { return a.id }

// Equal reports whether a and other are the same instance. Two architectures
// holding the same elements are still different architectures.
func (a *Architecture) Equal(other *Architecture) bool {
	return a == other
}

// Elements returns the elements in declaration order.
func (a *Architecture) Elements() []Element {
	return append([]Element(nil), a.elements...)
}

// Len returns the number of elements.
func (a *Architecture) Len() int { return len(a.elements) }

// Element looks up an element by name.
func (a *Architecture) Element(name string) (Element, bool) {
	for _, el := range a.elements {
		if el.Name() == name {
			return el, true
		}
	}
	return nil, false
}

// ElementsOfKind returns the elements of kind k in declaration order.
func (a *Architecture) ElementsOfKind(k Kind) []Element {
	var out []Element
	for _, el := range a.elements {
		if el.Kind() == k {
			out = append(out, el)
		}
	}
	return out
}

// ElementsOf returns the elements of concrete type T in declaration order.
func ElementsOf[T Element](a *Architecture) []T {
	var out []T
	for _, el := range a.elements {
		if t, ok := el.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Edge is a directed relation from one element's outflow port to another
// element's inflow port. Bleed edges carry secondary flow only.
type Edge struct {
	From     Element
	To       Element
	FromPort string
	ToPort   string
	Bleed    bool
}

// Edges returns every element-to-element flow relation, in declaration order
// of the source element. Free-stream and ambient boundaries are not edges.
func (a *Architecture) Edges() []Edge {
	var out []Edge
	for _, el := range a.elements {
		out = append(out, edgesFrom(el)...)
	}
	return out
}

func edgesFrom(el Element) []Edge {
	main := func(target Element, outPort, inPort string) []Edge {
		if target == nil {
			return nil
		}
		if inPort == "" {
			inPort = inboundPort(el, target)
		}
		return []Edge{{From: el, To: target, FromPort: outPort, ToPort: inPort}}
	}

	switch e := el.(type) {
	case *Inlet:
		return main(e.Target, cycle.PortFlowOut, "")
	case *Duct:
		return main(e.Target, cycle.PortFlowOut, "")
	case *Splitter:
		return append(main(e.TargetCore, cycle.PortFlowOut1, ""), main(e.TargetBypass, cycle.PortFlowOut2, "")...)
	case *Mixer:
		return main(e.Target, cycle.PortFlowOut, "")
	case *Nozzle:
		return main(e.Target, cycle.PortFlowOut, e.FlowOut)
	case *Compressor:
		return main(e.Target, cycle.PortFlowOut, "")
	case *Burner:
		return main(e.Target, cycle.PortFlowOut, "")
	case *Turbine:
		return main(e.Target, cycle.PortFlowOut, "")
	case *BleedInter:
		out := main(e.Target, cycle.PortFlowOut, "")
		if e.Target != nil && e.BleedTarget != nil {
			for _, b := range e.BleedNames {
				out = append(out, Edge{From: el, To: e.BleedTarget, FromPort: b, ToPort: b, Bleed: true})
			}
		}
		return out
	case *BleedIntra:
		var out []Edge
		if e.Source != nil && e.Target != nil {
			for _, b := range e.BleedNames {
				out = append(out, Edge{From: e.Source, To: e.Target, FromPort: b, ToPort: b, Bleed: true})
			}
		}
		return out
	}
	return nil
}

// Shafts returns every shaft in declaration order.
func (a *Architecture) Shafts() []*Shaft {
	return ElementsOf[*Shaft](a)
}
