package flowgraph

import (
	"fmt"

	"github.com/vk/turbarch/internal/arch"
)

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// FromArchitecture indexes every element of a and its main flow edges. It
// fails when two elements share a name or an edge points at an element that
// is not part of a.
func FromArchitecture(a *arch.Architecture) (*Graph, error) {
	g := New()
	for _, el := range a.Elements() {
		if err := g.AddNode(el); err != nil {
			return nil, err
		}
	}
	for _, e := range a.Edges() {
		if e.Bleed {
			continue
		}
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode adds el to the graph. Adding the same element twice does nothing;
// adding a different element under a taken name is an error.
func (g *Graph) AddNode(el arch.Element) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if existing, ok := g.nodes[el.Name()]; ok {
		if arch.Same(existing.element, el) {
			return nil
		}
		return fmt.Errorf("%s %q: %w", el.Kind(), el.Name(), arch.ErrDuplicateElementName)
	}
	g.nodes[el.Name()] = &node{element: el}
	g.order = append(g.order, el.Name())
	return nil
}

// AddEdge adds a directed flow edge. Both ends must already be nodes.
func (g *Graph) AddEdge(e arch.Edge) error {
	if e.From == nil || e.To == nil {
		return fmt.Errorf("edge has no endpoint: %w", arch.ErrMissingElement)
	}
	if arch.Same(e.From, e.To) {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", e.From.Name(), e.To.Name())
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, err := g.lookup(e.From)
	if err != nil {
		return err
	}
	to, err := g.lookup(e.To)
	if err != nil {
		return err
	}

	from.out = append(from.out, e)
	to.in = append(to.in, e)
	return nil
}

func (g *Graph) lookup(el arch.Element) (*node, error) {
	n, ok := g.nodes[el.Name()]
	if !ok || !arch.Same(n.element, el) {
		return nil, fmt.Errorf("%s %q is not part of the architecture: %w", el.Kind(), el.Name(), arch.ErrMissingElement)
	}
	return n, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Predecessors returns the edges feeding the named element.
func (g *Graph) Predecessors(name string) ([]arch.Edge, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", name)
	}
	return append([]arch.Edge(nil), n.in...), nil
}

// DetectCycles returns an error naming the first element found on a closed
// flow loop.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited, not on a cycle. temporary: on the current path.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if permanent[name] {
			return nil
		}
		if temporary[name] {
			return fmt.Errorf("flow cycle detected involving element '%s'", name)
		}

		temporary[name] = true
		for _, e := range g.nodes[name].out {
			if err := visit(e.To.Name()); err != nil {
				return err
			}
		}
		delete(temporary, name)
		permanent[name] = true
		return nil
	}

	for _, name := range g.order {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Order returns the elements in flow order: every element comes after all of
// its upstream elements. Ties keep insertion order.
func (g *Graph) Order() ([]arch.Element, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indegree := make(map[string]int, len(g.nodes))
	for name, n := range g.nodes {
		indegree[name] = len(n.in)
	}

	out := make([]arch.Element, 0, len(g.nodes))
	done := make(map[string]bool, len(g.nodes))
	for len(out) < len(g.order) {
		for _, name := range g.order {
			if done[name] || indegree[name] > 0 {
				continue
			}
			done[name] = true
			out = append(out, g.nodes[name].element)
			for _, e := range g.nodes[name].out {
				indegree[e.To.Name()]--
			}
		}
	}
	return out, nil
}
