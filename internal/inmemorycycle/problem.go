package inmemorycycle

import (
	"fmt"
	"sync"

	"github.com/vk/turbarch/internal/signalpath"
)

// Value is a literal value pushed into the solved problem.
type Value struct {
	Path  string  `yaml:"path"`
	Value float64 `yaml:"value"`
	Units string  `yaml:"units,omitempty"`
}

// Problem implements cycle.Problem.
type Problem struct {
	mu     sync.RWMutex
	mp     *MultiPoint
	values []Value
	index  map[string]int
}

// SetValue records a value addressed "<point>.<module>.<field>". Setting a
// path again replaces the earlier value.
func (p *Problem) SetValue(path string, value float64, units string) error {
	addr, err := signalpath.Parse(path)
	if err != nil {
		return err
	}
	if addr.Len() < 3 {
		return fmt.Errorf("problem path %q must be <point>.<module>.<field>", path)
	}
	if _, ok := p.mp.Point(addr.Head()); !ok {
		return fmt.Errorf("problem path %q: %q: %w", path, addr.Head(), ErrUnknownPoint)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	v := Value{Path: path, Value: value, Units: units}
	if i, ok := p.index[path]; ok {
		p.values[i] = v
		return nil
	}
	p.index[path] = len(p.values)
	p.values = append(p.values, v)
	return nil
}

// Values returns the recorded values in the order they were first set.
func (p *Problem) Values() []Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Value(nil), p.values...)
}

// Value looks up a recorded value by path.
func (p *Problem) Value(path string) (Value, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[path]
	if !ok {
		return Value{}, false
	}
	return p.values[i], true
}
