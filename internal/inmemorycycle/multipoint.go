package inmemorycycle

import (
	"fmt"
	"sync"

	"github.com/vk/turbarch/internal/cycle"
	"github.com/vk/turbarch/internal/signalpath"
)

// Param is a declared cycle parameter.
type Param struct {
	Path  string  `yaml:"path"`
	Value float64 `yaml:"value"`
}

// Link is a declared design/off-design equality, with point-relative paths.
type Link struct {
	Design    string `yaml:"design"`
	OffDesign string `yaml:"off_design"`
}

// ResolvedLink is a Link expanded for one off-design point.
type ResolvedLink struct {
	Point string `yaml:"point"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
}

// MultiPoint implements cycle.MultiPoint.
type MultiPoint struct {
	mu         sync.RWMutex
	points     []*Cycle
	byName     map[string]*Cycle
	params     []Param
	paramIndex map[string]struct{}
	links      []Link
	linkIndex  map[Link]struct{}
}

// New creates an empty multi-point container.
func New() *MultiPoint {
	return &MultiPoint{
		byName:     make(map[string]*Cycle),
		paramIndex: make(map[string]struct{}),
		linkIndex:  make(map[Link]struct{}),
	}
}

// AddPoint adds an operating point. At most one point may be the design point.
func (mp *MultiPoint) AddPoint(name string, design bool) (cycle.Cycle, error) {
	addr, err := signalpath.Parse(name)
	if err != nil {
		return nil, err
	}
	if addr.Len() != 1 {
		return nil, fmt.Errorf("point name %q must be a single segment", name)
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.byName[name]; exists {
		return nil, fmt.Errorf("point %q: %w", name, ErrDuplicatePoint)
	}
	if design {
		for _, p := range mp.points {
			if p.design {
				return nil, fmt.Errorf("point %q: %q is already the design point: %w", name, p.name, ErrDuplicateDesignPoint)
			}
		}
	}

	c := newCycle(name, design)
	mp.points = append(mp.points, c)
	mp.byName[name] = c
	return c, nil
}

// AddCycleParam declares a parameter shared by every point.
func (mp *MultiPoint) AddCycleParam(path string, value float64) error {
	addr, err := signalpath.Parse(path)
	if err != nil {
		return err
	}
	if addr.Len() < 2 {
		return fmt.Errorf("cycle parameter %q must address a module input", path)
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.paramIndex[path]; exists {
		return fmt.Errorf("%q: %w", path, ErrDuplicateParam)
	}
	mp.paramIndex[path] = struct{}{}
	mp.params = append(mp.params, Param{Path: path, Value: value})
	return nil
}

// ConnectDesignOffDesign declares a design/off-design equality.
func (mp *MultiPoint) ConnectDesignOffDesign(designPath, offDesignPath string) error {
	for _, p := range []string{designPath, offDesignPath} {
		if _, err := signalpath.Parse(p); err != nil {
			return err
		}
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	l := Link{Design: designPath, OffDesign: offDesignPath}
	if _, exists := mp.linkIndex[l]; exists {
		return fmt.Errorf("%q -> %q: %w", designPath, offDesignPath, ErrDuplicateLink)
	}
	mp.linkIndex[l] = struct{}{}
	mp.links = append(mp.links, l)
	return nil
}

// Points returns every point in the order it was added.
func (mp *MultiPoint) Points() []*Cycle {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return append([]*Cycle(nil), mp.points...)
}

// Point looks up a point by name.
func (mp *MultiPoint) Point(name string) (*Cycle, bool) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	c, ok := mp.byName[name]
	return c, ok
}

// DesignPoint returns the design point, or nil when none was added.
func (mp *MultiPoint) DesignPoint() *Cycle {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	for _, p := range mp.points {
		if p.design {
			return p
		}
	}
	return nil
}

// OffDesignPoints returns every point but the design point.
func (mp *MultiPoint) OffDesignPoints() []*Cycle {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	var out []*Cycle
	for _, p := range mp.points {
		if !p.design {
			out = append(out, p)
		}
	}
	return out
}

// Params returns the declared parameters in declaration order.
func (mp *MultiPoint) Params() []Param {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return append([]Param(nil), mp.params...)
}

// Links returns the declared links in declaration order.
func (mp *MultiPoint) Links() []Link {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return append([]Link(nil), mp.links...)
}

// ResolvedLinks expands every link for every off-design point. It is empty
// without a design point.
func (mp *MultiPoint) ResolvedLinks() []ResolvedLink {
	des := mp.DesignPoint()
	if des == nil {
		return nil
	}
	var out []ResolvedLink
	for _, od := range mp.OffDesignPoints() {
		for _, l := range mp.Links() {
			out = append(out, ResolvedLink{
				Point: od.name,
				From:  cycle.Path(des.name, l.Design),
				To:    cycle.Path(od.name, l.OffDesign),
			})
		}
	}
	return out
}

// Problem returns a solved-problem handle addressing this container's points.
func (mp *MultiPoint) Problem() *Problem {
	return &Problem{mp: mp, index: make(map[string]int)}
}
