package inmemorycycle

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/turbarch/internal/cycle"
	"gopkg.in/yaml.v3"
)

// Plan is a serializable snapshot of everything recorded during a build.
type Plan struct {
	Points     []PointPlan    `yaml:"points"`
	Parameters []Param        `yaml:"parameters,omitempty"`
	Links      []ResolvedLink `yaml:"links,omitempty"`
	Values     []Value        `yaml:"values,omitempty"`
}

// PointPlan is the recorded content of a single operating point.
type PointPlan struct {
	Name     string       `yaml:"name"`
	Design   bool         `yaml:"design"`
	Modules  []ModulePlan `yaml:"modules"`
	Flows    []Flow       `yaml:"flows,omitempty"`
	Signals  []Signal     `yaml:"signals,omitempty"`
	Defaults []Default    `yaml:"defaults,omitempty"`
}

// ModulePlan is a recorded module.
type ModulePlan struct {
	Name     string           `yaml:"name"`
	Spec     cycle.ModuleSpec `yaml:",inline"`
	Defaults []Default        `yaml:"defaults,omitempty"`
}

// Snapshot captures mp and, when non-nil, the values pushed into p.
func Snapshot(mp *MultiPoint, p *Problem) *Plan {
	plan := &Plan{
		Parameters: mp.Params(),
		Links:      mp.ResolvedLinks(),
	}
	for _, c := range mp.Points() {
		pp := PointPlan{
			Name:     c.Name(),
			Design:   c.Design(),
			Flows:    c.Flows(),
			Signals:  c.Signals(),
			Defaults: c.Defaults(),
		}
		for _, m := range c.Modules() {
			pp.Modules = append(pp.Modules, ModulePlan{Name: m.Name(), Spec: m.Spec(), Defaults: m.Defaults()})
		}
		plan.Points = append(plan.Points, pp)
	}
	if p != nil {
		plan.Values = p.Values()
	}
	return plan
}

// WriteYAML encodes the plan as YAML.
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}

// WriteText writes a compact, human-readable listing of the plan.
func (p *Plan) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, pt := range p.Points {
		mode := "off-design"
		if pt.Design {
			mode = "design"
		}
		fmt.Fprintf(tw, "point %s (%s)\n", pt.Name, mode)
		for _, m := range pt.Modules {
			fmt.Fprintf(tw, "  module\t%s\t%s\n", m.Name, m.Spec.Kind)
		}
		for _, f := range pt.Flows {
			fmt.Fprintf(tw, "  flow\t%s\t-> %s\n", f.From, f.To)
		}
		for _, s := range pt.Signals {
			fmt.Fprintf(tw, "  signal\t%s\t-> %s\n", s.From, s.To)
		}
	}
	for _, prm := range p.Parameters {
		fmt.Fprintf(tw, "param\t%s\t= %g\n", prm.Path, prm.Value)
	}
	for _, l := range p.Links {
		fmt.Fprintf(tw, "link\t%s\t-> %s\n", l.From, l.To)
	}
	for _, v := range p.Values {
		fmt.Fprintf(tw, "value\t%s\t= %g %s\n", v.Path, v.Value, v.Units)
	}
	return tw.Flush()
}
