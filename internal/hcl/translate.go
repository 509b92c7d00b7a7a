package hcl

import (
	"context"
	"fmt"

	"github.com/vk/turbarch/internal/config"
	"github.com/vk/turbarch/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translatePoint converts the HCL point schema into the agnostic model.
func (l *Loader) translatePoint(p *PointBlock) *config.Point {
	pt := &config.Point{
		Name:     p.Name,
		Mach:     p.Mach,
		Altitude: p.Altitude,
		Thrust:   p.Thrust,
	}
	if p.Design != nil {
		pt.Design = *p.Design
	}
	if p.DeltaTemp != nil {
		pt.DeltaTemp = *p.DeltaTemp
	}
	if p.TurbineInletTemp != nil {
		pt.TurbineInletTemp = *p.TurbineInletTemp
	}
	return pt
}

// translateElement converts the HCL element schema into the agnostic model,
// evaluating every attribute to a plain value.
func (l *Loader) translateElement(ctx context.Context, e *ElementBlock) (*config.Element, error) {
	logger := ctxlog.FromContext(ctx).With("element_kind", e.Kind, "element_name", e.Name)

	attrs, diags := e.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("element %s %q: %w", e.Kind, e.Name, diags)
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("element %s %q: attribute %q: %w", e.Kind, e.Name, name, diags)
		}
		values[name] = v
	}
	logger.Debug("Translated HCL element to internal config model.", "attributes", len(values))

	return &config.Element{
		Kind:       e.Kind,
		Name:       e.Name,
		Attributes: values,
		Range:      e.Body.MissingItemRange(),
	}, nil
}
