package config

import (
	"context"
	"fmt"

	"github.com/vk/turbarch/internal/arch"
	"github.com/vk/turbarch/internal/build"
	"github.com/vk/turbarch/internal/ctxlog"
)

const (
	compressorMaps = "AXI5 LPCMap HPCMap"
	turbineMaps    = "LPT2269 LPTMap HPTMap"
	fuelTypes      = "Jet-A(g) JP-7"
	nozzleTypes    = "CV CD CD_CV"
)

// Assemble turns the model into the architecture and the operating problem the
// build orchestrator consumes.
func Assemble(ctx context.Context, m *Model) (*arch.Architecture, *build.Problem, error) {
	a, err := m.Architecture(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := m.Problem()
	if err != nil {
		return nil, nil, err
	}
	return a, p, nil
}

// Architecture creates every element in declaration order and resolves the
// references between them. Shafts are created last since creating one binds
// its connections.
func (m *Model) Architecture(ctx context.Context) (*arch.Architecture, error) {
	logger := ctxlog.FromContext(ctx)

	elements := make([]arch.Element, len(m.Elements))
	byName := make(map[string]arch.Element, len(m.Elements))
	declared := make(map[string]*Element, len(m.Elements))
	shafts := make(map[int]*shaftDef)

	type pending struct {
		def *Element
		ref reference
	}
	var refs []pending

	for i, def := range m.Elements {
		if prev, dup := declared[def.Name]; dup {
			return nil, fmt.Errorf("%s: already declared as %s: %w", def.where(), prev.Kind, arch.ErrDuplicateElementName)
		}
		declared[def.Name] = def

		kind, err := arch.ParseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.where(), err)
		}

		r := newAttrReader(def)
		if kind == arch.KindShaft {
			sd := decodeShaft(def, r)
			if err := r.Done(); err != nil {
				return nil, err
			}
			shafts[i] = sd
			continue
		}

		el, err := decodeElement(kind, def.Name, r)
		if err != nil {
			return nil, err
		}
		if err := r.Done(); err != nil {
			return nil, err
		}
		elements[i] = el
		byName[def.Name] = el
		for _, ref := range r.refs {
			refs = append(refs, pending{def: def, ref: ref})
		}
	}

	for _, p := range refs {
		target, err := resolve(byName, declared, p.def, p.ref.attr, p.ref.target)
		if err != nil {
			return nil, err
		}
		if err := p.ref.set(target); err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", p.def.where(), p.ref.attr, err)
		}
	}

	for i, def := range m.Elements {
		sd, ok := shafts[i]
		if !ok {
			continue
		}
		shaft, err := sd.build(byName, declared)
		if err != nil {
			return nil, err
		}
		elements[i] = shaft
		logger.Debug("Bound shaft.", "shaft", def.Name, "connections", sd.connections)
	}

	logger.Debug("Assembled architecture.", "elements", len(elements), "references", len(refs), "shafts", len(shafts))
	return arch.New(elements...), nil
}

func resolve(byName map[string]arch.Element, declared map[string]*Element, def *Element, attr, target string) (arch.Element, error) {
	if el, ok := byName[target]; ok {
		return el, nil
	}
	if other, ok := declared[target]; ok {
		return nil, fmt.Errorf("%s: attribute %q: cannot reference %s %q: %w", def.where(), attr, other.Kind, target, ErrInvalidAttribute)
	}
	return nil, fmt.Errorf("%s: attribute %q: %q: %w", def.where(), attr, target, ErrUnknownReference)
}

func decodeElement(kind arch.Kind, name string, r *attrReader) (arch.Element, error) {
	switch kind {
	case arch.KindInlet:
		e := arch.NewInlet(name)
		r.Ref("target", assign(&e.Target))
		r.Float("mach", &e.Mach)
		r.Float("p_recovery", &e.PressureRecovery)
		return e, nil
	case arch.KindDuct:
		e := arch.NewDuct(name)
		r.Ref("target", assign(&e.Target))
		r.Float("mach", &e.Mach)
		r.Float("p_loss_frac", &e.PressureLossFrac)
		r.Bool("fuel_in_air", &e.FuelInAir)
		r.Bool("statics", &e.Statics)
		return e, nil
	case arch.KindSplitter:
		e := arch.NewSplitter(name)
		r.Ref("target_core", assign(&e.TargetCore))
		r.Ref("target_bypass", assign(&e.TargetBypass))
		r.Float("bpr", &e.BPR)
		r.Float("core_mach", &e.CoreMach)
		r.Float("bypass_mach", &e.BypassMach)
		return e, nil
	case arch.KindMixer:
		e := arch.NewMixer(name)
		r.Ref("source_1", assign(&e.Source1))
		r.Ref("source_2", assign(&e.Source2))
		r.Ref("target", assign(&e.Target))
		return e, nil
	case arch.KindBleedInter:
		e := arch.NewBleedInter(name)
		r.Ref("target", assign(&e.Target))
		r.Ref("bleed_target", assign(&e.BleedTarget))
		r.Strings("bleed_names", &e.BleedNames)
		r.Float("source_frac_w", &e.SourceFracW)
		r.Float("target_frac_p", &e.TargetFracP)
		r.Bool("fuel_in_air", &e.FuelInAir)
		return e, nil
	case arch.KindBleedIntra:
		e := arch.NewBleedIntra(name)
		r.Ref("source", assign(&e.Source))
		r.Ref("target", assign(&e.Target))
		r.Strings("bleed_names", &e.BleedNames)
		r.Float("source_frac_w", &e.SourceFracW)
		r.Float("source_frac_p", &e.SourceFracP)
		r.Float("source_frac_work", &e.SourceFracWork)
		r.Float("target_frac_p", &e.TargetFracP)
		return e, nil
	case arch.KindNozzle:
		e := arch.NewNozzle(name)
		r.Ref("target", assign(&e.Target))
		oneOf(r, "type", nozzleTypes, &e.Type)
		r.Float("v_loss_coefficient", &e.VelocityLossCoef)
		r.Bool("fuel_in_air", &e.FuelInAir)
		r.String("flow_out", &e.FlowOut)
		return e, nil
	case arch.KindCompressor:
		e := arch.NewCompressor(name)
		r.Ref("target", assign(&e.Target))
		oneOf(r, "map", compressorMaps, &e.Map)
		r.Float("mach", &e.Mach)
		r.Float("pr", &e.PressureRatio)
		r.Float("eff", &e.Efficiency)
		return e, nil
	case arch.KindBurner:
		e := arch.NewBurner(name)
		r.Ref("target", assign(&e.Target))
		oneOf(r, "fuel", fuelTypes, &e.Fuel)
		r.Float("mach", &e.Mach)
		r.Float("p_loss_frac", &e.PressureLossFrac)
		return e, nil
	case arch.KindTurbine:
		e := arch.NewTurbine(name)
		r.Ref("target", assign(&e.Target))
		oneOf(r, "map", turbineMaps, &e.Map)
		r.Float("mach", &e.Mach)
		r.Float("eff", &e.Efficiency)
		return e, nil
	}
	return nil, fmt.Errorf("%s: no decoder for kind %s", r.el.where(), kind)
}

// shaftDef holds a decoded shaft until the rotors it connects exist.
type shaftDef struct {
	def         *Element
	connections []string
	rpmDesign   float64
	powerLoss   float64
}

func decodeShaft(def *Element, r *attrReader) *shaftDef {
	sd := &shaftDef{def: def, rpmDesign: arch.DefaultShaftRPM}
	r.Strings("connections", &sd.connections)
	r.Float("rpm_design", &sd.rpmDesign)
	r.Float("power_loss", &sd.powerLoss)
	return sd
}

func (sd *shaftDef) build(byName map[string]arch.Element, declared map[string]*Element) (*arch.Shaft, error) {
	rotors := make([]arch.Rotor, 0, len(sd.connections))
	for _, name := range sd.connections {
		el, err := resolve(byName, declared, sd.def, "connections", name)
		if err != nil {
			return nil, err
		}
		rotor, ok := el.(arch.Rotor)
		if !ok {
			return nil, fmt.Errorf("%s: attribute \"connections\": %s %q cannot be driven by a shaft: %w", sd.def.where(), el.Kind(), name, ErrInvalidAttribute)
		}
		rotors = append(rotors, rotor)
	}

	shaft, err := arch.NewShaft(sd.def.Name, rotors...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sd.def.where(), err)
	}
	shaft.RPMDesign, shaft.PowerLoss = sd.rpmDesign, sd.powerLoss
	return shaft, nil
}

// Problem collects the points into the operating problem: exactly one design
// point plus the off-design points in declaration order.
func (m *Model) Problem() (*build.Problem, error) {
	p := &build.Problem{}
	for _, pt := range m.Points {
		c := &build.Condition{
			Name:             pt.Name,
			Design:           pt.Design,
			Mach:             pt.Mach,
			Altitude:         pt.Altitude,
			Thrust:           pt.Thrust,
			DeltaTemp:        pt.DeltaTemp,
			TurbineInletTemp: pt.TurbineInletTemp,
		}
		if !pt.Design {
			p.Evaluate = append(p.Evaluate, c)
			continue
		}
		if p.Design != nil {
			return nil, fmt.Errorf("point %q: %q is already the design point: %w", pt.Name, p.Design.Name, build.ErrInvalidCondition)
		}
		p.Design = c
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
