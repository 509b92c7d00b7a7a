package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/vk/turbarch/internal/arch"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// where prefixes messages about the element with its source location when it
// has one.
func (e *Element) where() string {
	if e.Range.Filename == "" {
		return fmt.Sprintf("%s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s %q", e.Range.String(), e.Kind, e.Name)
}

// reference is an attribute naming another element. set binds the resolved
// element once every element exists.
type reference struct {
	attr   string
	target string
	set    func(arch.Element) error
}

// attrReader decodes the attributes of one element, remembering which ones
// were consumed and the first error met.
type attrReader struct {
	el   *Element
	used map[string]struct{}
	refs []reference
	err  error
}

func newAttrReader(el *Element) *attrReader {
	return &attrReader{el: el, used: make(map[string]struct{})}
}

func (r *attrReader) fail(attr string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: attribute %q: %w", r.el.where(), attr, err)
	}
}

// value returns the attribute converted to ty. Absent and null attributes
// report false.
func (r *attrReader) value(attr string, ty cty.Type) (cty.Value, bool) {
	if r.err != nil {
		return cty.NilVal, false
	}
	v, ok := r.el.Attributes[attr]
	if !ok {
		return cty.NilVal, false
	}
	r.used[attr] = struct{}{}
	if v.IsNull() {
		return cty.NilVal, false
	}
	if !v.IsWhollyKnown() {
		r.fail(attr, fmt.Errorf("value is not known: %w", ErrInvalidAttribute))
		return cty.NilVal, false
	}
	cv, err := convert.Convert(v, ty)
	if err != nil {
		r.fail(attr, fmt.Errorf("%v: %w", err, ErrInvalidAttribute))
		return cty.NilVal, false
	}
	return cv, true
}

func (r *attrReader) decode(attr string, ty cty.Type, dst any) {
	v, ok := r.value(attr, ty)
	if !ok {
		return
	}
	if err := gocty.FromCtyValue(v, dst); err != nil {
		r.fail(attr, fmt.Errorf("%v: %w", err, ErrInvalidAttribute))
	}
}

func (r *attrReader) Float(attr string, dst *float64) { r.decode(attr, cty.Number, dst) }

func (r *attrReader) Bool(attr string, dst *bool) { r.decode(attr, cty.Bool, dst) }

func (r *attrReader) String(attr string, dst *string) { r.decode(attr, cty.String, dst) }

func (r *attrReader) Strings(attr string, dst *[]string) { r.decode(attr, cty.List(cty.String), dst) }

// Ref records a reference to another element under attr.
func (r *attrReader) Ref(attr string, set func(arch.Element) error) {
	var target string
	r.String(attr, &target)
	if target != "" {
		r.refs = append(r.refs, reference{attr: attr, target: target, set: set})
	}
}

// Done reports the first decoding error, or an error naming every attribute
// that was never consumed.
func (r *attrReader) Done() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for name := range r.el.Attributes {
		if _, ok := r.used[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: attributes %q: %w", r.el.where(), unknown, ErrUnknownAttribute)
}

// oneOf decodes a string attribute restricted to the space-separated values in
// allowed.
func oneOf[T ~string](r *attrReader, attr, allowed string, dst *T) {
	var s string
	r.String(attr, &s)
	if s == "" {
		return
	}
	if err := validate.Var(s, "oneof="+allowed); err != nil {
		r.fail(attr, fmt.Errorf("%q is not one of %s: %w", s, allowed, ErrInvalidAttribute))
		return
	}
	*dst = T(s)
}

// assign returns a reference binder storing the resolved element in dst.
func assign(dst *arch.Element) func(arch.Element) error {
	return func(el arch.Element) error {
		*dst = el
		return nil
	}
}
