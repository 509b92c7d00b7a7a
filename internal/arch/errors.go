package arch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundTurbomachinery is returned when a compressor or turbine is
	// realized before any shaft was bound to it.
	ErrUnboundTurbomachinery = errors.New("turbomachinery element is not bound to a shaft")
	// ErrDuplicateShaftBinding is returned by NewShaft when a connection is
	// already driven by another shaft.
	ErrDuplicateShaftBinding = errors.New("turbomachinery element is already bound to a shaft")
	// ErrInvalidShaftTopology is returned when a shaft links fewer than two
	// turbomachinery elements.
	ErrInvalidShaftTopology = errors.New("shaft must connect at least two turbomachinery elements")
	// ErrAbstractMethodInvoked is returned when a phase has no implementation
	// for the receiving element.
	ErrAbstractMethodInvoked = errors.New("abstract method invoked")
	// ErrMissingElement is returned when a required topology reference is nil.
	ErrMissingElement = errors.New("required element reference is missing")
	// ErrDuplicateElementName is returned when two elements share a name.
	ErrDuplicateElementName = errors.New("duplicate element name")
)

// ElementError records a failed phase on a single element.
type ElementError struct {
	Element string
	Kind    Kind
	Phase   Phase
	Err     error
}

func (e *ElementError) Error() string {
	if e.Phase == PhaseNone {
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s %q: %s: %v", e.Kind, e.Element, e.Phase, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
