package config

import "errors"

var (
	// ErrUnknownAttribute is returned for an attribute the element kind does
	// not define.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidAttribute is returned for an attribute of the wrong type or
	// outside its allowed values.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrUnknownReference is returned when an attribute names an element that
	// is not defined.
	ErrUnknownReference = errors.New("unknown element reference")
)
