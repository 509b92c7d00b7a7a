package build

import "errors"

var (
	// ErrMissingTurbineInletTemp is returned for a design condition without a
	// turbine inlet temperature target.
	ErrMissingTurbineInletTemp = errors.New("design condition requires a turbine inlet temperature")
	// ErrInvalidCondition is returned for malformed operating conditions.
	ErrInvalidCondition = errors.New("invalid operating condition")
	// ErrNoBurnerInflow is returned when the first burner has no upstream
	// element to take the compressor exit pressure from.
	ErrNoBurnerInflow = errors.New("burner has no upstream element")
)
