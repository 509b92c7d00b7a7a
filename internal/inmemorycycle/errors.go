package inmemorycycle

import "errors"

var (
	ErrDuplicateModule      = errors.New("module already registered")
	ErrUnknownModule        = errors.New("unknown module")
	ErrUnknownPort          = errors.New("unknown flow port")
	ErrUnknownSignal        = errors.New("unknown promoted signal")
	ErrInputConnected       = errors.New("input already connected")
	ErrDuplicatePoint       = errors.New("point already exists")
	ErrDuplicateDesignPoint = errors.New("design point already exists")
	ErrUnknownPoint         = errors.New("unknown point")
	ErrDuplicateParam       = errors.New("cycle parameter already declared")
	ErrDuplicateLink        = errors.New("design/off-design link already declared")
)
