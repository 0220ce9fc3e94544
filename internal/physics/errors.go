package physics

import "errors"

var (
	// ErrInvalidState indicates a particle position or velocity went NaN or Inf.
	ErrInvalidState = errors.New("bouncebox: invalid particle state (NaN or Inf detected)")

	// ErrUnknownParam indicates a parameter name that Params does not define.
	ErrUnknownParam = errors.New("bouncebox: unknown parameter")

	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("bouncebox: parameter out of valid bounds")
)
