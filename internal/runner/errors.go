package runner

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("bouncebox: invalid run config")

// FrameError attaches the frame position to a failure inside a run.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
