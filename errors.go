package boltpat

import "fmt"

// InputShapeError is returned when a coordinate, point or generator argument
// is malformed or outside its valid range.
type InputShapeError struct {
	Arg    string // offending argument
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("bad %s: %s", e.Arg, e.Reason)
}

// LengthMismatchError is returned when a per-bolt sequence does not have
// one entry per bolt.
type LengthMismatchError struct {
	Arg       string
	Got, Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length of %s is %d, want %d (one per bolt)", e.Arg, e.Got, e.Want)
}

// InvalidModeError is returned when a Mode is neither Minimal nor Full.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %d", int(e.Mode))
}

// DegenerateScaleError is returned when a scale would divide by a zero maximum.
type DegenerateScaleError struct {
	Quantity string
}

func (e *DegenerateScaleError) Error() string {
	return fmt.Sprintf("degenerate scale: maximum %s is zero", e.Quantity)
}

// ShapeErr returns an InputShapeError for argument arg.
func ShapeErr(arg, format string, a ...interface{}) *InputShapeError {
	return &InputShapeError{Arg: arg, Reason: fmt.Sprintf(format, a...)}
}
