package algebra

import (
	"errors"
	"fmt"
	"strings"
)

// Structural faults: hard failures of the operation that raised them. They
// propagate to the immediate caller and are matched with errors.Is.
var (
	// ErrDimensionMismatch indicates incompatible matrix shapes, e.g. Add
	// over different shapes or Mul where a.Cols() != b.Rows().
	ErrDimensionMismatch = errors.New("algebra: matrix dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("algebra: matrix is not square")

	// ErrSingular is returned when elimination finds no usable pivot. The
	// zero-test is symbolic, so this can be a false positive when the true
	// pivot is a non-obviously-nonzero expression.
	ErrSingular = errors.New("algebra: matrix is singular")

	// ErrUnsupportedPower marks a matrix exponent other than 1 or a
	// negative integer.
	ErrUnsupportedPower = errors.New("algebra: unsupported matrix power")

	// ErrNotVector is returned by vector indexing on a matrix that is not
	// a single row or column.
	ErrNotVector = errors.New("algebra: matrix is not a vector")
)

// CallFault records one recoverable evaluation fault: a call target failed
// on its (already rewritten) arguments. The pass tolerates the failure,
// leaves the call unevaluated, and accumulates the fault for inspection.
type CallFault struct {
	Target string
	Args   []Expr
	Err    error
}

func (f *CallFault) Error() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("algebra: call %s(%s): %v", f.Target, strings.Join(parts, ", "), f.Err)
}

func (f *CallFault) Unwrap() error { return f.Err }
