package algebra

import (
	"fmt"
	"strings"
)

// Matrix is a dense M×N grid of expressions. It owns its backing grid
// exclusively; every operation allocates a new matrix, and the elimination
// routine only ever mutates private working copies. Entry arithmetic routes
// through an evaluator shared across the operation, so results come back in
// canonical form.
type Matrix struct {
	rows, cols int
	data       [][]Expr
}

// NewMatrix returns a rows×cols matrix of zero constants.
func NewMatrix(rows, cols int) *Matrix {
	data := make([][]Expr, rows)
	for i := range data {
		data[i] = make([]Expr, cols)
		for j := range data[i] {
			data[i][j] = N(0)
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = N(1)
	}
	return m
}

// MatrixFromSlice builds a rows×cols matrix from row-major entries.
func MatrixFromSlice(rows, cols int, entries []Expr) *Matrix {
	if len(entries) != rows*cols {
		panic(fmt.Sprintf("algebra: MatrixFromSlice needs %d entries, got %d", rows*cols, len(entries)))
	}
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[i][j] = entries[i*cols+j]
		}
	}
	return m
}

func (m *Matrix) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("algebra: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
}

func (m *Matrix) Get(row, col int) Expr {
	m.checkBounds(row, col)
	return m.data[row][col]
}

func (m *Matrix) Set(row, col int, val Expr) {
	m.checkBounds(row, col)
	m.data[row][col] = val
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// VecAt indexes a matrix shaped as a single row or column.
func (m *Matrix) VecAt(i int) (Expr, error) {
	switch {
	case m.rows == 1:
		m.checkBounds(0, i)
		return m.data[0][i], nil
	case m.cols == 1:
		m.checkBounds(i, 0)
		return m.data[i][0], nil
	}
	return nil, ErrNotVector
}

func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i][j].String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}

func (m *Matrix) clone() *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}
	return out
}

// ============================================================
// Arithmetic
// ============================================================

func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, ErrDimensionMismatch
	}
	ev := NewEvaluator()
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i][j] = ev.Evaluate(AddOf(m.data[i][j], other.data[i][j]))
		}
	}
	return out, nil
}

func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, ErrDimensionMismatch
	}
	ev := NewEvaluator()
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i][j] = ev.Evaluate(AddOf(m.data[i][j], MulOf(N(-1), other.data[i][j])))
		}
	}
	return out, nil
}

func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, ErrDimensionMismatch
	}
	ev := NewEvaluator()
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			terms := make([]Expr, m.cols)
			for k := 0; k < m.cols; k++ {
				terms[k] = MulOf(m.data[i][k], other.data[k][j])
			}
			out.data[i][j] = ev.Evaluate(AddOf(terms...))
		}
	}
	return out, nil
}

func (m *Matrix) Neg() *Matrix {
	ev := NewEvaluator()
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i][j] = ev.Evaluate(MulOf(N(-1), m.data[i][j]))
		}
	}
	return out
}

func (m *Matrix) Scale(scalar Expr) *Matrix {
	ev := NewEvaluator()
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i][j] = ev.Evaluate(MulOf(scalar, m.data[i][j]))
		}
	}
	return out
}

func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j][i] = m.data[i][j]
		}
	}
	return out
}

// Pow raises a square matrix to an integer power. Only k == 1 and negative k
// are defined: A^1 is A itself and A^-k is the inverse raised to k.
func (m *Matrix) Pow(k int) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	if k == 1 {
		return m, nil
	}
	if k >= 0 {
		return nil, ErrUnsupportedPower
	}
	inv, err := m.Inverse()
	if err != nil {
		return nil, err
	}
	return inv.Pow(-k)
}

// Inverse computes the exact inverse by Gauss-Jordan elimination over an
// augmented identity. Pivots are chosen by a symbolic zero-test: an entry is
// usable unless it evaluates to the zero constant, so an expression that is
// zero in a non-obvious way can still be picked as a pivot. Both working
// matrices are privately owned and discarded on failure.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	n := m.rows
	ev := NewEvaluator()
	work := m.clone()
	inv := Identity(n)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			work.data[row][col] = ev.Evaluate(work.data[row][col])
			if !IsFalse(work.data[row][col]) {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, ErrSingular
		}
		work.data[col], work.data[pivot] = work.data[pivot], work.data[col]
		inv.data[col], inv.data[pivot] = inv.data[pivot], inv.data[col]

		// Normalize the pivot row so the pivot entry becomes exactly 1.
		recip := ev.Evaluate(PowOf(work.data[col][col], N(-1)))
		for j := 0; j < n; j++ {
			work.data[col][j] = ev.Evaluate(MulOf(recip, work.data[col][j]))
			inv.data[col][j] = ev.Evaluate(MulOf(recip, inv.data[col][j]))
		}

		// Eliminate the pivot column from every other row.
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := ev.Evaluate(work.data[row][col])
			if IsFalse(factor) {
				continue
			}
			for j := 0; j < n; j++ {
				work.data[row][j] = ev.Evaluate(AddOf(work.data[row][j], MulOf(N(-1), factor, work.data[col][j])))
				inv.data[row][j] = ev.Evaluate(AddOf(inv.data[row][j], MulOf(N(-1), factor, inv.data[col][j])))
			}
		}
	}
	return inv, nil
}
