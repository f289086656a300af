package obst

import "fmt"

// Number is the element constraint for DP tables.
type Number interface {
	~int | ~float64
}

// Matrix is a dense square table stored row-major in a flat buffer.
//
// Cells below the diagonal (i > j) describe empty intervals. They are kept in
// the buffer so indexing stays a single multiply-add, but they always hold the
// zero value and [Matrix.Defined] reports them as not meaningful.
type Matrix[T Number] struct {
	n    int
	data []T
}

// NewMatrix allocates a zero-filled n×n matrix.
func NewMatrix[T Number](n int) *Matrix[T] {
	if n < 0 {
		n = 0
	}
	return &Matrix[T]{n: n, data: make([]T, n*n)}
}

// MatrixFromRows builds a matrix from row slices. Every row must have
// exactly len(rows) cells.
func MatrixFromRows[T Number](rows [][]T) (*Matrix[T], error) {
	n := len(rows)
	m := NewMatrix[T](n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// Size returns the matrix dimension n.
func (m *Matrix[T]) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

// Defined reports whether (i, j) addresses a non-empty interval inside the
// table.
func (m *Matrix[T]) Defined(i, j int) bool {
	return m != nil && i >= 0 && j < m.n && i <= j
}

// At returns the value at (i, j). Empty intervals (i > j) and coordinates
// outside the table read as zero.
func (m *Matrix[T]) At(i, j int) T {
	if !m.Defined(i, j) {
		var zero T
		return zero
	}
	return m.data[m.offset(i, j)]
}

// Rows returns a copy of the table as nested slices.
func (m *Matrix[T]) Rows() [][]T {
	out := make([][]T, m.Size())
	for i := range out {
		out[i] = make([]T, m.n)
		copy(out[i], m.data[i*m.n:(i+1)*m.n])
	}
	return out
}

// Equal reports whether both matrices have the same size and cells.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m.Size() != other.Size() {
		return false
	}
	for k := range m.data {
		if m.data[k] != other.data[k] {
			return false
		}
	}
	return true
}

func (m *Matrix[T]) set(i, j int, v T) {
	m.data[m.offset(i, j)] = v
}

func (m *Matrix[T]) offset(i, j int) int {
	return i*m.n + j
}
