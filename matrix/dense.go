// SPDX-License-Identifier: MIT
// Package matrix provides the data model for integer matrix multiplication.
// Dense is a concrete, row-major implementation of the Matrix interface,
// storing elements in a flat slice for performance and cache friendliness.
package matrix

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return errors.Wrapf(err, "Dense.%s(%d,%d)", method, row, col)
}

// Dense is a row-major matrix of int32 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int     // number of rows and columns
	data []int32 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "NewDense(%d,%d)", rows, cols)
	}

	return &Dense{r: rows, c: cols, data: make([]int32, rows*cols)}, nil
}

// NewDenseData adopts data as the row-major backing store of a rows×cols matrix.
// The caller hands ownership of data to the returned matrix.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch (len(data) != rows*cols).
func NewDenseData(rows, cols int, data []int32) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "NewDenseData(%d,%d)", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"NewDenseData(%d,%d): len(data)=%d", rows, cols, len(data))
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseFrom copies a row-of-rows literal into a fresh Dense.
// Stage 1 (Validate): non-empty grid, every row the same non-zero length.
// Stage 2 (Execute): copy row by row into the flat buffer.
// Errors: ErrInvalidDimensions (empty), ErrRaggedRows (jagged input).
// Complexity: O(r*c).
func NewDenseFrom(rows [][]int32) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "NewDenseFrom")
	}
	r, c := len(rows), len(rows[0])
	m := &Dense{r: r, c: c, data: make([]int32, r*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.Wrapf(ErrRaggedRows,
				"NewDenseFrom: row %d has %d columns, want %d", i, len(row), c)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n²) for zeroing, O(n) for the diagonal.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, opErrorf("NewIdentity", err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1 // diagonal
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// RawData returns the row-major backing slice (length Rows*Cols).
// The slice aliases m: callers that do not own m must treat it as read-only.
func (m *Dense) RawData() []int32 { return m.data }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (int32, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v int32) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	return m.clone()
}

func (m *Dense) clone() *Dense {
	cp := make([]int32, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for easy debugging.
// Each row is rendered as "[a, b, c]" on its own line.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ { // iterate over rows
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			sb.WriteString(strconv.FormatInt(int64(m.data[i*m.c+j]), 10))
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// AsDense returns m as *Dense, copying through At when m has another
// concrete type. The returned matrix aliases m when m is already *Dense.
// Errors: ErrNilMatrix, or any At failure of a foreign implementation.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf("AsDense", err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, opErrorf("AsDense", err)
	}
	var v int32
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, opErrorf("AsDense", err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}
