package sym

import "errors"

// ErrNonSquare is returned when a determinant is requested for a
// non-square matrix.
var ErrNonSquare = errors.New("sym: matrix is not square")

// Matrix is a dense matrix of symbolic entries.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// NewMatrix makes a rows-by-cols matrix filled with zeros.
func NewMatrix(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic("sym: non-positive matrix dimensions")
	}
	data := make([]Expr, rows*cols)
	for i := range data {
		data[i] = N(0)
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the entry at (r, c).
func (m *Matrix) At(r, c int) Expr { return m.data[r*m.cols+c] }

// Set stores the entry at (r, c).
func (m *Matrix) Set(r, c int, v Expr) { m.data[r*m.cols+c] = v }

// Det computes the determinant in closed algebraic form by cofactor
// expansion along the first row.
func (m *Matrix) Det() (Expr, error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	rows := make([][]Expr, m.rows)
	for r := 0; r < m.rows; r++ {
		rows[r] = m.data[r*m.cols : (r+1)*m.cols]
	}
	return Expand(det(rows)), nil
}

func det(rows [][]Expr) Expr {
	n := len(rows)
	switch n {
	case 1:
		return rows[0][0]
	case 2:
		return AddOf(
			MulOf(rows[0][0], rows[1][1]),
			MulOf(N(-1), rows[0][1], rows[1][0]))
	}
	var terms []Expr
	for c := 0; c < n; c++ {
		sign := int64(1)
		if c%2 == 1 {
			sign = -1
		}
		terms = append(terms, MulOf(N(sign), rows[0][c], det(minor(rows, c))))
	}
	return AddOf(terms...)
}

func minor(rows [][]Expr, skip int) [][]Expr {
	n := len(rows)
	out := make([][]Expr, 0, n-1)
	for r := 1; r < n; r++ {
		row := make([]Expr, 0, n-1)
		for c := 0; c < n; c++ {
			if c == skip {
				continue
			}
			row = append(row, rows[r][c])
		}
		out = append(out, row)
	}
	return out
}
