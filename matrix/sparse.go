// SPDX-License-Identifier: MIT
// Package matrix: sparse storage for the QP solver's sparse problem flavor.
//
// Two layouts are provided, matching the two access patterns the solver
// needs (see ldlt and qp packages):
//   - SparseSym: compressed-sparse-column (CSC), upper triangle only,
//     used for the symmetric cost P and for assembled KKT systems.
//   - SparseRows: compressed-sparse-row (CSR), used for the constraint
//     matrix A so constraint-wise (row) iteration is O(nnz in that row).
//
// Both are built incrementally via a triplet-style accumulator and then
// compressed once with Compress(), mirroring the accumulate-then-finalize
// shape used elsewhere in this package for derived/adapter matrices.
package matrix

import "sort"

// SparseSym is a column-major sparse matrix storing only the upper
// triangle (row <= col), suitable for symmetric matrices such as the
// QP cost P or an assembled KKT system.
//
// Storage: colPtr has length n+1; rowIdx/vals have length colPtr[n].
// Within a column, entries are sorted by increasing row index.
type SparseSym struct {
	n       int
	colPtr  []int
	rowIdx  []int
	vals    []float64
	triplet []symTriplet // staging area before Compress
}

type symTriplet struct {
	row, col int
	val      float64
}

// NewSparseSym creates an empty n x n upper-triangular sparse matrix
// accumulator. Call Set repeatedly, then Compress before use.
func NewSparseSym(n int) (*SparseSym, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &SparseSym{n: n}, nil
}

// N returns the dimension of the (square) matrix.
func (s *SparseSym) N() int { return s.n }

// Set stages an entry (row, col) = v with row <= col. Entries below the
// diagonal are rejected: only the upper triangle is semantically
// authoritative for the matrices this type represents.
// Stage 1 (Validate): bounds + upper-triangle invariant.
// Stage 2 (Execute): stage the triplet for the next Compress call.
func (s *SparseSym) Set(row, col int, v float64) error {
	if row < 0 || row >= s.n || col < 0 || col >= s.n {
		return ErrOutOfRange
	}
	if row > col {
		return matrixErrorf("SparseSym.Set", ErrNonSquare)
	}
	s.triplet = append(s.triplet, symTriplet{row: row, col: col, val: v})
	return nil
}

// AddDiag adds delta to the diagonal entry (i, i), staging a new triplet.
// Compress sums duplicate (row, col) triplets, so repeated AddDiag calls
// on the same index accumulate correctly.
func (s *SparseSym) AddDiag(i int, delta float64) error {
	return s.Set(i, i, delta)
}

// Compress finalizes the staged triplets into CSC form, summing
// duplicate entries at the same (row, col) and sorting rows within each
// column by index. Safe to call once after all Set/AddDiag calls.
// Complexity: O(nnz log nnz).
func (s *SparseSym) Compress() {
	sort.Slice(s.triplet, func(i, j int) bool {
		if s.triplet[i].col != s.triplet[j].col {
			return s.triplet[i].col < s.triplet[j].col
		}
		return s.triplet[i].row < s.triplet[j].row
	})

	colPtr := make([]int, s.n+1)
	rowIdx := make([]int, 0, len(s.triplet))
	vals := make([]float64, 0, len(s.triplet))

	col := 0
	for _, t := range s.triplet {
		for col < t.col {
			col++
			colPtr[col] = len(rowIdx)
		}
		if n := len(rowIdx); n > colPtr[col] && rowIdx[n-1] == t.row {
			vals[n-1] += t.val
			continue
		}
		rowIdx = append(rowIdx, t.row)
		vals = append(vals, t.val)
	}
	for c := col + 1; c <= s.n; c++ {
		colPtr[c] = len(rowIdx)
	}

	s.colPtr, s.rowIdx, s.vals = colPtr, rowIdx, vals
	s.triplet = nil
}

// Col returns the row indices and values of the upper-triangle entries
// stored in column j, in increasing row order. Valid only after Compress.
func (s *SparseSym) Col(j int) (rows []int, vals []float64) {
	lo, hi := s.colPtr[j], s.colPtr[j+1]
	return s.rowIdx[lo:hi], s.vals[lo:hi]
}

// NNZ returns the number of stored upper-triangle entries.
func (s *SparseSym) NNZ() int {
	if s.colPtr == nil {
		return len(s.triplet)
	}
	return len(s.vals)
}

// MulVec computes y = P*x treating the receiver as symmetric with only
// the upper triangle stored: each stored (row, col) contributes to both
// y[row] (times x[col]) and, for off-diagonal entries, y[col] (times
// x[row]).
// Complexity: O(nnz).
func (s *SparseSym) MulVec(x []float64) ([]float64, error) {
	if len(x) != s.n {
		return nil, matrixErrorf("SparseSym.MulVec", ErrDimensionMismatch)
	}
	y := make([]float64, s.n)
	for col := 0; col < s.n; col++ {
		rows, vals := s.Col(col)
		for k, row := range rows {
			v := vals[k]
			y[row] += v * x[col]
			if row != col {
				y[col] += v * x[row]
			}
		}
	}
	return y, nil
}

// SparseRows is a row-major sparse matrix (CSR), used for the QP
// constraint matrix A so that constraint-wise (row) assembly and
// transposed products can both be done without materializing a dense
// copy.
type SparseRows struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	vals       []float64
	triplet    []rowTriplet
}

type rowTriplet struct {
	row, col int
	val      float64
}

// NewSparseRows creates an empty rows x cols CSR accumulator.
func NewSparseRows(rows, cols int) (*SparseRows, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &SparseRows{rows: rows, cols: cols}, nil
}

// Rows returns the number of rows.
func (s *SparseRows) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s *SparseRows) Cols() int { return s.cols }

// Set stages an entry (row, col) = v. Compress sums duplicates.
func (s *SparseRows) Set(row, col int, v float64) error {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return ErrOutOfRange
	}
	s.triplet = append(s.triplet, rowTriplet{row: row, col: col, val: v})
	return nil
}

// Compress finalizes staged triplets into CSR form, row-major, columns
// sorted ascending within each row, duplicate (row, col) entries summed.
func (s *SparseRows) Compress() {
	sort.Slice(s.triplet, func(i, j int) bool {
		if s.triplet[i].row != s.triplet[j].row {
			return s.triplet[i].row < s.triplet[j].row
		}
		return s.triplet[i].col < s.triplet[j].col
	})

	rowPtr := make([]int, s.rows+1)
	colIdx := make([]int, 0, len(s.triplet))
	vals := make([]float64, 0, len(s.triplet))

	row := 0
	for _, t := range s.triplet {
		for row < t.row {
			row++
			rowPtr[row] = len(colIdx)
		}
		if n := len(colIdx); n > rowPtr[row] && colIdx[n-1] == t.col {
			vals[n-1] += t.val
			continue
		}
		colIdx = append(colIdx, t.col)
		vals = append(vals, t.val)
	}
	for r := row + 1; r <= s.rows; r++ {
		rowPtr[r] = len(colIdx)
	}

	s.rowPtr, s.colIdx, s.vals = rowPtr, colIdx, vals
	s.triplet = nil
}

// Row returns the column indices and values of row i, in increasing
// column order. Valid only after Compress.
func (s *SparseRows) Row(i int) (cols []int, vals []float64) {
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	return s.colIdx[lo:hi], s.vals[lo:hi]
}

// RowNNZ returns the number of stored entries in row i.
func (s *SparseRows) RowNNZ(i int) int {
	return s.rowPtr[i+1] - s.rowPtr[i]
}

// NNZ returns the total number of stored entries.
func (s *SparseRows) NNZ() int {
	if s.rowPtr == nil {
		return len(s.triplet)
	}
	return len(s.vals)
}

// MulVec computes y = A*x.
// Complexity: O(nnz).
func (s *SparseRows) MulVec(x []float64) ([]float64, error) {
	if len(x) != s.cols {
		return nil, matrixErrorf("SparseRows.MulVec", ErrDimensionMismatch)
	}
	y := make([]float64, s.rows)
	for i := 0; i < s.rows; i++ {
		cols, vals := s.Row(i)
		var acc float64
		for k, c := range cols {
			acc += vals[k] * x[c]
		}
		y[i] = acc
	}
	return y, nil
}

// MulVecTrans computes y = A^T*x.
// Complexity: O(nnz).
func (s *SparseRows) MulVecTrans(x []float64) ([]float64, error) {
	if len(x) != s.rows {
		return nil, matrixErrorf("SparseRows.MulVecTrans", ErrDimensionMismatch)
	}
	y := make([]float64, s.cols)
	for i := 0; i < s.rows; i++ {
		if x[i] == 0 {
			continue
		}
		cols, vals := s.Row(i)
		for k, c := range cols {
			y[c] += vals[k] * x[i]
		}
	}
	return y, nil
}
