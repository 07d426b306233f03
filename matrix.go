package eoncluster

// Matrix is a numRows x numCols grid of window digits stored row-major.
// Row r holds the digits of every input point for one decomposition window.
type Matrix struct {
	digits  []int32
	numRows int
	numCols int
}

// NewMatrix wraps digits without copying. The caller must not mutate
// digits while the matrix is in use.
func NewMatrix(digits []int32, numRows int) (*Matrix, error) {
	if numRows <= 0 {
		return nil, configuration("numRows must be positive, got %d", numRows)
	}
	if len(digits)%numRows != 0 {
		return nil, configuration("%d digits do not split into %d rows", len(digits), numRows)
	}
	if uint64(len(digits)) > MAX_FLAT_LEN {
		return nil, configuration("%d digits exceed the 32-bit index space", len(digits))
	}
	return &Matrix{
		digits:  digits,
		numRows: numRows,
		numCols: len(digits) / numRows,
	}, nil
}

func (me *Matrix) NumRows() int {
	return me.numRows
}

func (me *Matrix) NumCols() int {
	return me.numCols
}

// Len is the flat length numRows*numCols.
func (me *Matrix) Len() int {
	return len(me.digits)
}

func (me *Matrix) Digit(flat uint32) int32 {
	return me.digits[flat]
}

// Row returns a view of row r. It panics if r is out of range.
func (me *Matrix) Row(r int) []int32 {
	return me.digits[r*me.numCols : (r+1)*me.numCols]
}

// RowOf maps a flat index to its row.
func (me *Matrix) RowOf(flat uint32) int {
	if me.numCols == 0 {
		return 0
	}
	return int(flat) / me.numCols
}

// Nonzero counts the entries that take part in clustering.
func (me *Matrix) Nonzero() int {
	n := 0
	for _, d := range me.digits {
		if d != 0 {
			n++
		}
	}
	return n
}
