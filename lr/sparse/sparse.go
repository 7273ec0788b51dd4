/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is a small set of int32 values; more than one value
at a position denotes a conflict in a parser table.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     n := M.Count(2, 3)             // returns 2
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten. Adding a value already
// present at a position is a no-op.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, ok := m.find(i, j); ok {
		return m.values[k].value[0]
	}
	return m.nullval
}

// Values returns a copy of all values at position (i,j), in order of insertion.
// For empty positions, nil is returned.
func (m *IntMatrix) Values(i, j int) []int32 {
	if k, ok := m.find(i, j); ok {
		return append([]int32(nil), m.values[k].value...)
	}
	return nil
}

// Count returns the number of distinct values at position (i,j).
func (m *IntMatrix) Count(i, j int) int {
	if k, ok := m.find(i, j); ok {
		return len(m.values[k].value)
	}
	return 0
}

// Set a value in the matrix at position (i,j), replacing all previous values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.setOrAdd(i, j, value, false)
	return m
}

// Add a value in the matrix at position (i,j). Returns true if the value was not
// yet present at (i,j).
func (m *IntMatrix) Add(i, j int, value int32) bool {
	return m.setOrAdd(i, j, value, true)
}

// Each calls f for every non-empty position, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		f(t.row, t.col, append([]int32(nil), t.value...))
	}
}

func (m *IntMatrix) find(i, j int) (int, bool) {
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			return k, t.storedAt(i, j)
		}
	}
	return len(m.values), false
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) bool {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at, found := m.find(i, j)
	if found {
		if !doAdd {
			m.values[at].value = []int32{value}
			return true
		}
		for _, v := range m.values[at].value {
			if v == value {
				return false
			}
		}
		m.values[at].value = append(m.values[at].value, value)
		return true
	}
	tnew := triplet{row: i, col: j, value: []int32{value}}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return true
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%v", t.row, t.col, t.value)
}
