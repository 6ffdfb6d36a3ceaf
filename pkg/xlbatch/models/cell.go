// Package models defines the data structures shared by the extraction engine.
package models

// CellAddress is a zero-based (row, column) position in a sheet.
type CellAddress struct {
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
}

// Range is a rectangular block of cells, both corners inclusive.
type Range struct {
	Start CellAddress `json:"start"`
	End   CellAddress `json:"end"`
}

// Rows returns the number of rows covered by the range.
func (r Range) Rows() int {
	return r.End.Row - r.Start.Row + 1
}

// Cols returns the number of columns covered by the range.
func (r Range) Cols() int {
	return r.End.Col - r.Start.Col + 1
}

// Grid is the typed content of one worksheet, indexed [row][col].
// Empty cells hold nil; other cells hold string, int64, float64 or bool.
// Rows may have different lengths.
type Grid [][]any

// Cell returns the value at (row, col). ok is false when the position lies
// outside the populated part of the sheet.
func (g Grid) Cell(row, col int) (v any, ok bool) {
	if row < 0 || col < 0 || row >= len(g) || col >= len(g[row]) {
		return nil, false
	}
	return g[row][col], true
}

// At returns the value at addr, nil when out of bounds.
func (g Grid) At(addr CellAddress) any {
	v, _ := g.Cell(addr.Row, addr.Col)
	return v
}

// RowCount returns the number of populated rows.
func (g Grid) RowCount() int {
	return len(g)
}
