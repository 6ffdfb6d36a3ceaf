package parser

import "github.com/ukaji3/xlbatch/pkg/xlbatch/models"

// DataBounds finds the bounding box of non-empty cells.
// ok is false when the grid holds no values.
func DataBounds(grid models.Grid) (r models.Range, ok bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell == nil {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return models.Range{}, false
	}
	return models.Range{
		Start: models.CellAddress{Row: minRow, Col: minCol},
		End:   models.CellAddress{Row: maxRow, Col: maxCol},
	}, true
}

// CountNonEmpty counts non-empty cells within the range.
func CountNonEmpty(grid models.Grid, r models.Range) int {
	count := 0
	for row := r.Start.Row; row <= r.End.Row; row++ {
		for col := r.Start.Col; col <= r.End.Col; col++ {
			if v, _ := grid.Cell(row, col); v != nil {
				count++
			}
		}
	}
	return count
}

// ClampRange intersects r with the populated extent of the grid: the rows it
// holds and the width of its longest row. ok is false when nothing remains.
func ClampRange(grid models.Grid, r models.Range) (models.Range, bool) {
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	r.End.Row = min(r.End.Row, len(grid)-1)
	r.End.Col = min(r.End.Col, width-1)
	if r.Start.Row > r.End.Row || r.Start.Col > r.End.Col {
		return models.Range{}, false
	}
	return r, true
}
