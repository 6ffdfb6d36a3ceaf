package parser

import (
	"strconv"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads a sheet into a typed grid.
// Numbers are read from the raw cell value, not the display format, so date
// serials survive for later conversion.
func ReadGrid(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make(models.Grid, len(rows))
	for rowIdx, row := range rows {
		cells := make([]any, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedValue(cellValue, cellType)
		}
		grid[rowIdx] = cells
	}

	return grid, nil
}

// typedValue converts a raw cell string according to the cell's stored type.
func typedValue(s string, cellType excelize.CellType) any {
	switch cellType {
	case excelize.CellTypeBool:
		return s == "1" || s == "TRUE" || s == "true"
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(s)
	default:
		return s
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or s unchanged.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
