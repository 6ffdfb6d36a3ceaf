package parser

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/xuri/excelize/v2"
)

// AddressToRowCol decodes an address such as "AB12" into a zero-based position.
// The letters are a bijective base-26 column number (A=1 ... Z=26, AA=27),
// the digits a 1-based row number.
func AddressToRowCol(address string) (models.CellAddress, error) {
	split := -1
	for i := 0; i < len(address); i++ {
		if address[i] >= '0' && address[i] <= '9' {
			split = i
			break
		}
	}
	if split < 0 {
		return models.CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidFormat, address)
	}

	col, err := decodeColumn(address[:split])
	if err != nil {
		return models.CellAddress{}, fmt.Errorf("%w: %q", err, address)
	}

	row, err := strconv.Atoi(address[split:])
	if err != nil || row < 1 || row > excelize.TotalRows {
		return models.CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidRow, address)
	}

	return models.CellAddress{Row: row - 1, Col: col}, nil
}

// ColumnToIndex decodes column letters ("A", "AB") into a zero-based column index.
func ColumnToIndex(letters string) (int, error) {
	col, err := decodeColumn(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, letters)
	}
	return col, nil
}

func decodeColumn(letters string) (int, error) {
	if letters == "" {
		return 0, ErrInvalidColumn
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a') + 1
		default:
			return 0, ErrInvalidColumn
		}
		if n > excelize.MaxColumns {
			return 0, ErrInvalidColumn
		}
	}
	return n - 1, nil
}

// CellName returns the canonical upper-case address of a zero-based position.
func CellName(addr models.CellAddress) (string, error) {
	return excelize.CoordinatesToCellName(addr.Col+1, addr.Row+1)
}

// ColumnName returns the column letters of a zero-based column index.
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return strconv.Itoa(col + 1)
	}
	return name
}
