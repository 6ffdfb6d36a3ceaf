// Package workbook opens spreadsheet files and exposes their sheets as typed grids.
package workbook

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned by Sheet for names the workbook does not contain.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an opened spreadsheet. Implementations are used by a single
// goroutine and need not be safe for concurrent use.
type Workbook interface {
	// SheetNames lists the sheets in workbook order.
	SheetNames() []string
	// Sheet returns the typed content of the named sheet.
	Sheet(name string) (models.Grid, error)
	// Close releases the underlying file.
	Close() error
}

// Opener opens the workbook stored at path.
type Opener func(path string) (Workbook, error)

type excelWorkbook struct {
	f     *excelize.File
	grids map[string]models.Grid
}

// Open opens an xlsx/xlsm/xltx file with excelize.
func Open(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &excelWorkbook{f: f, grids: make(map[string]models.Grid)}, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Sheet reads the sheet once and serves later calls from memory.
func (w *excelWorkbook) Sheet(name string) (models.Grid, error) {
	if grid, ok := w.grids[name]; ok {
		return grid, nil
	}
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	grid, err := parser.ReadGrid(w.f, name)
	if err != nil {
		return nil, err
	}
	w.grids[name] = grid
	return grid, nil
}

func (w *excelWorkbook) Close() error {
	return w.f.Close()
}
