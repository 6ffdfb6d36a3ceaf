package workbook

import (
	"fmt"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
)

// Memory is a Workbook held entirely in memory.
type Memory struct {
	order  []string
	grids  map[string]models.Grid
	closed bool
}

// NewMemory builds a workbook whose sheets appear in the given order.
// Names listed in order but absent from grids are reported by SheetNames
// and fail in Sheet, like a sheet that cannot be read.
func NewMemory(order []string, grids map[string]models.Grid) *Memory {
	return &Memory{order: order, grids: grids}
}

func (m *Memory) SheetNames() []string {
	return append([]string(nil), m.order...)
}

func (m *Memory) Sheet(name string) (models.Grid, error) {
	grid, ok := m.grids[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return grid, nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool {
	return m.closed
}
