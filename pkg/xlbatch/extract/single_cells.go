package extract

import (
	"fmt"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// SingleCells reads individually addressed cells. Each instruction key becomes
// an output key; its value is an address ("B3") or {cell: "B3", type: "..."}.
// Cells outside the populated area yield nil.
func SingleCells(grid models.Grid, instructions map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(instructions))
	for key, raw := range instructions {
		target, err := parseCellTarget(raw)
		if err != nil {
			return nil, fmt.Errorf("single_cells %q: %w", key, err)
		}
		addr, err := parser.AddressToRowCol(target.Cell)
		if err != nil {
			return nil, fmt.Errorf("single_cells %q: %w", key, err)
		}
		v, err := convertValue(grid.At(addr), target.Type)
		if err != nil {
			return nil, fmt.Errorf("single_cells %q at %s: %w", key, target.Cell, err)
		}
		out[key] = v
	}
	return out, nil
}
