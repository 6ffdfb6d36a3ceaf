package extract

import (
	"fmt"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// DefaultRowsKey is the output key of MultirowPatterns when none is configured.
const DefaultRowsKey = "rows"

type multirowInstructions struct {
	StartRow   int            `mapstructure:"start_row"`
	EndRow     int            `mapstructure:"end_row"`
	Step       int            `mapstructure:"step"`
	Columns    map[string]any `mapstructure:"columns"`
	StopIfNull string         `mapstructure:"stop_if_null"`
	SkipEmpty  *bool          `mapstructure:"skip_empty"`
	Output     string         `mapstructure:"output"`
}

type boundColumn struct {
	name string
	col  int
	typ  string
}

// MultirowPatterns reads a block of rows sharing one column layout, starting at
// start_row (1-based). Reading stops at end_row, at the end of the sheet, or at
// the first row whose stop_if_null column is empty.
func MultirowPatterns(grid models.Grid, instructions map[string]any) (map[string]any, error) {
	var in multirowInstructions
	if err := decode(instructions, &in); err != nil {
		return nil, fmt.Errorf("multirow_patterns: %w", err)
	}
	if in.StartRow < 1 {
		return nil, fmt.Errorf("multirow_patterns: %w: start_row must be >= 1", ErrInvalidInstructions)
	}
	if in.EndRow != 0 && in.EndRow < in.StartRow {
		return nil, fmt.Errorf("multirow_patterns: %w: end_row %d before start_row %d", ErrInvalidInstructions, in.EndRow, in.StartRow)
	}
	if in.Step == 0 {
		in.Step = 1
	}
	if in.Step < 0 {
		return nil, fmt.Errorf("multirow_patterns: %w: step must be positive", ErrInvalidInstructions)
	}
	if len(in.Columns) == 0 {
		return nil, fmt.Errorf("multirow_patterns: %w: no columns", ErrInvalidInstructions)
	}
	if in.Output == "" {
		in.Output = DefaultRowsKey
	}
	skipEmpty := in.SkipEmpty == nil || *in.SkipEmpty

	columns := make([]boundColumn, 0, len(in.Columns))
	for name, raw := range in.Columns {
		target, err := parseColumnTarget(raw)
		if err != nil {
			return nil, fmt.Errorf("multirow_patterns column %q: %w", name, err)
		}
		col, err := parser.ColumnToIndex(target.Column)
		if err != nil {
			return nil, fmt.Errorf("multirow_patterns column %q: %w", name, err)
		}
		columns = append(columns, boundColumn{name: name, col: col, typ: target.Type})
	}

	stopCol := -1
	if in.StopIfNull != "" {
		col, err := parser.ColumnToIndex(in.StopIfNull)
		if err != nil {
			return nil, fmt.Errorf("multirow_patterns stop_if_null: %w", err)
		}
		stopCol = col
	}

	limit := grid.RowCount()
	if in.EndRow != 0 && in.EndRow < limit {
		limit = in.EndRow
	}

	rows := make([]map[string]any, 0)
	for row := in.StartRow - 1; row < limit; row += in.Step {
		if stopCol >= 0 {
			if v, _ := grid.Cell(row, stopCol); v == nil {
				break
			}
		}
		record := make(map[string]any, len(columns))
		empty := true
		for _, c := range columns {
			raw, _ := grid.Cell(row, c.col)
			v, err := convertValue(raw, c.typ)
			if err != nil {
				return nil, fmt.Errorf("multirow_patterns column %q row %d: %w", c.name, row+1, err)
			}
			if v != nil {
				empty = false
			}
			record[c.name] = v
		}
		if empty && skipEmpty {
			continue
		}
		rows = append(rows, record)
	}

	return map[string]any{in.Output: rows}, nil
}
