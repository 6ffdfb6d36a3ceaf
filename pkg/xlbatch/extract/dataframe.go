package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// DefaultDataKey is the output key of Dataframe when none is configured.
const DefaultDataKey = "data"

// Orientations of the Dataframe output.
const (
	// OrientRecords yields a list of {column: value} objects.
	OrientRecords = "records"
	// OrientColumns yields {column: [values...]}.
	OrientColumns = "columns"
	// OrientSplit yields {columns: [...], rows: [[...]]} and keeps column order.
	OrientSplit = "split"
)

type dataframeInstructions struct {
	Range         string            `mapstructure:"range"`
	Header        *bool             `mapstructure:"header"`
	Orient        string            `mapstructure:"orient"`
	Types         map[string]string `mapstructure:"types"`
	DropEmptyRows *bool             `mapstructure:"drop_empty_rows"`
	Output        string            `mapstructure:"output"`
}

// Dataframe reads a rectangular table. Without a range the bounding box of all
// non-empty cells is used. With header (the default) the first row names the
// columns; otherwise column letters are used.
func Dataframe(grid models.Grid, instructions map[string]any) (map[string]any, error) {
	var in dataframeInstructions
	if err := decode(instructions, &in); err != nil {
		return nil, fmt.Errorf("dataframe: %w", err)
	}
	if in.Output == "" {
		in.Output = DefaultDataKey
	}
	if in.Orient == "" {
		in.Orient = OrientRecords
	}
	switch in.Orient {
	case OrientRecords, OrientColumns, OrientSplit:
	default:
		return nil, fmt.Errorf("dataframe: %w: unknown orient %q", ErrInvalidInstructions, in.Orient)
	}
	header := in.Header == nil || *in.Header
	dropEmpty := in.DropEmptyRows == nil || *in.DropEmptyRows

	var (
		r  models.Range
		ok bool
	)
	if in.Range != "" {
		parsed, err := parser.ParseRange(in.Range)
		if err != nil {
			return nil, fmt.Errorf("dataframe range: %w", err)
		}
		// cells outside the grid are empty, so a sheet-wide range costs no more
		// than the populated area
		r, ok = parser.ClampRange(grid, parsed)
	} else {
		r, ok = parser.DataBounds(grid)
	}
	if !ok {
		return map[string]any{in.Output: emptyFrame(in.Orient)}, nil
	}

	names := columnNames(grid, r, header)
	types := make([]string, len(names))
	for col, typ := range in.Types {
		idx := slices.Index(names, col)
		if idx < 0 {
			return nil, fmt.Errorf("dataframe types: %w: unknown column %q", ErrInvalidInstructions, col)
		}
		if !validType(typ) {
			return nil, fmt.Errorf("dataframe types: %w: unknown type %q", ErrInvalidInstructions, typ)
		}
		types[idx] = typ
	}

	firstRow := r.Start.Row
	if header {
		firstRow++
	}

	rows := make([][]any, 0, r.Rows())
	for row := firstRow; row <= r.End.Row; row++ {
		rowRange := models.Range{
			Start: models.CellAddress{Row: row, Col: r.Start.Col},
			End:   models.CellAddress{Row: row, Col: r.End.Col},
		}
		if dropEmpty && parser.CountNonEmpty(grid, rowRange) == 0 {
			continue
		}
		values := make([]any, len(names))
		for i := range names {
			raw, _ := grid.Cell(row, r.Start.Col+i)
			v, err := convertValue(raw, types[i])
			if err != nil {
				return nil, fmt.Errorf("dataframe %s column %q row %d: %w", parser.FormatRange(r), names[i], row+1, err)
			}
			values[i] = v
		}
		rows = append(rows, values)
	}

	return map[string]any{in.Output: shapeFrame(in.Orient, names, rows)}, nil
}

// columnNames derives unique column names for the range.
func columnNames(grid models.Grid, r models.Range, header bool) []string {
	names := make([]string, r.Cols())
	seen := make(map[string]bool, len(names))
	for i := range names {
		col := r.Start.Col + i
		name := parser.ColumnName(col)
		if header {
			if v, _ := grid.Cell(r.Start.Row, col); v != nil {
				if s := strings.TrimSpace(cast.ToString(v)); s != "" {
					name = s
				}
			}
		}
		unique := name
		for n := 1; seen[unique]; n++ {
			unique = fmt.Sprintf("%s_%d", name, n)
		}
		seen[unique] = true
		names[i] = unique
	}
	return names
}

func shapeFrame(orient string, names []string, rows [][]any) any {
	switch orient {
	case OrientColumns:
		cols := make(map[string][]any, len(names))
		for i, name := range names {
			values := make([]any, len(rows))
			for j, row := range rows {
				values[j] = row[i]
			}
			cols[name] = values
		}
		return cols
	case OrientSplit:
		if rows == nil {
			rows = [][]any{}
		}
		return map[string]any{"columns": names, "rows": rows}
	default:
		records := make([]map[string]any, len(rows))
		for j, row := range rows {
			rec := make(map[string]any, len(names))
			for i, name := range names {
				rec[name] = row[i]
			}
			records[j] = rec
		}
		return records
	}
}

func emptyFrame(orient string) any {
	return shapeFrame(orient, []string{}, nil)
}
