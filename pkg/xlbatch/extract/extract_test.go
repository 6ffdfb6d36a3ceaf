package extract

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// invoice is a small sheet shaped like a typical report:
// a header block, then a line-item table starting at row 4.
func invoice() models.Grid {
	return models.Grid{
		{"Invoice", "INV-7", nil, 44927.5},
		{"Customer", "ACME", nil, nil},
		{},
		{"Item", "Qty", "Price", "Shipped"},
		{"bolt", int64(10), 0.25, 44930.0},
		{"nut", int64(20), 0.1, nil},
		{nil, nil, nil, nil},
		{"washer", "5", 0.05, nil},
	}
}

func TestSingleCells(t *testing.T) {
	out, err := SingleCells(invoice(), map[string]any{
		"number":   "B1",
		"customer": "b2",
		"date":     map[string]any{"cell": "D1", "type": "datetime"},
		"missing":  "Z99",
	})
	if err != nil {
		t.Fatalf("SingleCells failed: %v", err)
	}

	expected := map[string]any{
		"number":   "INV-7",
		"customer": "ACME",
		"date":     "2023-01-01 12:00:00",
		"missing":  nil,
	}
	if !reflect.DeepEqual(out, expected) {
		t.Errorf("SingleCells = %v, expected %v", out, expected)
	}
}

func TestSingleCellsErrors(t *testing.T) {
	tests := []struct {
		name         string
		instructions map[string]any
		expected     error
	}{
		{"bad address", map[string]any{"x": "1A"}, parser.ErrInvalidColumn},
		{"no row", map[string]any{"x": "AB"}, parser.ErrInvalidFormat},
		{"unknown key", map[string]any{"x": map[string]any{"cel": "A1"}}, ErrInvalidInstructions},
		{"unknown type", map[string]any{"x": map[string]any{"cell": "A1", "type": "money"}}, ErrInvalidInstructions},
	}
	for _, tt := range tests {
		if _, err := SingleCells(invoice(), tt.instructions); !errors.Is(err, tt.expected) {
			t.Errorf("%s: error = %v, expected %v", tt.name, err, tt.expected)
		}
	}

	// numeric conversion of text fails
	if _, err := SingleCells(invoice(), map[string]any{"x": map[string]any{"cell": "A1", "type": "number"}}); err == nil {
		t.Error("expected conversion error")
	}
}

func TestMultirowPatterns(t *testing.T) {
	out, err := MultirowPatterns(invoice(), map[string]any{
		"start_row": 5,
		"columns": map[string]any{
			"item":    "A",
			"qty":     map[string]any{"column": "B", "type": "int"},
			"shipped": map[string]any{"column": "D", "type": "datetime"},
		},
		"output": "lines",
	})
	if err != nil {
		t.Fatalf("MultirowPatterns failed: %v", err)
	}

	expected := map[string]any{"lines": []map[string]any{
		{"item": "bolt", "qty": int64(10), "shipped": "2023-01-04 00:00:00"},
		{"item": "nut", "qty": int64(20), "shipped": nil},
		{"item": "washer", "qty": int64(5), "shipped": nil},
	}}
	if !reflect.DeepEqual(out, expected) {
		t.Errorf("MultirowPatterns = %v, expected %v", out, expected)
	}
}

func TestMultirowPatternsStopIfNull(t *testing.T) {
	out, err := MultirowPatterns(invoice(), map[string]any{
		"start_row":    5.0, // JSON numbers decode as float64
		"columns":      map[string]any{"item": "A"},
		"stop_if_null": "A",
	})
	if err != nil {
		t.Fatalf("MultirowPatterns failed: %v", err)
	}
	rows := out[DefaultRowsKey].([]map[string]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows before the blank row, got %d: %v", len(rows), rows)
	}

	out, err = MultirowPatterns(invoice(), map[string]any{
		"start_row":  5,
		"end_row":    7,
		"columns":    map[string]any{"item": "A"},
		"skip_empty": false,
	})
	if err != nil {
		t.Fatalf("MultirowPatterns failed: %v", err)
	}
	rows = out[DefaultRowsKey].([]map[string]any)
	if len(rows) != 3 || rows[2]["item"] != nil {
		t.Errorf("expected 3 rows including the empty one, got %v", rows)
	}
}

func TestMultirowPatternsErrors(t *testing.T) {
	tests := []map[string]any{
		{"columns": map[string]any{"a": "A"}},
		{"start_row": 1},
		{"start_row": 5, "end_row": 2, "columns": map[string]any{"a": "A"}},
		{"start_row": 1, "columns": map[string]any{"a": "A"}, "step": -1},
		{"start_row": 1, "columns": map[string]any{"a": "A"}, "colour": "red"},
	}
	for i, instructions := range tests {
		if _, err := MultirowPatterns(invoice(), instructions); !errors.Is(err, ErrInvalidInstructions) {
			t.Errorf("case %d: error = %v, expected ErrInvalidInstructions", i, err)
		}
	}
	if _, err := MultirowPatterns(invoice(), map[string]any{"start_row": 1, "columns": map[string]any{"a": "A1"}}); !errors.Is(err, parser.ErrInvalidColumn) {
		t.Errorf("expected ErrInvalidColumn, got %v", err)
	}
}

func TestDataframeRecords(t *testing.T) {
	out, err := Dataframe(invoice(), map[string]any{
		"range": "A4:C8",
		"types": map[string]any{"Qty": "int"},
	})
	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	expected := map[string]any{DefaultDataKey: []map[string]any{
		{"Item": "bolt", "Qty": int64(10), "Price": 0.25},
		{"Item": "nut", "Qty": int64(20), "Price": 0.1},
		{"Item": "washer", "Qty": int64(5), "Price": 0.05},
	}}
	if !reflect.DeepEqual(out, expected) {
		t.Errorf("Dataframe = %v, expected %v", out, expected)
	}
}

func TestDataframeSplitWithoutHeader(t *testing.T) {
	grid := models.Grid{
		{nil, "x", "x"},
		{nil, int64(1), int64(2)},
	}
	out, err := Dataframe(grid, map[string]any{"orient": "split", "output": "t"})
	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	frame := out["t"].(map[string]any)
	if !reflect.DeepEqual(frame["columns"], []string{"x", "x_1"}) {
		t.Errorf("columns = %v", frame["columns"])
	}
	if !reflect.DeepEqual(frame["rows"], [][]any{{int64(1), int64(2)}}) {
		t.Errorf("rows = %v", frame["rows"])
	}

	out, err = Dataframe(grid, map[string]any{"orient": "columns", "header": false})
	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	expected := map[string][]any{"B": {"x", int64(1)}, "C": {"x", int64(2)}}
	if !reflect.DeepEqual(out[DefaultDataKey], expected) {
		t.Errorf("columns frame = %v, expected %v", out[DefaultDataKey], expected)
	}
}

func TestDataframeSheetWideRange(t *testing.T) {
	grid := models.Grid{
		{"name", "qty"},
		{"bolt", int64(4)},
	}

	done := make(chan struct{})
	var (
		out map[string]any
		err error
	)
	go func() {
		defer close(done)
		out, err = Dataframe(grid, map[string]any{"range": "A1:XFD1048576"})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dataframe over a sheet-wide range did not finish within 1s")
	}

	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	expected := []map[string]any{{"name": "bolt", "qty": int64(4)}}
	if !reflect.DeepEqual(out[DefaultDataKey], expected) {
		t.Errorf("Dataframe = %v, expected %v", out[DefaultDataKey], expected)
	}
}

func TestDataframeRangeOutsideGrid(t *testing.T) {
	out, err := Dataframe(invoice(), map[string]any{"range": "A20:C30"})
	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	if rows := out[DefaultDataKey].([]map[string]any); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestDataframeEmptySheet(t *testing.T) {
	out, err := Dataframe(models.Grid{}, map[string]any{})
	if err != nil {
		t.Fatalf("Dataframe failed: %v", err)
	}
	if rows := out[DefaultDataKey].([]map[string]any); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestDataframeErrors(t *testing.T) {
	tests := []struct {
		instructions map[string]any
		expected     error
	}{
		{map[string]any{"orient": "table"}, ErrInvalidInstructions},
		{map[string]any{"range": "A4"}, parser.ErrInvalidFormat},
		{map[string]any{"range": "A4:C8", "types": map[string]any{"Cost": "number"}}, ErrInvalidInstructions},
	}
	for _, tt := range tests {
		if _, err := Dataframe(invoice(), tt.instructions); !errors.Is(err, tt.expected) {
			t.Errorf("Dataframe(%v) error = %v, expected %v", tt.instructions, err, tt.expected)
		}
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		value    any
		typ      string
		expected any
	}{
		{nil, TypeNumber, nil},
		{int64(3), "", int64(3)},
		{int64(3), TypeString, "3"},
		{"2.5", TypeNumber, 2.5},
		{2.9, TypeInt, int64(2)},
		{"true", TypeBool, true},
		{int64(1), TypeDatetime, "1899-12-31 00:00:00"},
		{"2023-01-01", TypeDatetime, "2023-01-01"},
	}
	for _, tt := range tests {
		got, err := convertValue(tt.value, tt.typ)
		if err != nil {
			t.Errorf("convertValue(%v, %q) returned error: %v", tt.value, tt.typ, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("convertValue(%v, %q) = %v (%T), expected %v (%T)", tt.value, tt.typ, got, got, tt.expected, tt.expected)
		}
	}

	if _, err := convertValue(true, TypeDatetime); err == nil {
		t.Error("expected an error converting bool to datetime")
	}
}
