package parser

import (
	"testing"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
)

func TestDataBounds(t *testing.T) {
	grid := models.Grid{
		{},
		{nil, nil, "Name", "Qty"},
		{nil, nil, "bolt", int64(4)},
		{nil, nil, nil, nil, "note"},
	}

	r, ok := DataBounds(grid)
	if !ok {
		t.Fatal("expected bounds")
	}
	expected := models.Range{
		Start: models.CellAddress{Row: 1, Col: 2},
		End:   models.CellAddress{Row: 3, Col: 4},
	}
	if r != expected {
		t.Errorf("DataBounds = %+v, expected %+v", r, expected)
	}
	if n := CountNonEmpty(grid, r); n != 5 {
		t.Errorf("CountNonEmpty = %d, expected 5", n)
	}

	if _, ok := DataBounds(models.Grid{{nil}, {}}); ok {
		t.Error("expected no bounds for an empty grid")
	}
}

func TestClampRange(t *testing.T) {
	grid := models.Grid{
		{"a", "b"},
		{"c", "d", "e"},
	}
	tests := []struct {
		name     string
		input    string
		expected models.Range
		ok       bool
	}{
		{"inside", "A1:B2", models.Range{End: models.CellAddress{Row: 1, Col: 1}}, true},
		{"sheet-wide", "A1:XFD1048576", models.Range{End: models.CellAddress{Row: 1, Col: 2}}, true},
		{"offset start kept", "B2:Z99", models.Range{Start: models.CellAddress{Row: 1, Col: 1}, End: models.CellAddress{Row: 1, Col: 2}}, true},
		{"below grid", "A5:C9", models.Range{}, false},
		{"right of grid", "D1:F2", models.Range{}, false},
	}
	for _, tt := range tests {
		r, err := ParseRange(tt.input)
		if err != nil {
			t.Fatalf("%s: ParseRange failed: %v", tt.name, err)
		}
		got, ok := ClampRange(grid, r)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("%s: ClampRange = %v, %v, expected %v, %v", tt.name, got, ok, tt.expected, tt.ok)
		}
	}

	if _, ok := ClampRange(models.Grid{}, models.Range{}); ok {
		t.Error("expected no range for an empty grid")
	}
}
