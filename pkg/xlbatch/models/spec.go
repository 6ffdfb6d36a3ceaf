package models

import "slices"

// Function identifies which extraction function a directive runs.
type Function int

const (
	// FunctionUnsupported marks a directive whose function name is not recognized.
	FunctionUnsupported Function = iota
	// FunctionSingleCells reads individually addressed cells.
	FunctionSingleCells
	// FunctionMultirowPatterns reads a repeating row layout.
	FunctionMultirowPatterns
	// FunctionDataframe reads a rectangular table.
	FunctionDataframe
)

var functionNames = map[string]Function{
	"single_cells":      FunctionSingleCells,
	"multirow_patterns": FunctionMultirowPatterns,
	"dataframe":         FunctionDataframe,
}

// ParseFunction maps a configured function name to its Function.
func ParseFunction(name string) Function {
	if fn, ok := functionNames[name]; ok {
		return fn
	}
	return FunctionUnsupported
}

func (f Function) String() string {
	switch f {
	case FunctionSingleCells:
		return "single_cells"
	case FunctionMultirowPatterns:
		return "multirow_patterns"
	case FunctionDataframe:
		return "dataframe"
	default:
		return "unsupported"
	}
}

// Directive is one extraction step applied to every resolved sheet.
type Directive struct {
	// Function is the extraction function to run.
	Function Function
	// Name is the function name as written in the configuration.
	Name string
	// Label groups the output under a sub-object. Empty means no grouping.
	Label string
	// Instructions are passed verbatim to the extraction function.
	// They are shared between workers and must not be modified.
	Instructions map[string]any
}

// ExtractionSpec selects sheets of a workbook and the directives to apply to them.
// Specs are built once per job and shared read-only by all workers.
type ExtractionSpec struct {
	// Sheets lists sheet names or wildcard patterns, in priority order.
	Sheets []string
	// SkipSheets lists literal names that are never processed.
	SkipSheets []string
	// BreakIfNull stops the sheet loop once this cell is empty (optional).
	BreakIfNull *CellAddress
	// Extractions are run in order against each sheet.
	Extractions []Directive
}

// Skips reports whether the sheet name is excluded by SkipSheets.
func (s ExtractionSpec) Skips(name string) bool {
	return slices.Contains(s.SkipSheets, name)
}
