// Package extract implements the extraction functions a directive can name.
//
// Every function receives the typed grid of one sheet and the directive's
// instruction map, and returns the values to merge into the sheet result.
// Instruction maps are shared between workers and are never modified.
package extract

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// Value types accepted by the "type" instruction fields.
const (
	TypeAuto     = "auto"
	TypeString   = "string"
	TypeNumber   = "number"
	TypeInt      = "int"
	TypeBool     = "bool"
	TypeDatetime = "datetime"
)

// ErrInvalidInstructions indicates instructions that do not fit the function.
var ErrInvalidInstructions = errors.New("invalid instructions")

// decode copies an instruction map into a typed struct. Unknown keys are
// rejected so that misspelled options do not go unnoticed.
func decode(input any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstructions, err)
	}
	return nil
}

// convertValue coerces a cell value to the requested type. Empty cells stay nil.
func convertValue(v any, typ string) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch typ {
	case "", TypeAuto:
		return v, nil
	case TypeString:
		return cast.ToStringE(v)
	case TypeNumber:
		return cast.ToFloat64E(v)
	case TypeInt:
		return cast.ToInt64E(v)
	case TypeBool:
		return cast.ToBoolE(v)
	case TypeDatetime:
		switch n := v.(type) {
		case int64:
			return parser.ExcelDatetime(float64(n))
		case float64:
			return parser.ExcelDatetime(n)
		case string:
			// already text, e.g. a date typed in as a string
			return n, nil
		default:
			return nil, fmt.Errorf("cannot convert %T to %s", v, typ)
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInstructions, typ)
	}
}

func validType(typ string) bool {
	switch typ {
	case "", TypeAuto, TypeString, TypeNumber, TypeInt, TypeBool, TypeDatetime:
		return true
	}
	return false
}

// cellTarget is the long form of a single_cells entry: {cell: "B3", type: "datetime"}.
type cellTarget struct {
	Cell string `mapstructure:"cell"`
	Type string `mapstructure:"type"`
}

// columnTarget is the long form of a column entry: {column: "C", type: "number"}.
type columnTarget struct {
	Column string `mapstructure:"column"`
	Type   string `mapstructure:"type"`
}

func parseCellTarget(raw any) (cellTarget, error) {
	if s, ok := raw.(string); ok {
		return cellTarget{Cell: s}, nil
	}
	var target cellTarget
	if err := decode(raw, &target); err != nil {
		return target, err
	}
	if target.Cell == "" {
		return target, fmt.Errorf("%w: missing cell", ErrInvalidInstructions)
	}
	if !validType(target.Type) {
		return target, fmt.Errorf("%w: unknown type %q", ErrInvalidInstructions, target.Type)
	}
	return target, nil
}

func parseColumnTarget(raw any) (columnTarget, error) {
	if s, ok := raw.(string); ok {
		return columnTarget{Column: s}, nil
	}
	var target columnTarget
	if err := decode(raw, &target); err != nil {
		return target, err
	}
	if target.Column == "" {
		return target, fmt.Errorf("%w: missing column", ErrInvalidInstructions)
	}
	if !validType(target.Type) {
		return target, fmt.Errorf("%w: unknown type %q", ErrInvalidInstructions, target.Type)
	}
	return target, nil
}
