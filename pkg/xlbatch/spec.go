package xlbatch

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/parser"
)

// ParseSpecs validates decoded JSON or YAML configuration into extraction specs.
// raw must be a list of spec objects.
func ParseSpecs(raw any) ([]models.ExtractionSpec, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of extraction specs, got %T", ErrMalformedSpec, raw)
	}
	specs := make([]models.ExtractionSpec, 0, len(entries))
	for i, entry := range entries {
		spec, err := parseSpec(i, entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseSpec validates a single spec object.
func ParseSpec(raw any) (models.ExtractionSpec, error) {
	return parseSpec(0, raw)
}

func parseSpec(index int, raw any) (models.ExtractionSpec, error) {
	var spec models.ExtractionSpec

	obj, ok := raw.(map[string]any)
	if !ok {
		return spec, specError(index, "extraction spec should be an object, got %T", raw)
	}

	sheets, ok := obj["sheets"]
	if !ok {
		return spec, specError(index, `missing "sheets" key`)
	}
	if spec.Sheets, ok = stringList(sheets); !ok {
		return spec, specError(index, `"sheets" must be a list of sheet names`)
	}

	if skip, present := obj["skip_sheets"]; present && skip != nil {
		if spec.SkipSheets, ok = stringList(skip); !ok {
			return spec, specError(index, `"skip_sheets" must be a list of sheet names`)
		}
	}

	if cell, present := obj["break_if_null"]; present && cell != nil {
		s, ok := cell.(string)
		if !ok {
			return spec, specError(index, `"break_if_null" must be a cell address`)
		}
		addr, err := parser.AddressToRowCol(s)
		if err != nil {
			return spec, fmt.Errorf("%w: entry %d: break_if_null: %w", ErrMalformedSpec, index+1, err)
		}
		spec.BreakIfNull = &addr
	}

	list, ok := obj["extractions"].([]any)
	if !ok {
		return spec, specError(index, `missing or invalid "extractions" key`)
	}
	spec.Extractions = make([]models.Directive, 0, len(list))
	for j, item := range list {
		d, err := parseDirective(item)
		if err != nil {
			return spec, specError(index, "extraction %d: %v", j+1, err)
		}
		spec.Extractions = append(spec.Extractions, d)
	}

	return spec, nil
}

func parseDirective(raw any) (models.Directive, error) {
	var d models.Directive

	obj, ok := raw.(map[string]any)
	if !ok {
		return d, fmt.Errorf("each extraction should be an object, got %T", raw)
	}
	name, ok := obj["function"].(string)
	if !ok {
		return d, errors.New(`missing "function" key`)
	}
	instructions, ok := obj["instructions"].(map[string]any)
	if !ok {
		return d, errors.New(`missing "instructions" key`)
	}
	if label, present := obj["label"]; present && label != nil {
		if d.Label, ok = label.(string); !ok {
			return d, errors.New(`"label" must be a string`)
		}
	}

	d.Function = models.ParseFunction(name)
	d.Name = name
	d.Instructions = instructions
	return d, nil
}

func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
