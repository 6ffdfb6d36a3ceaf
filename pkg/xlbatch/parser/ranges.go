package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
)

// ParseRange parses a range string like $A$1:$D$10.
// The corners are normalized so that Start is the top-left cell.
func ParseRange(ref string) (models.Range, error) {
	// Remove $ signs
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return models.Range{}, fmt.Errorf("%w: range %q", ErrInvalidFormat, ref)
	}

	start, err := AddressToRowCol(parts[0])
	if err != nil {
		return models.Range{}, err
	}
	end, err := AddressToRowCol(parts[1])
	if err != nil {
		return models.Range{}, err
	}

	if start.Row > end.Row {
		start.Row, end.Row = end.Row, start.Row
	}
	if start.Col > end.Col {
		start.Col, end.Col = end.Col, start.Col
	}
	return models.Range{Start: start, End: end}, nil
}

// FormatRange renders a range in A1:B2 notation.
func FormatRange(r models.Range) string {
	start, _ := CellName(r.Start)
	end, _ := CellName(r.End)
	return fmt.Sprintf("%s:%s", start, end)
}
