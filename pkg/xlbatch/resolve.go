package xlbatch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/extract"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/match"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/workbook"
)

// ExtractFile opens the workbook at path and applies specs to it.
// A file that cannot be opened is not an error: it yields a result with no
// sheets and Err set, so one corrupt file does not stop a batch.
func ExtractFile(ctx context.Context, path string, specs []models.ExtractionSpec, opts Options) (models.FileResult, error) {
	logger := opts.logger().With().Str("file", filepath.Base(path)).Logger()

	wb, err := opts.opener()(path)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot open workbook, skipping file")
		return models.FileResult{
			Path: path,
			Err:  fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err),
		}, nil
	}
	defer func() {
		if err := wb.Close(); err != nil {
			logger.Debug().Err(err).Msg("close workbook")
		}
	}()

	return Resolve(ctx, wb, path, specs, logger)
}

// Resolve applies specs, in order, to an opened workbook.
// Missing sheets and unsupported functions are logged and skipped; an
// extraction function error aborts the file with a *FileError.
func Resolve(ctx context.Context, wb workbook.Workbook, path string, specs []models.ExtractionSpec, logger zerolog.Logger) (models.FileResult, error) {
	result := models.NewFileResult(path)
	live := wb.SheetNames()

	for _, spec := range specs {
		sheets := resolveSheets(spec, live)
		logger.Debug().Strs("sheets", sheets).Msg("resolved sheets")

		for _, name := range sheets {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			grid, err := wb.Sheet(name)
			if err != nil {
				logger.Warn().Str("sheet", name).Err(err).Msgf("%v, skipping extraction", ErrMissingSheet)
				continue
			}

			if spec.BreakIfNull != nil {
				if v, ok := grid.Cell(spec.BreakIfNull.Row, spec.BreakIfNull.Col); !ok || v == nil {
					logger.Debug().Str("sheet", name).Msg("break_if_null cell is empty, stopping")
					break
				}
			}

			sheet := models.SheetResult{}
			for _, d := range spec.Extractions {
				out, err := runDirective(d, grid)
				if err != nil {
					if d.Function == models.FunctionUnsupported {
						logger.Warn().Str("sheet", name).Str("function", d.Name).Msg("unsupported function type, skipping")
						continue
					}
					return result, NewFileError(path, name, d.Name, fmt.Errorf("%w: %w", ErrExtractionFailed, err))
				}
				sheet.Merge(d.Label, out)
			}

			result.MergeSheet(name, sheet)
		}
	}

	return result, nil
}

// runDirective dispatches a directive to its extraction function.
func runDirective(d models.Directive, grid models.Grid) (map[string]any, error) {
	switch d.Function {
	case models.FunctionSingleCells:
		return extract.SingleCells(grid, d.Instructions)
	case models.FunctionMultirowPatterns:
		return extract.MultirowPatterns(grid, d.Instructions)
	case models.FunctionDataframe:
		return extract.Dataframe(grid, d.Instructions)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFunction, d.Name)
	}
}

// resolveSheets expands the sheet entries of an extraction spec against the workbook.
// Order is first-seen, duplicates are dropped and skip_sheets always wins.
// Literal names are looked up case-insensitively, as Excel does, and reported
// with the workbook's own spelling.
func resolveSheets(spec models.ExtractionSpec, live []string) []string {
	skip := make(map[string]bool, len(spec.SkipSheets))
	for _, name := range spec.SkipSheets {
		skip[canonicalSheet(live, name)] = true
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] || skip[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, entry := range spec.Sheets {
		if match.HasWildcard(entry) {
			for _, name := range match.SheetNames(live, entry) {
				add(name)
			}
			continue
		}
		add(canonicalSheet(live, entry))
	}
	return names
}

// canonicalSheet returns the workbook's spelling of name. An exact match wins;
// names the workbook does not hold are returned unchanged.
func canonicalSheet(live []string, name string) string {
	if slices.Contains(live, name) {
		return name
	}
	for _, candidate := range live {
		if strings.EqualFold(candidate, name) {
			return candidate
		}
	}
	return name
}
