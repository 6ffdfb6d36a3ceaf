package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FilePathKey is the key holding the source path in a serialized FileResult.
const FilePathKey = "filepath"

// SheetResult holds the values extracted from one sheet.
type SheetResult map[string]any

// Merge adds the output of one directive to the sheet result.
// Without a label every key is inserted, renaming collisions to key_1, key_2, ...
// With a label the output is merged into the object stored under that label.
func (s SheetResult) Merge(label string, out map[string]any) {
	if label == "" {
		s.mergeUnique(out)
		return
	}
	s.mergeLabeled(label, out)
}

func (s SheetResult) mergeUnique(out map[string]any) {
	// sorted so that suffix assignment does not depend on map order
	for _, key := range sortedKeys(out) {
		unique := key
		for n := 1; ; n++ {
			if _, exists := s[unique]; !exists {
				break
			}
			unique = fmt.Sprintf("%s_%d", key, n)
		}
		s[unique] = out[key]
	}
}

func (s SheetResult) mergeLabeled(label string, out map[string]any) {
	if existing, ok := s[label].(map[string]any); ok {
		for k, v := range out {
			existing[k] = v
		}
		return
	}
	group := make(map[string]any, len(out))
	for k, v := range out {
		group[k] = v
	}
	s[label] = group
}

// FileResult is the extraction output of one input file.
type FileResult struct {
	// Path is the input file path.
	Path string
	// Sheets maps sheet name to its accumulated result.
	Sheets map[string]SheetResult
	// Err is set when the file could not be read. Such a result has no sheets.
	Err error
}

// NewFileResult creates an empty result for path.
func NewFileResult(path string) FileResult {
	return FileResult{
		Path:   path,
		Sheets: make(map[string]SheetResult),
	}
}

// Unreadable reports whether the workbook could not be opened.
func (r FileResult) Unreadable() bool {
	return r.Err != nil
}

// MergeSheet merges a sheet result into the file result. Keys already
// present for that sheet are replaced.
func (r *FileResult) MergeSheet(name string, sheet SheetResult) {
	if r.Sheets == nil {
		r.Sheets = make(map[string]SheetResult)
	}
	existing, ok := r.Sheets[name]
	if !ok {
		r.Sheets[name] = sheet
		return
	}
	for k, v := range sheet {
		existing[k] = v
	}
}

// Flatten returns the document form of the result: the source path under
// FilePathKey next to one entry per sheet.
func (r FileResult) Flatten() map[string]any {
	doc := make(map[string]any, len(r.Sheets)+1)
	for name, sheet := range r.Sheets {
		doc[name] = map[string]any(sheet)
	}
	doc[FilePathKey] = r.Path
	return doc
}

// MarshalJSON encodes the result as {"filepath": ..., "<sheet>": {...}}.
func (r FileResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flatten())
}

// MarshalYAML encodes the result like MarshalJSON.
func (r FileResult) MarshalYAML() (interface{}, error) {
	return r.Flatten(), nil
}

// SortByPath orders results by file path.
func SortByPath(results []FileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
