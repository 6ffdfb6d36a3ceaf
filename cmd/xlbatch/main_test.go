package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, total float64) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Total")
	f.SetCellValue("Sheet1", "B1", total)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

const testJob = `
files: ["*.xlsx"]
extractions:
  - sheets: [Sheet1]
    extractions:
      - function: single_cells
        instructions:
          total: {cell: B1, type: number}
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "b.xlsx"), 2)
	writeWorkbook(t, filepath.Join(dir, "a.xlsx"), 1)
	jobPath := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(jobPath, []byte(testJob), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out", "results.json")

	s := settings{Job: jobPath, Workers: 2, Output: outPath, Format: "json", Sort: true}
	if err := run(context.Background(), viper.New(), s, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for i, expected := range []float64{1, 2} {
		sheet, _ := docs[i]["Sheet1"].(map[string]any)
		if sheet["total"] != expected {
			t.Errorf("docs[%d] = %v, expected total %v", i, docs[i], expected)
		}
	}
	if docs[0]["filepath"] != filepath.Join(dir, "a.xlsx") {
		t.Errorf("first document path = %v", docs[0]["filepath"])
	}
}

func TestRunRequiresJob(t *testing.T) {
	if err := run(context.Background(), viper.New(), settings{Format: "json"}, nil); err == nil {
		t.Error("expected an error without a job file")
	}
}

func TestRunRejectsFormat(t *testing.T) {
	if err := run(context.Background(), viper.New(), settings{Job: "job.yaml", Format: "xml"}, nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "console", false},
		{"debug", "json", false},
		{"loud", "console", true},
		{"info", "xml", true},
	}
	for _, tt := range tests {
		if err := setupLogger(tt.level, tt.format); (err != nil) != tt.wantErr {
			t.Errorf("setupLogger(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
		}
	}
}
