// Package output serializes batch results as JSON or YAML documents.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"gopkg.in/yaml.v3"
)

// Format is an output document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", name)
	}
}

// Marshal encodes v, typically []models.FileResult or a single
// models.FileResult. pretty indents JSON; YAML is always block style.
func Marshal(v any, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		var (
			data []byte
			err  error
		)
		if pretty {
			data, err = json.MarshalIndent(v, "", "  ")
		} else {
			data, err = json.Marshal(v)
		}
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Write writes data to path. "-" writes to stdout.
// Missing parent directories are created.
func Write(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("output written")
	return nil
}

// WriteFiles writes one document per result into dir, named after the input
// file with the format's extension. Inputs sharing a base name get a numeric
// suffix. It returns the written paths in result order.
func WriteFiles(dir string, results []models.FileResult, format Format, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	written := make([]string, 0, len(results))
	taken := make(map[string]bool)
	for _, res := range results {
		data, err := Marshal(res, format, pretty)
		if err != nil {
			return written, fmt.Errorf("%s: %w", res.Path, err)
		}
		path := filepath.Join(dir, documentName(res.Path, format, taken))
		if err := Write(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// documentName picks an unused file name for input. taken holds every name
// handed out so far.
func documentName(input string, format Format, taken map[string]bool) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + "." + string(format)
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s_%d.%s", stem, n, format)
	}
	taken[name] = true
	return name
}
