package xlbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidJob indicates a job file that cannot be used.
var ErrInvalidJob = errors.New("invalid job")

// Job is a batch described by a job file.
type Job struct {
	// Files are paths or doublestar patterns, relative to BaseDir.
	Files []string
	// Workers overrides the concurrency limit when positive.
	Workers int
	// Specs are applied to every file.
	Specs []models.ExtractionSpec
	// BaseDir is the directory of the job file.
	BaseDir string
}

type jobFile struct {
	Files       []string `mapstructure:"files"`
	Workers     int      `mapstructure:"workers"`
	Extractions any      `mapstructure:"extractions"`
}

// LoadJob reads a YAML or JSON job file.
// The document is either a bare list of extraction specs or an object with
// files, workers and extractions keys.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	job, err := ParseJob(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.BaseDir = filepath.Dir(path)
	return job, nil
}

// ParseJob decodes a job document.
func ParseJob(data []byte) (*Job, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}

	var jf jobFile
	switch doc := raw.(type) {
	case []any:
		jf.Extractions = doc
	case map[string]any:
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &jf,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
		}
	default:
		return nil, fmt.Errorf("%w: expected a list or an object, got %T", ErrInvalidJob, raw)
	}

	specs, err := ParseSpecs(jf.Extractions)
	if err != nil {
		return nil, err
	}
	return &Job{
		Files:   jf.Files,
		Workers: jf.Workers,
		Specs:   specs,
	}, nil
}

// Validate reports every problem with the job at once.
func (j *Job) Validate() error {
	var errs []error
	if len(j.Files) == 0 {
		errs = append(errs, errors.New("no input files"))
	}
	if j.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", j.Workers))
	}
	if len(j.Specs) == 0 {
		errs = append(errs, errors.New("no extraction specs"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidJob, errors.Join(errs...))
	}
	return nil
}

// Paths expands the job's file patterns.
func (j *Job) Paths() ([]string, error) {
	return ExpandFiles(j.BaseDir, j.Files)
}

// ExpandFiles resolves patterns against base and expands doublestar globs.
// Literal paths are kept even when they do not exist, so they surface later
// as unreadable files. Duplicates are dropped, first occurrence wins.
func ExpandFiles(base string, patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if base != "" && !filepath.IsAbs(pattern) {
			pattern = filepath.Join(base, pattern)
		}
		if !hasGlobMeta(pattern) {
			add(filepath.Clean(pattern))
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
