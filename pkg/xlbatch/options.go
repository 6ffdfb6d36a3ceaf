// Package xlbatch extracts structured data from batches of spreadsheet files
// according to declarative extraction specs.
package xlbatch

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/workbook"
)

// Options configures batch processing.
type Options struct {
	// Workers is the maximum number of files processed at once.
	// If zero or negative, runtime.NumCPU() is used.
	Workers int
	// Logger receives diagnostics. If nil, the global zerolog logger is used.
	Logger *zerolog.Logger
	// Open opens a workbook. If nil, workbook.Open is used.
	Open workbook.Opener
	// OnProgress, if set, is called after every completed file from the
	// collecting goroutine. It must not block for long.
	OnProgress func(Progress)
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
	}
}

// WorkerLimit returns the effective concurrency limit.
func (o Options) WorkerLimit() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return log.Logger
}

func (o Options) opener() workbook.Opener {
	if o.Open != nil {
		return o.Open
	}
	return workbook.Open
}
