package xlbatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"golang.org/x/sync/errgroup"
)

// ProcessFiles applies specs to every file in paths, running at most
// opts.WorkerLimit() files at a time.
//
// Results are returned in completion order together with a closed channel
// holding one progress line per completed file. The first hard failure
// cancels the batch: files still running finish their current directive, but
// no further results are recorded and ProcessFiles returns the error with no
// results. The progress channel is closed in every case.
func ProcessFiles(ctx context.Context, paths []string, specs []models.ExtractionSpec, opts Options) ([]models.FileResult, <-chan string, error) {
	total := len(paths)
	progress := make(chan string, total)

	logger := opts.logger().With().Str("run_id", uuid.NewString()).Logger()
	opts.Logger = &logger

	if total == 0 {
		close(progress)
		return []models.FileResult{}, progress, nil
	}

	limiter := NewLimiter(opts.WorkerLimit())
	logger.Info().Int("files", total).Int("workers", limiter.Max()).Msg("starting batch")

	start := time.Now()
	results := make(chan models.FileResult, total)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, path := range paths {
			release, err := limiter.Acquire(gctx)
			if err != nil {
				return err
			}
			g.Go(func() error {
				defer release()
				logger.Debug().Str("file", path).Int("active", limiter.ActiveCount()).Msg("processing file")
				res, err := ExtractFile(gctx, path, specs, opts)
				if err != nil {
					return err
				}
				results <- res
				return nil
			})
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	collected := make([]models.FileResult, 0, total)
	for res := range results {
		if gctx.Err() != nil {
			// aborted; drain without recording
			continue
		}
		collected = append(collected, res)
		p := Progress{Done: len(collected), Total: total, Elapsed: time.Since(start)}
		progress <- p.String()
		if opts.OnProgress != nil {
			opts.OnProgress(p)
		}
	}
	close(progress)

	if err := <-done; err != nil {
		logger.Error().Err(err).Int("completed", len(collected)).Msg("batch aborted")
		return nil, progress, err
	}

	logger.Info().
		Int("files", total).
		Int("peak_workers", limiter.Peak()).
		Dur("elapsed", time.Since(start)).
		Msg("batch complete")
	return collected, progress, nil
}
