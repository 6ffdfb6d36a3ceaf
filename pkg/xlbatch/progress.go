package xlbatch

import (
	"fmt"
	"time"
)

// Progress is a snapshot of a running batch, taken after a file completes.
type Progress struct {
	Done    int
	Total   int
	Elapsed time.Duration
}

// AvgSeconds returns the average wall-clock seconds per completed file.
// It is zero before the first completion.
func (p Progress) AvgSeconds() float64 {
	if p.Done <= 0 {
		return 0
	}
	return p.Elapsed.Seconds() / float64(p.Done)
}

// RemainingSeconds estimates the seconds left for the files not yet done.
func (p Progress) RemainingSeconds() float64 {
	left := p.Total - p.Done
	if left < 0 {
		left = 0
	}
	return p.AvgSeconds() * float64(left)
}

func (p Progress) String() string {
	return fmt.Sprintf("Progress: %d/%d files. Avg: %.2fs. Time left: %.2fs.",
		p.Done, p.Total, p.AvgSeconds(), p.RemainingSeconds())
}
