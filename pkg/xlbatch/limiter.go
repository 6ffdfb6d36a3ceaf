package xlbatch

// limiter.go implements the admission control for batch processing.
//
// The limiter uses a semaphore pattern to restrict how many files are
// processed in parallel. When all slots are occupied, Acquire blocks until a
// slot frees or the context ends.

import (
	"context"
	"sync"
)

// Limiter controls concurrent file processing using a semaphore pattern.
type Limiter struct {
	semaphore chan struct{}

	mu     sync.RWMutex
	active int
	peak   int
}

// NewLimiter creates a limiter that allows at most maxConcurrent files at once.
// Values below one are raised to one.
func NewLimiter(maxConcurrent int) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

// Acquire waits for a free slot. On success it returns the function that
// releases the slot; calling it more than once has no further effect.
func (l *Limiter) Acquire(ctx context.Context) (release func(), err error) {
	// fail fast on a cancelled context even if a slot is free
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case l.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.Lock()
	l.active++
	if l.active > l.peak {
		l.peak = l.active
	}
	l.mu.Unlock()

	var once sync.Once
	return func() { once.Do(l.release) }, nil
}

func (l *Limiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of slots currently held.
func (l *Limiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Peak returns the highest number of slots held at the same time.
func (l *Limiter) Peak() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.peak
}

// Max returns the maximum number of concurrent slots.
func (l *Limiter) Max() int {
	return cap(l.semaphore)
}

// LimiterStatus is a snapshot of the limiter's state.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	Peak          int `json:"peak"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring/debugging.
func (l *Limiter) Status() LimiterStatus {
	l.mu.RLock()
	active, peak := l.active, l.peak
	l.mu.RUnlock()

	return LimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		Peak:          peak,
		MaxConcurrent: cap(l.semaphore),
	}
}
