package batch

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
)

// DefaultChunkSize bounds how many items one action call receives.
const DefaultChunkSize = 50

// Action applies one chunk of work. It may fan out per item internally;
// the executor only requires that the whole chunk has settled when it
// returns.
type Action[T any] func(ctx context.Context, chunk []T) error

// Options configures a single run.
type Options struct {
	// ChunkSize caps items per action call. Zero means DefaultChunkSize.
	ChunkSize int
	// OnProgress, when set, receives the completion percentage after
	// each chunk: monotonically non-decreasing, ending at exactly 100.
	OnProgress func(percent int)
}

// PartialError reports a run that stopped partway. Chunks applied
// before the failure are not rolled back.
type PartialError struct {
	Processed int
	Total     int
	Err       error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("batch stopped after %d/%d items: %v", e.Processed, e.Total, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// Run drives items through action one chunk at a time. Chunk i settles
// before chunk i+1 starts; between chunks the executor yields to the
// scheduler and checks ctx, so long sequences stay cancelable and a UI
// sharing the scheduler stays responsive. An empty input completes
// immediately without invoking action or progress.
func Run[T any](ctx context.Context, items []T, opts Options, action Action[T]) error {
	total := len(items)
	if total == 0 {
		return nil
	}
	size := opts.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	processed := 0
	for start := 0; start < total; start += size {
		if processed > 0 {
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				return &PartialError{Processed: processed, Total: total, Err: err}
			}
		}

		end := start + size
		if end > total {
			end = total
		}
		if err := action(ctx, items[start:end]); err != nil {
			return &PartialError{Processed: processed, Total: total, Err: err}
		}
		processed = end

		if opts.OnProgress != nil {
			opts.OnProgress(percent(processed, total))
		}
	}
	return nil
}

// percent converts a processed count to a whole-number percentage,
// rounded up so a partially finished chunk boundary never reads as an
// earlier one.
func percent(processed, total int) int {
	if processed > total {
		processed = total
	}
	return int(math.Ceil(float64(processed) / float64(total) * 100))
}

// Collector is a polled progress cell for callers that prefer reading
// state over receiving callbacks.
type Collector struct {
	mu      sync.Mutex
	percent int
	events  []int
}

// OnProgress records one progress event. Pass this method as
// Options.OnProgress.
func (c *Collector) OnProgress(p int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.percent = p
	c.events = append(c.events, p)
}

// Percent returns the most recent percentage, zero before any event.
func (c *Collector) Percent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.percent
}

// Events returns every recorded percentage in order.
func (c *Collector) Events() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.events))
	copy(out, c.events)
	return out
}
