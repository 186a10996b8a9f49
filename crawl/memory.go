package crawl

import (
	"context"
	"runtime"
	"time"
)

// Default memory-gate settings.
const (
	// DefaultMemoryThreshold is the heap-in-use level above which new
	// fetches wait.
	DefaultMemoryThreshold = 1 << 30 // 1 GiB

	// DefaultPollInterval is how often the gate re-checks heap usage while
	// blocked.
	DefaultPollInterval = 250 * time.Millisecond
)

// MemoryGate provides adaptive resource-based admission for the dispatcher.
// While heap usage is above the threshold, new fetch tasks wait rather than
// fail; admission resumes once usage drops. It complements (not replaces)
// the fixed-size pool bound.
type MemoryGate struct {
	// Threshold is the heap-in-use limit in bytes.
	// Defaults to DefaultMemoryThreshold.
	Threshold uint64

	// PollInterval is the re-check cadence while blocked.
	// Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// readMemStats is swapped in tests. Nil uses runtime.ReadMemStats.
	readMemStats func(*runtime.MemStats)
}

// NewMemoryGate creates a MemoryGate with the given threshold.
// A zero threshold selects DefaultMemoryThreshold.
func NewMemoryGate(threshold uint64) *MemoryGate {
	return &MemoryGate{Threshold: threshold}
}

// Wait blocks until heap usage is below the threshold or the context is
// canceled.
func (g *MemoryGate) Wait(ctx context.Context) error {
	threshold := g.Threshold
	if threshold == 0 {
		threshold = DefaultMemoryThreshold
	}
	poll := g.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	read := g.readMemStats
	if read == nil {
		read = runtime.ReadMemStats
	}

	for {
		var ms runtime.MemStats
		read(&ms)
		if ms.HeapInuse < threshold {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
}
