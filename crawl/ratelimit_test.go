package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex/crawl"
)

func TestPacedLimiter(t *testing.T) {
	t.Parallel()

	t.Run("delay stays within configured range", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewPacedLimiter(100, 5*time.Millisecond, 20*time.Millisecond)
		for i := 0; i < 50; i++ {
			d := l.Delay()
			assert.GreaterOrEqual(t, d, 5*time.Millisecond)
			assert.Less(t, d, 20*time.Millisecond)
		}
	})

	t.Run("equal min and max gives fixed delay", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewPacedLimiter(100, 7*time.Millisecond, 7*time.Millisecond)
		assert.Equal(t, 7*time.Millisecond, l.Delay())
	})

	t.Run("non-positive min selects defaults", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewPacedLimiter(100, 0, 0)
		d := l.Delay()
		assert.GreaterOrEqual(t, d, crawl.DefaultMinDelay)
		assert.LessOrEqual(t, d, crawl.DefaultMaxDelay)
	})

	t.Run("wait admits request and sleeps base delay", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewPacedLimiter(1000, time.Millisecond, 2*time.Millisecond)
		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
	})

	t.Run("wait honors context cancellation", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewPacedLimiter(1000, time.Minute, time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, "example.com")
		assert.Error(t, err)
	})

	t.Run("domains are paced independently", func(t *testing.T) {
		t.Parallel()

		// One request per second per domain, burst 1: the second request to
		// the same domain would block for ~1s, but a different domain is
		// admitted immediately.
		l := crawl.NewPacedLimiter(1, time.Millisecond, time.Millisecond)
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
}
