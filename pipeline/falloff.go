package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/paychex/datapipeline/datapipe"
	"github.com/paychex/datapipeline/internal/ident"
)

// Scheduler abstracts the delay primitive Falloff waits on before granting
// a retry, so tests can substitute a fake clock instead of sleeping for
// real. The zero value of realScheduler (time.After) is used by default.
type Scheduler interface {
	After(d time.Duration) <-chan time.Time
}

type realScheduler struct{}

func (realScheduler) After(d time.Duration) <-chan time.Time { return time.After(d) }

// FalloffOption configures Falloff.
type FalloffOption func(*falloffConfig)

type falloffConfig struct {
	scheduler Scheduler
}

// WithScheduler overrides the delay primitive used between retries.
func WithScheduler(s Scheduler) FalloffOption {
	return func(c *falloffConfig) { c.scheduler = s }
}

// Falloff returns a RetryFunction that grants the first `times` invocations
// per request identity and schedules a delay of 2^n * base before each
// retry, where n is the 0-indexed attempt number. On the (times+1)th
// attempt it rejects to stop retrying.
//
// The delay sequence is computed with a fresh
// github.com/cenkalti/backoff/v5 ExponentialBackOff per call (Multiplier 2,
// RandomizationFactor 0, InitialInterval base): its n-th NextBackOff() call
// (1-indexed) yields exactly base*2^(n-1), which is how this function
// derives the spec's 2^n*base schedule without hand-rolling the math.
func Falloff(times int, base time.Duration, opts ...FalloffOption) datapipe.RetryFunction {
	cfg := falloffConfig{scheduler: realScheduler{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	table := ident.NewTable()
	var mu sync.Mutex
	attempts := make(map[string]int)

	return func(ctx context.Context, request *datapipe.Request, _ *datapipe.Response) error {
		handle := table.Handle(request)

		mu.Lock()
		n := attempts[handle]
		attempts[handle] = n + 1
		mu.Unlock()

		if n >= times {
			table.Release(request)
			mu.Lock()
			delete(attempts, handle)
			mu.Unlock()
			return fmt.Errorf("pipeline: falloff exhausted after %d retries", times)
		}

		delay := nthDelay(base, n)
		select {
		case <-cfg.scheduler.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func nthDelay(base time.Duration, n int) time.Duration {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = base
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxInterval = 24 * time.Hour

	var d time.Duration
	for i := 0; i <= n; i++ {
		next, err := eb.NextBackOff()
		if err != nil {
			break
		}
		d = next
	}
	return d
}
