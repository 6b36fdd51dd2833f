package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	delays []time.Duration
}

func (f *fakeScheduler) After(d time.Duration) <-chan time.Time {
	f.delays = append(f.delays, d)
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestFalloffSchedulesExponentialDelay(t *testing.T) {
	sched := &fakeScheduler{}
	retry := Falloff(3, 200*time.Millisecond, WithScheduler(sched))

	req := &datapipe.Request{URL: "/x"}
	for i := 0; i < 3; i++ {
		err := retry(context.Background(), req, nil)
		require.NoError(t, err)
	}

	// fourth attempt for the same request exhausts the budget.
	err := retry(context.Background(), req, nil)
	assert.Error(t, err)

	require.Len(t, sched.delays, 3)
	assert.Equal(t, 200*time.Millisecond, sched.delays[0])
	assert.Equal(t, 400*time.Millisecond, sched.delays[1])
	assert.Equal(t, 800*time.Millisecond, sched.delays[2])
}

func TestFalloffCountsPerRequestIdentity(t *testing.T) {
	sched := &fakeScheduler{}
	retry := Falloff(1, 10*time.Millisecond, WithScheduler(sched))

	a := &datapipe.Request{URL: "/a"}
	b := &datapipe.Request{URL: "/b"}

	require.NoError(t, retry(context.Background(), a, nil))
	require.NoError(t, retry(context.Background(), b, nil), "distinct request identity must get its own budget")

	assert.Error(t, retry(context.Background(), a, nil))
	assert.Error(t, retry(context.Background(), b, nil))
}
