package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateSerializesConcurrentFetches(t *testing.T) {
	gate := NewGate()
	inside := make(chan struct{})
	release := make(chan struct{})

	fetch := WithSignal(gate)(func(ctx context.Context, _ *datapipe.Request) (*datapipe.Response, error) {
		select {
		case inside <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		<-release
		return &datapipe.Response{Status: 200}, nil
	})

	done := make(chan struct{})
	go func() {
		_, _ = fetch(context.Background(), &datapipe.Request{})
		close(done)
	}()

	<-inside

	second := make(chan struct{})
	go func() {
		_, _ = fetch(context.Background(), &datapipe.Request{})
		close(second)
	}()

	select {
	case <-second:
		t.Fatal("second fetch must not complete while the gate is held")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("second fetch should proceed once the gate is released")
	}
}

func TestGateReadyRespectsContextCancellation(t *testing.T) {
	gate := NewGate()
	require.NoError(t, gate.Ready(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := gate.Ready(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
