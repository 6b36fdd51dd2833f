package pipeline

import (
	"context"
	"testing"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	inner := func(_ context.Context, _ *datapipe.Request) (*datapipe.Response, error) {
		attempts++
		if attempts < 3 {
			resp := &datapipe.Response{Status: 503}
			return nil, (&datapipe.PipelineError{Kind: datapipe.KindHTTPError}).WithResponse(resp)
		}
		return &datapipe.Response{Status: 200}, nil
	}

	always := func(context.Context, *datapipe.Request, *datapipe.Response) error { return nil }
	fetch := WithRetry(always)(inner)

	resp, err := fetch(context.Background(), &datapipe.Request{URL: "/x"})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	require.NotNil(t, resp.Meta.RetryCount)
	assert.Equal(t, 2, *resp.Meta.RetryCount)
}

func TestWithRetryGivesUpAndRecordsFinalCount(t *testing.T) {
	attempts := 0
	wantErr := (&datapipe.PipelineError{Kind: datapipe.KindHTTPError}).WithResponse(&datapipe.Response{Status: 500})
	inner := func(_ context.Context, _ *datapipe.Request) (*datapipe.Response, error) {
		attempts++
		return nil, wantErr
	}

	giveUpAfterTwo := func(_ context.Context, _ *datapipe.Request, _ *datapipe.Response) error {
		if attempts >= 2 {
			return assert.AnError
		}
		return nil
	}
	fetch := WithRetry(giveUpAfterTwo)(inner)

	_, err := fetch(context.Background(), &datapipe.Request{URL: "/x"})
	require.Error(t, err)
	assert.Same(t, wantErr, err)
	require.NotNil(t, wantErr.Response.Meta.RetryCount)
	assert.Equal(t, 2, *wantErr.Response.Meta.RetryCount)
}

func TestWithRetryDoesNotRetryOnFirstSuccess(t *testing.T) {
	attempts := 0
	inner := func(_ context.Context, _ *datapipe.Request) (*datapipe.Response, error) {
		attempts++
		return &datapipe.Response{Status: 200}, nil
	}

	neverCalled := func(context.Context, *datapipe.Request, *datapipe.Response) error {
		t.Fatal("retry function must not be consulted on first-attempt success")
		return nil
	}

	fetch := WithRetry(neverCalled)(inner)
	resp, err := fetch(context.Background(), &datapipe.Request{URL: "/x"})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 0, *resp.Meta.RetryCount)
}
