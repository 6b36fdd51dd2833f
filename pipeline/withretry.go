package pipeline

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/paychex/datapipeline/internal/ident"
)

// WithRetry decorates next with a retry loop governed by retry. On success
// it sets response.Meta.RetryCount to the number of retries attempted for
// this request and clears its per-request state. On failure it increments
// the count, awaits retry(request, failedResponse); a nil return re-invokes
// the wrapped fetch with the same request, a non-nil return records the
// final count on the error's response (if available), clears state, and
// rethrows the original error.
func WithRetry(retry datapipe.RetryFunction) Wrapper {
	table := ident.NewTable()
	var mu sync.Mutex
	counts := make(map[string]int)

	return func(next Fetch) Fetch {
		var attempt func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error)
		attempt = func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			handle := table.Handle(request)

			response, err := next(ctx, request)
			if err == nil {
				mu.Lock()
				count := counts[handle]
				delete(counts, handle)
				mu.Unlock()
				table.Release(request)

				rc := count
				response.Meta.RetryCount = &rc
				return response, nil
			}

			mu.Lock()
			counts[handle]++
			count := counts[handle]
			mu.Unlock()

			failedResponse := responseFromError(err)

			if retryErr := retry(ctx, request, failedResponse); retryErr != nil {
				mu.Lock()
				delete(counts, handle)
				mu.Unlock()
				table.Release(request)

				if failedResponse != nil {
					rc := count
					failedResponse.Meta.RetryCount = &rc
				}
				return nil, err
			}

			return attempt(ctx, request)
		}
		return attempt
	}
}

func responseFromError(err error) *datapipe.Response {
	var perr *datapipe.PipelineError
	if stderrors.As(err, &perr) {
		return perr.Response
	}
	return nil
}
