package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// WithAuthentication invokes next; on a thrown error whose response status
// is 401, it invokes reauthenticate and, on success, retries the original
// call exactly once. A second 401 in the same call chain, or a
// reauthenticate failure, rethrows the original error unchanged. The
// "exactly once" guard is a boolean threaded through the recursive retry,
// not shared per-request state, so unrelated requests never interfere with
// each other's reauthentication budget.
func WithAuthentication(reauthenticate datapipe.Reauthenticate) Wrapper {
	return func(next Fetch) Fetch {
		var run func(ctx context.Context, request *datapipe.Request, alreadyRetried bool) (*datapipe.Response, error)
		run = func(ctx context.Context, request *datapipe.Request, alreadyRetried bool) (*datapipe.Response, error) {
			response, err := next(ctx, request)
			if err == nil {
				return response, nil
			}

			failed := responseFromError(err)
			if alreadyRetried || failed == nil || failed.Status != 401 {
				return nil, err
			}

			if reauthErr := reauthenticate(ctx, request); reauthErr != nil {
				return nil, err
			}

			response, retryErr := run(ctx, request, true)
			if retryErr != nil {
				if again := responseFromError(retryErr); again != nil && again.Status == 401 {
					return nil, err
				}
				return nil, retryErr
			}
			return response, nil
		}

		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			return run(ctx, request, false)
		}
	}
}
