package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/sirupsen/logrus"
)

// WithCache consults cache before calling the inner fetch. A hit is cloned,
// marked Meta.Cached, and returned directly without dispatching. A miss
// falls through to next, and the resulting response is stored
// fire-and-forget: cache.Set runs synchronously here (the pipeline itself
// is single-threaded cooperative per spec.md §5) but its result is always
// swallowed, per the Cache contract that it must never reject.
func WithCache(cache datapipe.Cache) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			if cached, err := cache.Get(ctx, request); err == nil && cached != nil {
				hit := cached.Clone()
				hit.Meta.Cached = true
				return hit, nil
			}

			response, err := next(ctx, request)
			if err != nil {
				return nil, err
			}

			if setErr := cache.Set(ctx, request, response); setErr != nil {
				logrus.StandardLogger().WithError(setErr).
					WithField("url", request.URL).
					Debug("pipeline: cache.Set failed, ignoring per cache contract")
			}

			return response, nil
		}
	}
}
