package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// WithSignal awaits signal.Ready before dispatch and guarantees signal.Set
// is called once the inner fetch settles, whether it succeeds or fails.
// Configured with an auto-reset Signal, this serializes concurrent fetches
// sharing the pipeline, per spec.md §5.
func WithSignal(signal datapipe.Signal) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			if err := signal.Ready(ctx); err != nil {
				return nil, err
			}
			defer signal.Set()

			return next(ctx, request)
		}
	}
}
