package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// WithHeaders deep-clones the request, then fills in any header name not
// already present with the corresponding default from headers. A
// caller-specified header always wins over a default with the same key.
// Applying WithHeaders twice with the same defaults is idempotent: the
// second pass finds every key already present and changes nothing.
func WithHeaders(headers map[string]string) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			clone := request.Clone()
			if clone.Headers == nil {
				clone.Headers = map[string]string{}
			}
			for k, v := range headers {
				if _, present := clone.Headers[k]; !present {
					clone.Headers[k] = v
				}
			}
			return next(ctx, clone)
		}
	}
}
