package pipeline

import (
	"context"
	"encoding/json"

	"github.com/paychex/datapipeline/datapipe"
)

// WithTransform deep-clones the request and, if transformer supplies a
// Request hook, replaces the clone's body with the hook's return value
// (the hook may also mutate clone.Headers in place). After the inner fetch
// resolves, it deep-clones the response and, if a Response hook exists,
// replaces the clone's data with the hook's return value.
func WithTransform(transformer datapipe.Transformer) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			clone := request.Clone()
			if transformer.Request != nil {
				clone.Body = transformer.Request(clone.Body, clone.Headers)
			}

			response, err := next(ctx, clone)
			if err != nil {
				return nil, err
			}

			modified := response.Clone()
			if transformer.Response != nil {
				modified.Data = transformer.Response(deepCopyData(modified.Data))
			}
			return modified, nil
		}
	}
}

// deepCopyData round-trips data through JSON so a Response hook cannot
// mutate state shared with a previous transform stage or a cache entry.
// Values that do not round-trip (channels, funcs) are passed through
// unchanged rather than causing a panic — spec.md §9 Open Question (c)
// leaves the exact cloning depth unspecified; this module documents the
// choice rather than guessing at byte-for-byte parity with arbitrary Go
// values.
func deepCopyData(data interface{}) interface{} {
	if data == nil {
		return nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out interface{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return data
	}
	return out
}
