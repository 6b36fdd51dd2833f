package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// WithDiagnostics observes errors without handling them: on a thrown error
// whose response status is non-positive (adapter-level failure such as an
// abort or a timeout, which report status 0), it schedules
// diagnostics(request) as a detached task — its outcome, including a panic,
// is never allowed to affect the caller — and always rethrows.
func WithDiagnostics(diagnostics datapipe.Diagnostics) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			response, err := next(ctx, request)
			if err == nil {
				return response, nil
			}

			if failed := responseFromError(err); failed != nil && failed.Status <= 0 {
				go runDetached(ctx, request, diagnostics)
			}

			return nil, err
		}
	}
}

func runDetached(ctx context.Context, request *datapipe.Request, diagnostics datapipe.Diagnostics) {
	defer func() { _ = recover() }()
	diagnostics(ctx, request)
}
