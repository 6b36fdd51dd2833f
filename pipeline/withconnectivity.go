package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// OnlineChecker reports whether the host environment currently considers
// itself connected. A nil checker is treated as always online, matching
// spec.md §4.D's "default true when not available".
type OnlineChecker func() bool

// WithConnectivity consults online before dispatch; when it reports false,
// WithConnectivity awaits reconnect(request) before proceeding.
func WithConnectivity(online OnlineChecker, reconnect datapipe.Reconnect) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			if online != nil && !online() {
				if err := reconnect(ctx, request); err != nil {
					return nil, err
				}
			}
			return next(ctx, request)
		}
	}
}
