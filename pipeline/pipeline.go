// Package pipeline implements the orthogonal fetch decorators described in
// spec.md §4.D: cache, retry with back-off, authentication refresh, XSRF
// protection, transformation, connectivity, diagnostics, signal-based
// gating, and header injection. Each wrapper takes a Fetch and returns a
// Fetch, preserving its contract, so callers compose a bespoke pipeline by
// function application: outermost wrapper first.
package pipeline

import (
	"context"

	"github.com/paychex/datapipeline/datapipe"
)

// Fetch dispatches a single Request and resolves its Response, or returns
// an error-bearing rejection. Every wrapper in this package both consumes
// and produces a Fetch.
type Fetch func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error)

// Wrapper decorates a Fetch with one cross-cutting concern.
type Wrapper func(Fetch) Fetch

// Chain applies wrappers to base in order, so that Chain(base, a, b)(req)
// runs a's pre-dispatch logic, then b's, then base, unwinding back through
// b then a. This is the composition order the state machine in spec.md
// §4.D assumes (signal -> headers/transform -> cache -> connectivity ->
// auth/retry -> diagnostics -> adapter).
func Chain(base Fetch, wrappers ...Wrapper) Fetch {
	fetch := base
	for i := len(wrappers) - 1; i >= 0; i-- {
		fetch = wrappers[i](fetch)
	}
	return fetch
}
