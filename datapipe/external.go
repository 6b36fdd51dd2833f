package datapipe

import "context"

// Adapter performs the actual transport for a Request. Per spec.md §6 an
// adapter must never fail synchronously: on failure it returns a Response
// whose Meta.Error is true and whose Status reflects the failure class (0
// for abort/timeout). The func type itself, rather than an error return,
// is what makes that contract visible at the call site.
type Adapter func(ctx context.Context, request *Request) *Response

// Cache is the opaque key-value store addressed by Request that WithCache
// consults. Implementations must never reject: Get returning a non-nil
// error is treated as a cache miss, and a Set error is swallowed.
type Cache interface {
	Get(ctx context.Context, request *Request) (*Response, error)
	Set(ctx context.Context, request *Request, response *Response) error
}

// RetryFunction decides, after a failed attempt, whether to retry. It
// receives the request and the failed response (nil if the adapter did not
// produce one) and signals "retry" by returning nil, "give up" by returning
// a non-nil error.
type RetryFunction func(ctx context.Context, request *Request, response *Response) error

// Reauthenticate refreshes credentials after a 401; a non-nil return means
// reauthentication failed and the original error should propagate.
type Reauthenticate func(ctx context.Context, request *Request) error

// Reconnect is awaited by WithConnectivity while the host is offline; it
// should return once connectivity is restored (or the wait gives up).
type Reconnect func(ctx context.Context, request *Request) error

// Diagnostics observes a Request whose Adapter failed with a non-positive
// status. It is invoked as a detached, best-effort task; its result (if any)
// is never surfaced to the caller.
type Diagnostics func(ctx context.Context, request *Request)

// Transformer optionally rewrites a request body/headers before dispatch
// and a response payload after. Either hook may be nil.
type Transformer struct {
	Request  func(body interface{}, headers map[string]string) interface{}
	Response func(data interface{}) interface{}
}

// Signal gates or serializes fetches. Ready suspends until the signal
// admits the caller; Set releases it. The interface has no Reset method:
// WithSignal only ever calls Ready and Set.
type Signal interface {
	Ready(ctx context.Context) error
	Set()
}
