// Package datapipe implements the DataLayer: it turns a caller-authored
// DataDefinition into a concrete Request via the proxy and tokenizer,
// dispatches the Request to a named Adapter, and validates the Response,
// raising structured PipelineErrors when either step fails.
package datapipe

import "time"

// DataDefinition is the caller-authored, read-only description of a data
// operation. Only Base and Path are required; every other field seeds a
// default when left at its zero value (see DataLayer.CreateRequest).
type DataDefinition struct {
	Base            string
	Path            string
	Method          string
	Adapter         string
	WithCredentials bool
	Compression     bool
	Timeout         time.Duration
	Headers         map[string]string
	Ignore          map[string]interface{}
	Body            interface{}
	ResponseType    string

	Cache             Cache
	Retry             RetryFunction
	TransformRequest  func(body interface{}, headers map[string]string) interface{}
	TransformResponse func(data interface{}) interface{}

	// Version, Host, Protocol, and Port are ordinarily left for a ProxyRule
	// to supply; a caller may also set them directly.
	Version  string
	Host     string
	Protocol string
	Port     string

	// Extra carries any additional fields a ProxyRule merges in that are
	// not part of the closed field set above.
	Extra map[string]interface{}
}

// Request is a DataDefinition that has passed through the Proxy and
// Tokenizer: URL and Body are resolved, and Headers/Ignore/Extra are copies
// private to this Request. Treat a Request as immutable once returned from
// CreateRequest; wrappers that need to mutate it must call Clone first,
// which allocates a new identity.
type Request struct {
	DataDefinition
	URL string

	frozen bool
}

// Clone deep-copies r, including its map-valued fields, and returns a
// Request with a new identity. Wrappers that mutate a request (WithHeaders,
// WithTransform, WithXSRF) must clone before writing, per the spec's
// per-request-identity invariant: a clone is a new identity, an unmodified
// pass-through preserves the original one.
func (r *Request) Clone() *Request {
	clone := *r
	clone.frozen = false
	clone.Headers = cloneStringMap(r.Headers)
	clone.Ignore = cloneAnyMap(r.Ignore)
	clone.Extra = cloneAnyMap(r.Extra)
	return &clone
}

// Frozen reports whether the request has been returned from CreateRequest
// and should be treated as read-only.
func (r *Request) Frozen() bool { return r.frozen }

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
