package datapipe

import "github.com/paychex/datapipeline/proxyrule"

// knownFields lists every Request/DataDefinition key that has a typed home
// on the Request struct; anything else round-trips through Extra. This is
// the "typed core plus secondary open map" shape the spec.md §9 Design Note
// asks for.
var knownFields = map[string]bool{
	proxyrule.FieldBase:     true,
	proxyrule.FieldPath:     true,
	proxyrule.FieldMethod:   true,
	proxyrule.FieldAdapter:  true,
	proxyrule.FieldVersion:  true,
	proxyrule.FieldHost:     true,
	proxyrule.FieldProtocol: true,
	proxyrule.FieldPort:     true,
	proxyrule.FieldURL:      true,
	"withCredentials":       true,
	"compression":           true,
	"timeout":               true,
	"responseType":          true,
	"headers":               true,
	"ignore":                true,
	"body":                  true,
}

// toFields flattens a Request into the generic field map proxyrule.Proxy
// operates on.
func toFields(r *Request) map[string]interface{} {
	fields := make(map[string]interface{}, len(knownFields)+len(r.Extra))
	for k, v := range r.Extra {
		fields[k] = v
	}

	fields[proxyrule.FieldBase] = r.Base
	fields[proxyrule.FieldPath] = r.Path
	fields[proxyrule.FieldMethod] = r.Method
	fields[proxyrule.FieldAdapter] = r.Adapter
	fields[proxyrule.FieldVersion] = r.Version
	fields[proxyrule.FieldHost] = r.Host
	fields[proxyrule.FieldProtocol] = r.Protocol
	fields[proxyrule.FieldPort] = r.Port
	fields[proxyrule.FieldURL] = r.URL
	fields["withCredentials"] = r.WithCredentials
	fields["compression"] = r.Compression
	fields["timeout"] = r.Timeout
	fields["responseType"] = r.ResponseType
	fields["headers"] = headersToFields(r.Headers)
	fields["ignore"] = r.Ignore
	fields["body"] = r.Body

	return fields
}

// fromFields applies a proxy-merged field map back onto a copy of r.
func fromFields(r *Request, fields map[string]interface{}) *Request {
	out := *r
	out.Extra = make(map[string]interface{})

	for k, v := range fields {
		if !knownFields[k] {
			out.Extra[k] = v
			continue
		}
	}

	out.Base = stringOr(fields[proxyrule.FieldBase], r.Base)
	out.Path = stringOr(fields[proxyrule.FieldPath], r.Path)
	out.Method = stringOr(fields[proxyrule.FieldMethod], r.Method)
	out.Adapter = stringOr(fields[proxyrule.FieldAdapter], r.Adapter)
	out.Version = stringOr(fields[proxyrule.FieldVersion], r.Version)
	out.Host = stringOr(fields[proxyrule.FieldHost], r.Host)
	out.Protocol = stringOr(fields[proxyrule.FieldProtocol], r.Protocol)
	out.Port = stringOr(fields[proxyrule.FieldPort], r.Port)
	out.ResponseType = stringOr(fields["responseType"], r.ResponseType)

	if b, ok := fields["withCredentials"].(bool); ok {
		out.WithCredentials = b
	}
	if c, ok := fields["compression"].(bool); ok {
		out.Compression = c
	}
	if body, ok := fields["body"]; ok {
		out.Body = body
	}
	if h, ok := fields["headers"].(map[string]interface{}); ok {
		out.Headers = fieldsToHeaders(h)
	}
	if ig, ok := fields["ignore"].(map[string]interface{}); ok {
		out.Ignore = ig
	}

	return &out
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func headersToFields(h map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

func fieldsToHeaders(f map[string]interface{}) map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
