// Package proxyrule implements the ordered rewrite-rule engine that the
// DataLayer consults to rewrite request routing (URL pieces, headers,
// version, arbitrary fields) and to compose the final backend URL.
//
// A Rule operates on a generic field map rather than a concrete Go struct,
// the way eskip's Filter carries a typed Name plus an open Args slice: the
// set of fields a DataDefinition/Request may carry is open-ended (proxy
// rules can introduce arbitrary keys), so proxyrule never imports the
// concrete request type from package datapipe; it only knows about maps.
package proxyrule

// Rule is one entry of an ordered Proxy. Match holds field-name -> regex
// pairs; Fields holds everything the rule contributes to a matching
// request, merged in per the semantics of Proxy.Apply. Match is metadata
// only: it is consulted to decide whether a rule applies and is never
// itself copied onto a request.
type Rule struct {
	Match  map[string]string
	Fields map[string]interface{}
}

// New builds a Rule from a set of fields and an optional match predicate.
func New(fields map[string]interface{}, match map[string]string) Rule {
	return Rule{Match: match, Fields: fields}
}
