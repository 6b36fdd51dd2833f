package proxyrule

import (
	"regexp"
)

// fields known to every request/response pair a Proxy rewrites. Match keys
// are not limited to these names: a Match entry may name any key of the
// field map, including extra keys an earlier rule merged in via Fields, and
// a key that is absent from the map is matched as the empty string.
const (
	FieldURL      = "url"
	FieldBase     = "base"
	FieldPath     = "path"
	FieldMethod   = "method"
	FieldAdapter  = "adapter"
	FieldVersion  = "version"
	FieldHost     = "host"
	FieldProtocol = "protocol"
	FieldPort     = "port"
	FieldOrigin   = "origin"
)

// Proxy holds an ordered, append-only list of Rules. Mutation (Use) and
// reads (Apply, URL) are serialized through a single-slot channel, the same
// guard idiom the teacher's circuit.Registry uses for its lookup table: a
// reader or writer takes the channel's sole token, does its work against a
// locally held slice reference, and puts the token back. Because the slice
// itself is never mutated in place (Use always allocates a new backing
// array), readers that raced a concurrent Use still see a consistent
// snapshot taken at the start of their call.
type Proxy struct {
	sync chan []Rule
}

// New returns an empty Proxy.
func New() *Proxy {
	p := &Proxy{sync: make(chan []Rule, 1)}
	p.sync <- nil
	return p
}

// Use appends rules to the proxy. Arguments may be individual Rules or
// []Rule slices, flattened one level, so that callers can mix
// p.Use(ruleA, []Rule{ruleB, ruleC}).
func (p *Proxy) Use(rules ...interface{}) {
	flat := flatten(rules)
	current := <-p.sync
	next := make([]Rule, 0, len(current)+len(flat))
	next = append(next, current...)
	next = append(next, flat...)
	p.sync <- next
}

func flatten(args []interface{}) []Rule {
	var out []Rule
	for _, a := range args {
		switch v := a.(type) {
		case Rule:
			out = append(out, v)
		case []Rule:
			out = append(out, v...)
		}
	}
	return out
}

func (p *Proxy) snapshot() []Rule {
	current := <-p.sync
	p.sync <- current
	return current
}

// Apply returns a new field map updated by every rule whose Match
// predicates all succeed against request, applied in insertion order.
// Matching is case-insensitive regex against the string representation of
// the named field on the request as it stands at the moment that rule is
// considered (i.e. a later rule sees the fields merged in by earlier
// matching rules). Rules without a Match always apply. The rule's Match map
// itself is never copied onto the result.
func (p *Proxy) Apply(request map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(request))
	for k, v := range request {
		result[k] = v
	}

	for _, rule := range p.snapshot() {
		if !matches(rule.Match, result) {
			continue
		}
		result = mergeFields(result, rule.Fields)
	}

	return result
}

func matches(match map[string]string, fields map[string]interface{}) bool {
	for field, pattern := range match {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false
		}
		value := stringField(fields[field])
		if !re.MatchString(value) {
			return false
		}
	}
	return true
}

func stringField(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return toString(v)
}
