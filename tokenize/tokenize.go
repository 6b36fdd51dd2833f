// Package tokenize formats request URLs from a `:name` template and a
// parameter map, the way DataLayer composes a route's path with its
// caller-supplied parameters before handing it to an Adapter.
package tokenize

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var tokenRegexp = regexp.MustCompile(`:(\w+)`)

// Tokenize replaces `:name` tokens in template with the matching entries of
// params and appends whatever remains in params as a querystring.
//
// A token is replaced only when its name is present as a key in params; the
// key is then removed from the residual map. Tokens without a match are left
// in the output untouched. Tokenize never mutates params.
func Tokenize(template string, params map[string]interface{}) string {
	residual := make(map[string]interface{}, len(params))
	for k, v := range params {
		residual[k] = v
	}

	out := tokenRegexp.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[1:]
		v, ok := residual[name]
		if !ok {
			return tok
		}
		delete(residual, name)
		return stringify(v)
	})

	qs := buildQuery(residual)
	if qs == "" {
		return out
	}

	sep := "?"
	if strings.Contains(out, "?") {
		sep = "&"
	}
	return out + sep + qs
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}

// buildQuery renders the residual parameter map as a querystring, honoring
// the falsy-value rules: false -> key=false, nil -> key (no '='). Array
// values repeat the key once per element, in slice order.
//
// Map key order is not semantically meaningful in Go the way object-key
// insertion order is in the source language, so keys are sorted for
// deterministic output; this never affects the worked examples in spec.md
// §8, which each leave at most one residual key.
func buildQuery(params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := params[k]
		switch vv := v.(type) {
		case []interface{}:
			for _, item := range vv {
				parts = append(parts, encodePair(k, item))
			}
		case []string:
			for _, item := range vv {
				parts = append(parts, encodePair(k, item))
			}
		default:
			parts = append(parts, encodePair(k, v))
		}
	}
	return strings.Join(parts, "&")
}

func encodePair(key string, v interface{}) string {
	if v == nil {
		return url.QueryEscape(key)
	}
	return url.QueryEscape(key) + "=" + url.QueryEscape(stringify(v))
}
