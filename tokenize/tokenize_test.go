package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeScenarios(t *testing.T) {
	for _, ti := range []struct {
		name     string
		template string
		params   map[string]interface{}
		expected string
	}{{
		"single token",
		"/clients/:id/apps",
		map[string]interface{}{"id": "0012391"},
		"/clients/0012391/apps",
	}, {
		"token plus array residual",
		"/users/:guid/clients",
		map[string]interface{}{
			"guid":  "00123456789123456789",
			"order": []interface{}{"displayName", "branch"},
		},
		"/users/00123456789123456789/clients?order=displayName&order=branch",
	}, {
		"missing token left in place",
		"/clients/:id",
		map[string]interface{}{},
		"/clients/:id",
	}, {
		"existing querystring gets ampersand separator",
		"/clients?x=1",
		map[string]interface{}{"y": "2"},
		"/clients?x=1&y=2",
	}} {
		t.Run(ti.name, func(t *testing.T) {
			assert.Equal(t, ti.expected, Tokenize(ti.template, ti.params))
		})
	}
}

func TestTokenizeFalsyValues(t *testing.T) {
	assert.Equal(t, "/p?a", Tokenize("/p", map[string]interface{}{"a": nil}))
	assert.Equal(t, "/p?a=false", Tokenize("/p", map[string]interface{}{"a": false}))
	assert.Equal(t, "/p", Tokenize("/p", map[string]interface{}{}))
}

func TestTokenizeDoesNotMutateCaller(t *testing.T) {
	params := map[string]interface{}{"id": "1", "extra": "2"}
	Tokenize("/x/:id", params)
	assert.Len(t, params, 2, "caller's map must be untouched")
	assert.Equal(t, "1", params["id"])
}

func TestTokenizeGreedyWordBoundary(t *testing.T) {
	// :id ends at the "/" that follows it: only word chars belong to a token.
	assert.Equal(t, "/x/1/apps", Tokenize("/x/:id/apps", map[string]interface{}{"id": "1"}))
}
