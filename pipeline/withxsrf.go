package pipeline

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/paychex/datapipeline/datapipe"
)

// TokenProvider resolves the XSRF token for a request, typically by reading
// a cookie (the spec's "cookieReader" default provider).
type TokenProvider func(ctx context.Context, request *datapipe.Request) (string, error)

// XSRFConfig configures WithXSRF. Cookie and Header default to
// "XSRF-TOKEN" and "x-xsrf-token" per spec.md §4.D. AppOrigin is the app's
// own location (scheme://host[:port]), used for the same-origin check.
type XSRFConfig struct {
	Cookie    string
	Header    string
	Hosts     []string
	Provider  TokenProvider
	AppOrigin string
}

func (c XSRFConfig) withDefaults() XSRFConfig {
	if c.Cookie == "" {
		c.Cookie = "XSRF-TOKEN"
	}
	if c.Header == "" {
		c.Header = "x-xsrf-token"
	}
	return c
}

// WithXSRF resolves the token via config.Provider and, if present and the
// target host is same-origin with AppOrigin (or matches one of the
// whitelisted Hosts on the same port+protocol), clones the request and
// inserts the token under headers[Header]. Otherwise it passes the request
// through unchanged.
func WithXSRF(config XSRFConfig) Wrapper {
	config = config.withDefaults()
	appURL, _ := url.Parse(config.AppOrigin)
	hostPatterns := compileHostPatterns(config.Hosts)

	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			if config.Provider == nil {
				return next(ctx, request)
			}

			token, err := config.Provider(ctx, request)
			if err != nil || token == "" {
				return next(ctx, request)
			}

			targetURL, err := url.Parse(request.URL)
			if err != nil || appURL == nil {
				return next(ctx, request)
			}

			if !sameOriginOrWhitelisted(targetURL, appURL, hostPatterns) {
				return next(ctx, request)
			}

			clone := request.Clone()
			if clone.Headers == nil {
				clone.Headers = map[string]string{}
			}
			clone.Headers[config.Header] = token
			return next(ctx, clone)
		}
	}
}

func compileHostPatterns(hosts []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(hosts))
	for _, h := range hosts {
		expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(h), `\*`, ".*") + "$"
		if re, err := regexp.Compile("(?i)" + expr); err == nil {
			patterns = append(patterns, re)
		}
	}
	return patterns
}

// sameOriginOrWhitelisted implements spec.md §4.D's XSRF scoping rule: the
// token is sent when the target is exactly same-origin with the app, or
// when the target shares the app's port and protocol and its host matches
// one of the configured wildcard patterns.
func sameOriginOrWhitelisted(target, app *url.URL, hostPatterns []*regexp.Regexp) bool {
	if target.Scheme == app.Scheme && target.Host == app.Host {
		return true
	}

	if target.Scheme != app.Scheme || target.Port() != app.Port() {
		return false
	}

	for _, re := range hostPatterns {
		if re.MatchString(target.Hostname()) {
			return true
		}
	}
	return false
}
