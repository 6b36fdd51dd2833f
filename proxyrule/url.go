package proxyrule

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var nonAlpha = regexp.MustCompile(`[^a-zA-Z]`)
var multiSlash = regexp.MustCompile(`/{2,}`)

// URL builds a URL from a base and one or more path fragments, joined with
// "/". It is equivalent to the source's `proxy.url(base, ...pathParts)`
// call form.
func (p *Proxy) URL(base string, pathParts ...string) (string, error) {
	synth := map[string]interface{}{
		FieldBase: base,
		FieldPath: strings.Join(pathParts, "/"),
	}
	return p.buildURL(synth, normalizePath(strings.Join(pathParts, "/")))
}

// URLRequest builds a URL from an existing request's port, protocol, base
// and path fields. It is equivalent to the source's `proxy.url(requestObject)`
// call form. As with the (base, ...pathParts) form, base only participates
// in rule matching; the composed path is request.path alone.
func (p *Proxy) URLRequest(request map[string]interface{}) (string, error) {
	synth := map[string]interface{}{
		FieldBase: request[FieldBase],
		FieldPath: request[FieldPath],
	}
	if v, ok := request[FieldProtocol]; ok {
		synth[FieldProtocol] = v
	}
	if v, ok := request[FieldPort]; ok {
		synth[FieldPort] = v
	}
	path := normalizePath(toString(request[FieldPath]))
	return p.buildURL(synth, path)
}

func (p *Proxy) buildURL(synth map[string]interface{}, path string) (string, error) {
	effective := p.Apply(synth)

	protocol := stringField(effective[FieldProtocol])
	host := stringField(effective[FieldHost])
	port := stringField(effective[FieldPort])

	if origin, ok := effective[FieldOrigin]; ok && stringField(origin) != "" {
		u, err := url.Parse(stringField(origin))
		if err != nil {
			return "", &InvalidOriginError{Origin: stringField(origin), Cause: err}
		}
		// origin overrides protocol/host/port unconditionally (spec.md §9
		// Open Question (b): "the source replaces them unconditionally").
		protocol = u.Scheme
		host = u.Hostname()
		port = u.Port()
	}

	return formatURL(protocol, host, port, path), nil
}

func normalizePath(p string) string {
	p = multiSlash.ReplaceAllString(p, "/")
	return strings.TrimLeft(p, "/")
}

func formatURL(protocol, host, port, path string) string {
	var pathSeg string
	if path != "" {
		pathSeg = "/" + path
	}

	if host == "" {
		// relative URL: protocol segment is omitted entirely.
		return pathSeg
	}

	protoSeg := formatProtocol(protocol)
	portSeg := formatPort(port)

	return protoSeg + host + portSeg + pathSeg
}

func formatProtocol(protocol string) string {
	clean := nonAlpha.ReplaceAllString(protocol, "")
	switch clean {
	case "":
		return "//"
	case "file":
		return "file:///"
	default:
		return clean + "://"
	}
}

func formatPort(port string) string {
	if port == "" || port == "80" {
		return ""
	}
	if _, err := strconv.Atoi(port); err != nil {
		return ""
	}
	return ":" + port
}
