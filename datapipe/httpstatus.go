package datapipe

// httpStatusMessages maps a status code to its standard reason phrase, used
// by DataLayer.Fetch to build a human-readable HTTPError message when the
// adapter's Response carries no StatusText of its own. Scoped to the status
// families spec.md §4.C enumerates (informational, success, redirection,
// the specific 4xx set, and the specific 5xx set).
var httpStatusMessages = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	103: "Early Hints",

	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",

	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	422: "Unprocessable Entity",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	511: "Network Authentication Required",
}

// httpStatusMessage returns the reason phrase for status, or the spec's
// fallback sentinel when the code is not in the known table.
func httpStatusMessage(status int) string {
	if msg, ok := httpStatusMessages[status]; ok {
		return msg
	}
	return "Unknown HTTP Error"
}
