package datapipe

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the structured error kinds the core raises, per
// spec.md §7.
type ErrorKind string

const (
	KindInvalidDefinition ErrorKind = "InvalidDefinition"
	KindInvalidRequest    ErrorKind = "InvalidRequest"
	KindAdapterNotFound   ErrorKind = "AdapterNotFound"
	KindInvalidOrigin     ErrorKind = "InvalidOrigin"
	KindHTTPError         ErrorKind = "HTTPError"
	KindInvalidCache      ErrorKind = "InvalidCache"
	KindInvalidRetry      ErrorKind = "InvalidRetry"
	KindInvalidReauth     ErrorKind = "InvalidReauth"
	KindInvalidDiagnostics ErrorKind = "InvalidDiagnostics"
)

// PipelineError is the error type the DataLayer raises for invalid
// definitions and requests, missing adapters, invalid proxy origins and
// error-bearing responses. It always carries enough context (Request, Response when
// available, Severity) for a downstream handler to decide retry, display,
// or logging, per spec.md §7's user-visible-behavior requirement.
type PipelineError struct {
	Kind     ErrorKind
	Severity Severity
	Message  string
	Request  *Request
	Response *Response
	cause    error
}

func (e *PipelineError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause via github.com/pkg/errors' Cause
// convention, so stdlib errors.Is/errors.As still traverse it.
func (e *PipelineError) Unwrap() error { return e.cause }

func newError(kind ErrorKind, severity Severity, message string) *PipelineError {
	return &PipelineError{Kind: kind, Severity: severity, Message: message}
}

func wrapError(kind ErrorKind, severity Severity, cause error, message string) *PipelineError {
	return &PipelineError{
		Kind:     kind,
		Severity: severity,
		Message:  message,
		cause:    errors.Wrap(cause, message),
	}
}

// WithRequest attaches the offending request to e and returns e.
func (e *PipelineError) WithRequest(r *Request) *PipelineError {
	e.Request = r
	return e
}

// WithResponse attaches the offending response to e and returns e.
func (e *PipelineError) WithResponse(r *Response) *PipelineError {
	e.Response = r
	return e
}

// Cause returns the root cause via pkg/errors, for callers that prefer that
// convention over errors.Unwrap.
func (e *PipelineError) Cause() error {
	if e.cause == nil {
		return nil
	}
	return errors.Cause(e.cause)
}
