package datapipe

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/paychex/datapipeline/proxyrule"
	"github.com/paychex/datapipeline/tokenize"
	"github.com/sirupsen/logrus"
)

const defaultAdapterName = "default"

var defaultHeaders = map[string]string{
	"accept": "application/json, text/plain, */*",
}

// DataLayer turns DataDefinitions into Requests, dispatches Requests to
// named Adapters, and validates Responses.
type DataLayer struct {
	proxy *proxyrule.Proxy
	log   *logrus.Logger

	mu       sync.RWMutex
	adapters map[string]Adapter
}

// New builds a DataLayer around proxy, registering defaultAdapter under the
// name "default". log may be nil, in which case logrus.StandardLogger() is
// used.
func New(proxy *proxyrule.Proxy, defaultAdapter Adapter, log *logrus.Logger) *DataLayer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &DataLayer{
		proxy:    proxy,
		log:      log,
		adapters: make(map[string]Adapter),
	}
	d.SetAdapter(defaultAdapterName, defaultAdapter)
	return d
}

// SetAdapter registers or overwrites the named adapter. Safe to call
// concurrently with Fetch.
func (d *DataLayer) SetAdapter(name string, adapter Adapter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adapters[name] = adapter
}

func (d *DataLayer) adapter(name string) (Adapter, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.adapters[name]
	return a, ok && a != nil
}

// CreateRequest builds a frozen Request from definition, merging in proxy
// rules and resolving the URL via params, per spec.md §4.C.
func (d *DataLayer) CreateRequest(definition DataDefinition, params map[string]interface{}, body interface{}) (*Request, error) {
	if definition.Path == "" {
		return nil, newError(KindInvalidDefinition, SeverityFatal,
			"DataDefinition.Path must be a non-empty string")
	}

	req := seedDefaults(definition, body)

	fields := toFields(req)
	fields = d.proxy.Apply(fields)
	req = fromFields(req, fields)

	url, err := d.proxy.URLRequest(toFields(req))
	if err != nil {
		return nil, mapProxyError(err)
	}

	if params == nil {
		params = map[string]interface{}{}
	}
	req.URL = tokenize.Tokenize(url, params)
	req.frozen = true

	return req, nil
}

func seedDefaults(definition DataDefinition, body interface{}) *Request {
	req := &Request{DataDefinition: definition}

	if req.Method == "" {
		req.Method = "GET"
	}
	if req.Adapter == "" {
		req.Adapter = defaultAdapterName
	}
	if req.Ignore == nil {
		req.Ignore = map[string]interface{}{}
	}
	req.Headers = cloneStringMap(req.Headers)
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	for k, v := range defaultHeaders {
		if _, present := req.Headers[k]; !present {
			req.Headers[k] = v
		}
	}
	if body != nil {
		req.Body = body
	}
	req.Ignore = cloneAnyMap(req.Ignore)

	return req
}

func mapProxyError(err error) error {
	var invalidOrigin *proxyrule.InvalidOriginError
	if stderrors.As(err, &invalidOrigin) {
		return wrapError(KindInvalidOrigin, SeverityError, err, invalidOrigin.Error())
	}
	return err
}

// Fetch validates request, dispatches it to the registered adapter, and
// maps an error-bearing Response to an HTTPError.
func (d *DataLayer) Fetch(ctx context.Context, request *Request) (*Response, error) {
	if request == nil || request.URL == "" || request.Method == "" || request.Adapter == "" {
		return nil, newError(KindInvalidRequest, SeverityFatal,
			"request must have a non-empty url, method, and adapter").WithRequest(request)
	}

	adapter, ok := d.adapter(request.Adapter)
	if !ok {
		return nil, newError(KindAdapterNotFound, SeverityFatal,
			"no adapter registered under name \""+request.Adapter+"\"").WithRequest(request)
	}

	d.log.WithFields(logrus.Fields{
		"url":     request.URL,
		"method":  request.Method,
		"adapter": request.Adapter,
	}).Debug("datapipe: dispatching request")

	response := adapter(ctx, request)

	if response.IsErrorBearing() {
		message := response.StatusText
		if message == "" {
			message = httpStatusMessage(response.Status)
		}
		d.log.WithFields(logrus.Fields{
			"url":    request.URL,
			"status": response.Status,
		}).Warn("datapipe: adapter returned an error-bearing response")
		return nil, newError(KindHTTPError, SeverityError, message).
			WithRequest(request).WithResponse(response)
	}

	return response, nil
}
