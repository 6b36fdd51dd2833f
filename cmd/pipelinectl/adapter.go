package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/paychex/datapipeline/datapipe"
)

// httpAdapter dispatches a Request over the given client, demonstrating
// that DataLayer's core never opens a socket itself: the adapter function
// type is where transport lives, and this is one concrete instance of it.
func httpAdapter(client *http.Client) datapipe.Adapter {
	return func(ctx context.Context, request *datapipe.Request) *datapipe.Response {
		var bodyReader io.Reader
		if request.Body != nil {
			encoded, err := json.Marshal(request.Body)
			if err != nil {
				return &datapipe.Response{Status: 0, StatusText: err.Error(), Meta: datapipe.Meta{Error: true}}
			}
			bodyReader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, request.Method, request.URL, bodyReader)
		if err != nil {
			return &datapipe.Response{Status: 0, StatusText: err.Error(), Meta: datapipe.Meta{Error: true}}
		}
		for k, v := range request.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return &datapipe.Response{Status: 0, StatusText: err.Error(), Meta: datapipe.Meta{Error: true}}
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return &datapipe.Response{Status: 0, StatusText: err.Error(), Meta: datapipe.Meta{Error: true}}
		}

		var data interface{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &data); err != nil {
				data = string(raw)
			}
		}

		return &datapipe.Response{
			Data:       data,
			Status:     resp.StatusCode,
			StatusText: resp.Status,
			Meta:       datapipe.Meta{Error: resp.StatusCode >= 400},
		}
	}
}
