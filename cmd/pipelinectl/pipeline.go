package main

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/paychex/datapipeline/datapipe"
	"github.com/paychex/datapipeline/pipeline"
	"github.com/paychex/datapipeline/proxyrule"
	"github.com/sirupsen/logrus"
)

// demoPipeline bundles the DataLayer used to build Requests with the fully
// wrapped Fetch used to dispatch them, so newFetchCommand only has to call
// two methods.
type demoPipeline struct {
	layer *datapipe.DataLayer
	fetch pipeline.Fetch
}

// newDemoPipeline wires a Proxy, a DataLayer around a real net/http
// Adapter, and the pipeline wrappers into one Fetch via pipeline.Chain,
// outermost first: signal, headers, cache, XSRF, authentication, bearer
// token, retry, diagnostics, then the DataLayer's Fetch. No connectivity
// wrapper is installed.
func newDemoPipeline(cfg config, logger *logrus.Logger) (*demoPipeline, error) {
	proxy := proxyrule.New()
	proxy.Use(proxyrule.New(map[string]interface{}{
		proxyrule.FieldHost:     hostOf(cfg.BaseURL),
		proxyrule.FieldProtocol: schemeOf(cfg.BaseURL),
	}, nil))

	client := &http.Client{Timeout: cfg.Timeout}
	layer := datapipe.New(proxy, httpAdapter(client), logger)

	tokenStore := pipeline.NewTokenStore(cfg.BearerToken)
	reauth := pipeline.NewBearerReauthenticator(tokenStore, func(ctx context.Context) (string, error) {
		return cfg.BearerToken, nil
	})

	cache := newMemoryCache(cfg.CacheTTL)
	retry := pipeline.Falloff(cfg.RetryCount, cfg.RetryBase)
	gate := pipeline.NewGate()

	base := pipeline.Fetch(func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
		return layer.Fetch(ctx, request)
	})

	fetch := pipeline.Chain(base,
		pipeline.WithSignal(gate),
		pipeline.WithHeaders(map[string]string{"x-request-id": uuid.NewString()}),
		pipeline.WithCache(cache),
		pipeline.WithXSRF(pipeline.XSRFConfig{
			Cookie:    cfg.XSRFCookie,
			AppOrigin: cfg.BaseURL,
			Provider: func(ctx context.Context, _ *datapipe.Request) (string, error) {
				return cfg.XSRFToken, nil
			},
		}),
		pipeline.WithAuthentication(reauth),
		pipeline.WithBearerToken(tokenStore),
		pipeline.WithRetry(retry),
		pipeline.WithDiagnostics(func(ctx context.Context, request *datapipe.Request) {
			logger.WithField("url", request.URL).Warn("pipelinectl: adapter-level failure observed")
		}),
	)

	return &demoPipeline{layer: layer, fetch: fetch}, nil
}

func pipelineDataDefinition(cfg config, path, method string) datapipe.DataDefinition {
	return datapipe.DataDefinition{
		Base:   hostOf(cfg.BaseURL),
		Path:   path,
		Method: method,
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func schemeOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme
}
