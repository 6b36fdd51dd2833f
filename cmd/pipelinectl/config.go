package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// config is loaded entirely from the environment, prefixed PIPELINECTL_
// (e.g. PIPELINECTL_BASE_URL). It mirrors the teacher's config.Config in
// shape — one flat struct with a tag per field — but sourced via
// kelseyhightower/envconfig instead of flag+yaml, since a CLI this small
// has no file-based config to merge.
type config struct {
	BaseURL      string        `envconfig:"base_url" default:"https://example.invalid"`
	Timeout      time.Duration `envconfig:"timeout" default:"5s"`
	RetryCount   int           `envconfig:"retry_count" default:"3"`
	RetryBase    time.Duration `envconfig:"retry_base" default:"100ms"`
	CacheTTL     time.Duration `envconfig:"cache_ttl" default:"30s"`
	BearerToken  string        `envconfig:"bearer_token"`
	XSRFCookie   string        `envconfig:"xsrf_cookie" default:"XSRF-TOKEN"`
	XSRFToken    string        `envconfig:"xsrf_token"`
	LogLevel     string        `envconfig:"log_level" default:"info"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process("pipelinectl", &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}
