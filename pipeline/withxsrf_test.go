package pipeline

import (
	"context"
	"testing"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenProvider(token string) TokenProvider {
	return func(context.Context, *datapipe.Request) (string, error) { return token, nil }
}

func TestWithXSRFSameOriginInsertsToken(t *testing.T) {
	fetch := WithXSRF(XSRFConfig{
		AppOrigin: "https://app.example.com",
		Provider:  tokenProvider("secret-token"),
	})(echoFetch)

	req := &datapipe.Request{DataDefinition: datapipe.DataDefinition{Headers: map[string]string{}}, URL: "https://app.example.com/clients"}
	resp, err := fetch(context.Background(), req)
	require.NoError(t, err)

	headers := resp.Data.(map[string]string)
	assert.Equal(t, "secret-token", headers["x-xsrf-token"])
}

func TestWithXSRFCrossOriginWithoutWhitelistPassesThrough(t *testing.T) {
	fetch := WithXSRF(XSRFConfig{
		AppOrigin: "https://app.example.com",
		Provider:  tokenProvider("secret-token"),
	})(echoFetch)

	req := &datapipe.Request{DataDefinition: datapipe.DataDefinition{Headers: map[string]string{}}, URL: "https://evil.example.com/clients"}
	resp, err := fetch(context.Background(), req)
	require.NoError(t, err)

	headers := resp.Data.(map[string]string)
	_, present := headers["x-xsrf-token"]
	assert.False(t, present)
}

func TestWithXSRFWhitelistedHostOnSamePortAndProtocol(t *testing.T) {
	fetch := WithXSRF(XSRFConfig{
		AppOrigin: "https://app.example.com",
		Hosts:     []string{"*.example.com"},
		Provider:  tokenProvider("secret-token"),
	})(echoFetch)

	req := &datapipe.Request{DataDefinition: datapipe.DataDefinition{Headers: map[string]string{}}, URL: "https://api.example.com/clients"}
	resp, err := fetch(context.Background(), req)
	require.NoError(t, err)

	headers := resp.Data.(map[string]string)
	assert.Equal(t, "secret-token", headers["x-xsrf-token"])
}

func TestWithXSRFNoTokenPassesThrough(t *testing.T) {
	fetch := WithXSRF(XSRFConfig{
		AppOrigin: "https://app.example.com",
		Provider:  tokenProvider(""),
	})(echoFetch)

	req := &datapipe.Request{DataDefinition: datapipe.DataDefinition{Headers: map[string]string{}}, URL: "https://app.example.com/clients"}
	resp, err := fetch(context.Background(), req)
	require.NoError(t, err)

	headers := resp.Data.(map[string]string)
	_, present := headers["x-xsrf-token"]
	assert.False(t, present)
}
