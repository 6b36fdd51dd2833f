package pipeline

import (
	"context"
	"testing"

	"github.com/paychex/datapipeline/datapipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainAppliesWrappersOutermostFirst(t *testing.T) {
	var order []string

	mark := func(name string) Wrapper {
		return func(next Fetch) Fetch {
			return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
				order = append(order, name+":enter")
				resp, err := next(ctx, request)
				order = append(order, name+":exit")
				return resp, err
			}
		}
	}

	base := func(context.Context, *datapipe.Request) (*datapipe.Response, error) {
		order = append(order, "base")
		return &datapipe.Response{Status: 200}, nil
	}

	fetch := Chain(base, mark("outer"), mark("inner"))
	_, err := fetch(context.Background(), &datapipe.Request{})
	require.NoError(t, err)

	assert.Equal(t, []string{"outer:enter", "inner:enter", "base", "inner:exit", "outer:exit"}, order)
}

func TestChainWithNoWrappersIsBase(t *testing.T) {
	base := func(context.Context, *datapipe.Request) (*datapipe.Response, error) {
		return &datapipe.Response{Status: 204}, nil
	}
	fetch := Chain(base)
	resp, err := fetch(context.Background(), &datapipe.Request{})
	require.NoError(t, err)
	assert.Equal(t, 204, resp.Status)
}
