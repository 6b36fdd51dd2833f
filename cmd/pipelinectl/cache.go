package main

import (
	"context"
	"fmt"
	"time"

	"github.com/paychex/datapipeline/datapipe"
	gocache "github.com/patrickmn/go-cache"
)

// memoryCache adapts github.com/patrickmn/go-cache to datapipe.Cache,
// keying entries by method+URL. Get never returns an error per the Cache
// contract: a missing or expired entry simply comes back as a nil
// response, which WithCache treats as a miss.
type memoryCache struct {
	store *gocache.Cache
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *memoryCache) Get(_ context.Context, request *datapipe.Request) (*datapipe.Response, error) {
	value, found := c.store.Get(cacheKey(request))
	if !found {
		return nil, nil
	}
	response, ok := value.(*datapipe.Response)
	if !ok {
		return nil, nil
	}
	return response, nil
}

func (c *memoryCache) Set(_ context.Context, request *datapipe.Request, response *datapipe.Response) error {
	c.store.SetDefault(cacheKey(request), response)
	return nil
}

func cacheKey(request *datapipe.Request) string {
	return fmt.Sprintf("%s %s", request.Method, request.URL)
}
