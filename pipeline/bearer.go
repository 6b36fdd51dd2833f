package pipeline

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v4"
	"github.com/paychex/datapipeline/datapipe"
)

// TokenStore holds the current bearer token shared between a
// Reauthenticate callback and the wrapper that injects it into requests.
// It exists because spec.md's Reauthenticate contract has no return value:
// refreshing credentials is a side effect the next attempt must be able to
// observe, so the store is the channel through which that happens.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore returns a TokenStore seeded with the given token (possibly
// empty).
func NewTokenStore(initial string) *TokenStore {
	return &TokenStore{token: initial}
}

// Token returns the current token.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// NewBearerReauthenticator returns a datapipe.Reauthenticate that calls
// refresh for a new token, validates it parses as a well-formed JWT, and
// stores it in store for the next attempt to pick up. A token that fails to
// parse is treated as a failed reauthentication.
func NewBearerReauthenticator(store *TokenStore, refresh func(ctx context.Context) (string, error)) datapipe.Reauthenticate {
	parser := jwt.NewParser()
	return func(ctx context.Context, _ *datapipe.Request) error {
		token, err := refresh(ctx)
		if err != nil {
			return err
		}

		if _, _, err := parser.ParseUnverified(token, jwt.MapClaims{}); err != nil {
			return err
		}

		store.set(token)
		return nil
	}
}

// WithBearerToken injects store's current token into the Authorization
// header on every attempt, so a reauthenticate callback that updates the
// store is visible on the retried call WithAuthentication issues.
func WithBearerToken(store *TokenStore) Wrapper {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, request *datapipe.Request) (*datapipe.Response, error) {
			token := store.Token()
			if token == "" {
				return next(ctx, request)
			}

			clone := request.Clone()
			if clone.Headers == nil {
				clone.Headers = map[string]string{}
			}
			clone.Headers["authorization"] = "Bearer " + token
			return next(ctx, clone)
		}
	}
}
