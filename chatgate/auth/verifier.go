package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"chatgate/chatgate/types"

	"github.com/patrickmn/go-cache"
)

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (types.User, error)
}

// UserInfoVerifier treats access tokens as opaque and asks the provider's
// userinfo endpoint about them, remembering good answers for ttl.
type UserInfoVerifier struct {
	provider *Provider
	cache    *cache.Cache
}

func NewUserInfoVerifier(provider *Provider, ttl time.Duration) *UserInfoVerifier {
	return &UserInfoVerifier{
		provider: provider,
		cache:    cache.New(ttl, 2*ttl),
	}
}

func (v *UserInfoVerifier) Verify(ctx context.Context, token string) (types.User, error) {
	if token == "" {
		return types.User{}, ErrInvalidToken
	}
	key := tokenKey(token)
	if x, found := v.cache.Get(key); found {
		return x.(types.User), nil
	}
	user, err := v.provider.GetUser(ctx, token)
	if err != nil {
		return types.User{}, err
	}
	v.cache.Set(key, user, cache.DefaultExpiration)
	return user, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
