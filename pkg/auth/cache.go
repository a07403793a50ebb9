package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultSafetyMargin is how long before nominal expiry a cached token is
// considered stale. It absorbs clock skew and in-flight request latency.
const DefaultSafetyMargin = 60 * time.Second

// TokenIssuer mints a signed token for a credential. *Signer is the
// production implementation.
type TokenIssuer interface {
	Token(cred *Credential) (string, time.Time, error)
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenCache wraps a TokenIssuer and reuses each credential's token until
// it is within the safety margin of expiry.
//
// The cache is keyed by key ID. Concurrent callers hitting a cold or stale
// entry for the same credential trigger exactly one signing operation;
// callers for distinct credentials never block each other. Safe for
// concurrent use by multiple goroutines.
type TokenCache struct {
	issuer TokenIssuer
	margin time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]cachedToken
	group   singleflight.Group
}

// CacheOption configures a TokenCache.
type CacheOption func(*TokenCache)

// WithSafetyMargin sets how long before expiry a token stops being served
// from cache. Must be positive and smaller than the issuer's TTL.
func WithSafetyMargin(d time.Duration) CacheOption {
	return func(c *TokenCache) {
		c.margin = d
	}
}

// NewTokenCache creates a cache over issuer with the default safety margin.
func NewTokenCache(issuer TokenIssuer, opts ...CacheOption) *TokenCache {
	c := &TokenCache{
		issuer:  issuer,
		margin:  DefaultSafetyMargin,
		now:     time.Now,
		entries: make(map[string]cachedToken),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.margin <= 0 {
		c.margin = DefaultSafetyMargin
	}
	return c
}

// Token returns a valid token for cred, reusing the cached one while it
// stays outside the safety margin and re-signing otherwise. Concurrent
// refreshes of the same credential collapse into a single signing
// operation; ctx cancellation abandons the wait without tearing the cache.
func (c *TokenCache) Token(ctx context.Context, cred *Credential) (string, error) {
	if cred == nil {
		return "", errors.New("credential cannot be nil")
	}

	if token, ok := c.cached(cred.KeyID()); ok {
		return token, nil
	}

	ch := c.group.DoChan(cred.KeyID(), func() (any, error) {
		// A caller that queued behind an in-flight refresh may find the
		// freshly installed token already valid.
		if token, ok := c.cached(cred.KeyID()); ok {
			return token, nil
		}

		token, expiresAt, err := c.issuer.Token(cred)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[cred.KeyID()] = cachedToken{token: token, expiresAt: expiresAt}
		c.mu.Unlock()

		return token, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Invalidate drops the cached token for keyID, forcing the next Token call
// to re-sign. Used after the server rejects a token (revoked key, clock
// skew).
func (c *TokenCache) Invalidate(keyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, keyID)
}

// Expiry returns the expiry time of the cached token for keyID, or zero
// time if none is cached.
func (c *TokenCache) Expiry(keyID string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[keyID].expiresAt
}

func (c *TokenCache) cached(keyID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[keyID]
	if !ok {
		return "", false
	}
	if !c.now().Add(c.margin).Before(entry.expiresAt) {
		return "", false
	}
	return entry.token, true
}
