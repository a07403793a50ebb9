package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audience is the fixed audience claim App Store Connect expects.
const Audience = "appstoreconnect-v1"

// DefaultTTL is the default token lifetime. Apple rejects tokens valid for
// more than MaxTTL, so the default stays comfortably inside that bound.
const (
	DefaultTTL = 20 * time.Minute
	MaxTTL     = 20 * time.Minute
)

// Signer mints signed App Store Connect tokens for a Credential.
//
// Every call to Token produces a fresh set of claims; claims are never
// mutated in place. A Signer performs no network or disk I/O.
type Signer struct {
	ttl      time.Duration
	audience string
	scope    []string
	now      func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithTTL sets the token lifetime. Values above MaxTTL are rejected by
// NewSigner.
func WithTTL(d time.Duration) SignerOption {
	return func(s *Signer) {
		s.ttl = d
	}
}

// WithScope restricts minted tokens to the given endpoint patterns, e.g.
// "GET /v1/apps". By default tokens carry no scope claim and grant the
// key's full access.
func WithScope(scope ...string) SignerOption {
	return func(s *Signer) {
		s.scope = scope
	}
}

// NewSigner creates a Signer with the default 20 minute token lifetime.
func NewSigner(opts ...SignerOption) *Signer {
	s := &Signer{
		ttl:      DefaultTTL,
		audience: Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl <= 0 || s.ttl > MaxTTL {
		s.ttl = DefaultTTL
	}
	return s
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Token signs a fresh token for cred and returns it together with its
// expiry time. The token is a compact JWS: base64url-encoded header
// (alg, kid, typ), claims (iss, iat, exp, aud, optional scope) and
// signature, per the credential's algorithm.
func (s *Signer) Token(cred *Credential) (string, time.Time, error) {
	if cred == nil {
		return "", time.Time{}, errors.New("credential cannot be nil")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"iss": cred.IssuerID(),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
		"aud": s.audience,
	}
	if len(s.scope) > 0 {
		claims["scope"] = s.scope
	}

	token := jwt.NewWithClaims(signingMethod(cred.Algorithm()), claims)
	token.Header["kid"] = cred.KeyID()

	signed, err := token.SignedString(cred.PrivateKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func signingMethod(alg Algorithm) jwt.SigningMethod {
	switch alg {
	case RS256:
		return jwt.SigningMethodRS256
	default:
		return jwt.SigningMethodES256
	}
}
