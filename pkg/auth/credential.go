package auth

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"fmt"
)

// Algorithm identifies the JWT signing algorithm for a credential.
type Algorithm string

// Supported signing algorithms.
const (
	ES256 Algorithm = "ES256"
	RS256 Algorithm = "RS256"
)

const minRSABits = 2048

// Credential is the immutable identity used to sign API tokens: the issuer
// ID and key ID from App Store Connect plus the matching private key.
//
// A Credential is created once at startup and never mutated. It is safe to
// share a single Credential across goroutines.
type Credential struct {
	issuerID string
	keyID    string
	alg      Algorithm
	key      crypto.Signer
}

// NewCredential validates the key material and derives the signing
// algorithm from the key type: ECDSA P-256 keys sign with ES256, RSA keys
// of at least 2048 bits sign with RS256. Any other key is rejected.
func NewCredential(issuerID, keyID string, key crypto.Signer) (*Credential, error) {
	if issuerID == "" {
		return nil, errors.New("issuerID cannot be empty")
	}
	if keyID == "" {
		return nil, errors.New("keyID cannot be empty")
	}
	if key == nil {
		return nil, errors.New("private key cannot be nil")
	}

	alg, err := algorithmForKey(key)
	if err != nil {
		return nil, err
	}

	return &Credential{
		issuerID: issuerID,
		keyID:    keyID,
		alg:      alg,
		key:      key,
	}, nil
}

func algorithmForKey(key crypto.Signer) (Algorithm, error) {
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return "", fmt.Errorf("ES256 requires a P-256 key, got %s", k.Curve.Params().Name)
		}
		return ES256, nil
	case *rsa.PrivateKey:
		if k.N.BitLen() < minRSABits {
			return "", fmt.Errorf("RS256 requires at least %d-bit keys, got %d", minRSABits, k.N.BitLen())
		}
		return RS256, nil
	default:
		return "", fmt.Errorf("unsupported private key type %T", key)
	}
}

// IssuerID returns the App Store Connect issuer ID.
func (c *Credential) IssuerID() string { return c.issuerID }

// KeyID returns the App Store Connect key ID carried in token headers.
func (c *Credential) KeyID() string { return c.keyID }

// Algorithm returns the signing algorithm derived from the key type.
func (c *Credential) Algorithm() Algorithm { return c.alg }

// PrivateKey returns the private signing key.
func (c *Credential) PrivateKey() crypto.Signer { return c.key }
