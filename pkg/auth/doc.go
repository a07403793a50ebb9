// Package auth implements the App Store Connect token lifecycle.
//
// App Store Connect gates every API call behind short-lived signed JWTs.
// This package covers the full lifecycle of those tokens:
//   - Credential: immutable issuer/key identity plus private key material
//   - Signer: mints fresh ES256 or RS256 tokens with bounded lifetimes
//   - TokenCache: reuses tokens until near expiry, with single-flight
//     regeneration under concurrent access
//
// # Basic Usage
//
// Load a credential and mint tokens through a cache:
//
//	key, err := auth.ParsePrivateKey(pemBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cred, err := auth.NewCredential("57246542-96fe-1a63-e053-0824d011072a", "2X9R4HXF34", key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache := auth.NewTokenCache(auth.NewSigner())
//	token, err := cache.Token(ctx, cred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req.Header.Set("Authorization", "Bearer "+token)
//
// A TokenCache is safe for concurrent use by multiple goroutines. Distinct
// credentials refresh independently; concurrent refreshes of the same
// credential collapse into a single signing operation.
package auth
