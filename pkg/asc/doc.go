// Package asc provides a resilient client for the App Store Connect API.
//
// Every call attaches a short-lived signed bearer token from the shared
// token cache (see package auth), handles the vendor's pagination envelope,
// retries transient failures with exponential backoff, and maps vendor
// error payloads into a typed error taxonomy:
//   - Automatic retry with exponential backoff and jitter
//   - Retry-After-aware rate limit handling
//   - One-shot token refresh on server-side 401
//   - Lazy pagination over data/links envelopes
//   - Type-safe error handling
//
// # Basic Usage
//
// Create a client and perform operations:
//
//	key, err := auth.ParsePrivateKey(pemBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cred, err := auth.NewCredential(issuerID, keyID, key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := asc.New(cred,
//	    asc.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bundle, err := c.RegisterBundleID(ctx, "com.example.app", "Example", asc.PlatformIOS)
//	if err != nil {
//	    if asc.IsRateLimitError(err) {
//	        log.Printf("Rate limited: %v", err)
//	        return
//	    }
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Registered: %s\n", bundle.ID)
//
// # Error Handling
//
// The client provides custom error types with helper functions:
//
//	bundle, err := c.BundleID(ctx, id)
//	if err != nil {
//	    switch {
//	    case asc.IsAuthError(err):
//	        // Handle authentication failure
//	    case asc.IsRateLimitError(err):
//	        // Handle rate limiting
//	    case asc.IsNotFound(err):
//	        // Handle missing resource
//	    default:
//	        // Handle other errors
//	    }
//	}
//
// # Pagination
//
// List endpoints return a Pager that fetches pages on demand:
//
//	pager := c.BundleIDs()
//	for {
//	    bundle, ok, err := pager.Next(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(bundle.Attributes.Identifier)
//	}
package asc
