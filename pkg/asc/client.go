package asc

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rovenna/asc-go/pkg/auth"
)

// Client is an App Store Connect API client.
//
// A Client is safe for concurrent use by multiple goroutines. It maintains
// an internal HTTP connection pool and a shared token cache; independent
// requests never serialize on each other.
//
// Do not copy a Client after first use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cred       *auth.Credential
	tokens     *auth.TokenCache
	retrier    *Retrier
	logger     *slog.Logger
}

// New creates a new App Store Connect client for cred.
func New(cred *auth.Credential, opts ...Option) (*Client, error) {
	if cred == nil {
		return nil, errors.New("credential cannot be nil")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Validate options
	if options.baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	if options.timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if options.maxRetries < 0 {
		return nil, errors.New("maxRetries cannot be negative")
	}
	if options.retryWaitMin <= 0 {
		return nil, errors.New("retryWaitMin must be positive")
	}
	if options.retryWaitMax <= 0 {
		return nil, errors.New("retryWaitMax must be positive")
	}
	if options.retryWaitMin >= options.retryWaitMax {
		return nil, errors.New("retryWaitMin must be less than retryWaitMax")
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.timeout,
		}
	}

	var signerOpts []auth.SignerOption
	if options.tokenTTL > 0 {
		signerOpts = append(signerOpts, auth.WithTTL(options.tokenTTL))
	}
	if len(options.scope) > 0 {
		signerOpts = append(signerOpts, auth.WithScope(options.scope...))
	}
	signer := auth.NewSigner(signerOpts...)

	var cacheOpts []auth.CacheOption
	if options.safetyMargin > 0 {
		cacheOpts = append(cacheOpts, auth.WithSafetyMargin(options.safetyMargin))
	}

	logger := options.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    options.baseURL,
		userAgent:  options.userAgent,
		cred:       cred,
		tokens:     auth.NewTokenCache(signer, cacheOpts...),
		retrier:    newRetrier(options),
		logger:     logger,
	}, nil
}
