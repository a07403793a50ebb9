package asc

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL is the production App Store Connect API endpoint.
const DefaultBaseURL = "https://api.appstoreconnect.apple.com/v1"

// Options configures the client behavior.
type Options struct {
	baseURL          string
	httpClient       *http.Client
	timeout          time.Duration
	userAgent        string
	maxRetries       int
	retryWaitMin     time.Duration
	retryWaitMax     time.Duration
	retryOnRateLimit bool
	tokenTTL         time.Duration
	safetyMargin     time.Duration
	scope            []string
	logger           *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		baseURL:          DefaultBaseURL,
		timeout:          30 * time.Second,
		maxRetries:       3,
		retryWaitMin:     1 * time.Second,
		retryWaitMax:     30 * time.Second,
		retryOnRateLimit: true,
	}
}

// Option configures the client.
type Option func(*Options)

// WithBaseURL overrides the API base URL. Useful for tests and for Apple's
// sandbox environments.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.baseURL = url
	}
}

// WithHTTPClient supplies a custom HTTP client. The client's own timeout
// is left untouched; WithTimeout is ignored when this option is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header on outbound requests.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.userAgent = ua
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
// Default is 3. Set to 0 to disable retries.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.maxRetries = n
	}
}

// WithRetryWait sets the min/max retry backoff duration.
// Default is 1s min, 30s max.
func WithRetryWait(min, max time.Duration) Option {
	return func(o *Options) {
		o.retryWaitMin = min
		o.retryWaitMax = max
	}
}

// WithoutRateLimitRetry disables automatic retry on rate limit errors.
// By default, rate limit errors are automatically retried after the
// Retry-After duration specified by the server.
func WithoutRateLimitRetry() Option {
	return func(o *Options) {
		o.retryOnRateLimit = false
	}
}

// WithTokenTTL sets the lifetime of minted tokens. Values above the
// vendor's 20 minute maximum fall back to the default.
func WithTokenTTL(d time.Duration) Option {
	return func(o *Options) {
		o.tokenTTL = d
	}
}

// WithTokenSafetyMargin sets how long before expiry a cached token stops
// being reused. Default is 60s.
func WithTokenSafetyMargin(d time.Duration) Option {
	return func(o *Options) {
		o.safetyMargin = d
	}
}

// WithTokenScope restricts minted tokens to the given endpoint patterns.
func WithTokenScope(scope ...string) Option {
	return func(o *Options) {
		o.scope = scope
	}
}

// WithLogger attaches a structured logger. Retries and token refreshes are
// logged at debug level. By default the client logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
