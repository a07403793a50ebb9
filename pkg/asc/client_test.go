package asc

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestNewClient tests the New() constructor with various scenarios
func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		nilCred  bool
		opts     []Option
		wantErr  bool
		errMsg   string
		validate func(t *testing.T, c *Client)
	}{
		{
			name: "valid client with default options",
			validate: func(t *testing.T, c *Client) {
				if c == nil {
					t.Fatal("client is nil")
				}
				if c.baseURL != DefaultBaseURL {
					t.Errorf("expected base URL %q, got %q", DefaultBaseURL, c.baseURL)
				}
				if c.httpClient.Timeout != 30*time.Second {
					t.Errorf("expected timeout 30s, got %v", c.httpClient.Timeout)
				}
				if c.retrier.maxRetries != 3 {
					t.Errorf("expected maxRetries 3, got %d", c.retrier.maxRetries)
				}
				if !c.retrier.retryOnRateLimit {
					t.Error("expected retryOnRateLimit true")
				}
			},
		},
		{
			name:    "nil credential returns error",
			nilCred: true,
			wantErr: true,
			errMsg:  "credential cannot be nil",
		},
		{
			name: "client with custom base URL",
			opts: []Option{WithBaseURL("https://sandbox.example.com/v1")},
			validate: func(t *testing.T, c *Client) {
				if c.baseURL != "https://sandbox.example.com/v1" {
					t.Errorf("unexpected base URL %q", c.baseURL)
				}
			},
		},
		{
			name:    "empty base URL returns error",
			opts:    []Option{WithBaseURL("")},
			wantErr: true,
			errMsg:  "baseURL cannot be empty",
		},
		{
			name:    "zero timeout returns error",
			opts:    []Option{WithTimeout(0)},
			wantErr: true,
			errMsg:  "timeout must be positive",
		},
		{
			name:    "negative maxRetries returns error",
			opts:    []Option{WithMaxRetries(-1)},
			wantErr: true,
			errMsg:  "maxRetries cannot be negative",
		},
		{
			name:    "zero retryWaitMin returns error",
			opts:    []Option{WithRetryWait(0, time.Second)},
			wantErr: true,
			errMsg:  "retryWaitMin must be positive",
		},
		{
			name:    "inverted retry wait returns error",
			opts:    []Option{WithRetryWait(time.Minute, time.Second)},
			wantErr: true,
			errMsg:  "retryWaitMin must be less than retryWaitMax",
		},
		{
			name: "custom HTTP client is used as-is",
			opts: []Option{WithHTTPClient(&http.Client{Timeout: 5 * time.Second})},
			validate: func(t *testing.T, c *Client) {
				if c.httpClient.Timeout != 5*time.Second {
					t.Errorf("expected custom client timeout, got %v", c.httpClient.Timeout)
				}
			},
		},
		{
			name: "user agent and logger options",
			opts: []Option{
				WithUserAgent("asc-test/1.0"),
				WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
			},
			validate: func(t *testing.T, c *Client) {
				if c.userAgent != "asc-test/1.0" {
					t.Errorf("unexpected user agent %q", c.userAgent)
				}
				if c.logger == nil {
					t.Error("expected logger to be set")
				}
			},
		},
		{
			name: "without rate limit retry",
			opts: []Option{WithoutRateLimitRetry()},
			validate: func(t *testing.T, c *Client) {
				if c.retrier.retryOnRateLimit {
					t.Error("expected retryOnRateLimit false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := testCredential(t)
			if tt.nilCred {
				cred = nil
			}

			c, err := New(cred, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, c)
			}
		})
	}
}
