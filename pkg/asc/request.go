package asc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// request describes one logical API call. Constructed per call; stateless.
type request struct {
	method string
	path   string // joined to the client base URL
	url    string // absolute URL override, used for pagination links
	query  url.Values
	body   any
	// idempotent marks the call as safe to replay. GET and DELETE requests
	// set it; mutating calls must opt in explicitly so a retried POST never
	// creates a duplicate resource.
	idempotent bool
}

// do performs one logical call: attach a token, send, classify, retry per
// policy. On a first 401 the cached token is invalidated and the call
// replayed once with a freshly minted token; a second 401 is terminal.
func (c *Client) do(ctx context.Context, req *request, out any) error {
	refreshed := false
	return c.retrier.Do(ctx, req.idempotent, func() error {
		err := c.attempt(ctx, req, out)

		var authErr *AuthError
		if errors.As(err, &authErr) && authErr.Err == nil && !refreshed {
			// The server rejected a token we considered fresh: revoked key
			// or clock skew. Re-sign once and replay.
			refreshed = true
			c.tokens.Invalidate(c.cred.KeyID())
			c.logger.DebugContext(ctx, "token rejected, retrying with fresh token",
				slog.String("method", req.method), slog.String("path", req.path))
			err = c.attempt(ctx, req, out)
		}

		if err != nil && req.idempotent && c.retrier.shouldRetry(err) {
			c.logger.DebugContext(ctx, "request failed, will retry",
				slog.String("method", req.method), slog.String("path", req.path), slog.Any("error", err))
		}
		return err
	})
}

// attempt performs a single round trip.
func (c *Client) attempt(ctx context.Context, req *request, out any) error {
	token, err := c.tokens.Token(ctx, c.cred)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &TransportError{Err: ctxErr}
		}
		return &AuthError{Reason: "token signing failed", Err: err}
	}

	httpReq, err := c.buildRequest(ctx, req, token)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &DecodeError{Err: err}
		}
		return nil
	}

	return mapError(resp.StatusCode, body, resp.Header)
}

func (c *Client) buildRequest(ctx context.Context, req *request, token string) (*http.Request, error) {
	endpoint := req.url
	if endpoint == "" {
		endpoint = c.baseURL + req.path
		if len(req.query) > 0 {
			// Encode sorts keys, keeping query order deterministic.
			endpoint += "?" + req.query.Encode()
		}
	}

	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	return httpReq, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, &request{
		method:     http.MethodGet,
		path:       path,
		query:      query,
		idempotent: true,
	}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, &request{
		method: http.MethodPost,
		path:   path,
		body:   body,
	}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, &request{
		method:     http.MethodDelete,
		path:       path,
		idempotent: true,
	}, nil)
}
