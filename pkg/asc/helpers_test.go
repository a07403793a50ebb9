package asc

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/rovenna/asc-go/pkg/auth"
)

func testCredential(t *testing.T) *auth.Credential {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	cred, err := auth.NewCredential("issuer-1", "KEY1", key)
	if err != nil {
		t.Fatalf("create credential: %v", err)
	}
	return cred
}

// newTestClient builds a client against serverURL with fast retry waits
// and a recording sleep so retry tests finish instantly.
func newTestClient(t *testing.T, serverURL string, opts ...Option) (*Client, *[]time.Duration) {
	t.Helper()

	opts = append([]Option{
		WithBaseURL(serverURL),
		WithRetryWait(time.Millisecond, 10*time.Millisecond),
	}, opts...)

	c, err := New(testCredential(t), opts...)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	waits := &[]time.Duration{}
	c.retrier.sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return c, waits
}
