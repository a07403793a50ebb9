package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/rovenna/asc-go/pkg/asc"
)

// TestGetBaseURL tests URL resolution logic
func TestGetBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		flagURL  string
		envURL   string
		expected string
	}{
		{
			name:     "flag takes precedence",
			flagURL:  "http://flag.example",
			envURL:   "http://env.example",
			expected: "http://flag.example",
		},
		{
			name:     "env when no flag",
			envURL:   "http://env.example",
			expected: "http://env.example",
		},
		{
			name:     "default when neither",
			expected: asc.DefaultBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := apiURL
			defer func() { apiURL = previous }()

			apiURL = tt.flagURL
			if tt.envURL != "" {
				t.Setenv("ASC_API_URL", tt.envURL)
			} else {
				t.Setenv("ASC_API_URL", "")
			}

			if result := getBaseURL(); result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

// TestCredentialResolution tests flag/env resolution for identity fields
func TestCredentialResolution(t *testing.T) {
	previousIssuer, previousKey := issuerID, keyID
	defer func() { issuerID, keyID = previousIssuer, previousKey }()

	issuerID, keyID = "", ""
	t.Setenv("ASC_ISSUER_ID", "env-issuer")
	t.Setenv("ASC_KEY_ID", "env-key")

	if got := getIssuerID(); got != "env-issuer" {
		t.Errorf("expected env issuer, got %q", got)
	}
	if got := getKeyID(); got != "env-key" {
		t.Errorf("expected env key ID, got %q", got)
	}

	issuerID, keyID = "flag-issuer", "flag-key"
	if got := getIssuerID(); got != "flag-issuer" {
		t.Errorf("expected flag issuer, got %q", got)
	}
	if got := getKeyID(); got != "flag-key" {
		t.Errorf("expected flag key ID, got %q", got)
	}
}

// TestLoadCredential tests key file loading
func TestLoadCredential(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	keyFile := filepath.Join(t.TempDir(), "AuthKey_TEST.p8")
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(keyFile, pemData, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		issuer  string
		key     string
		path    string
		wantErr bool
	}{
		{
			name:   "valid credential",
			issuer: "issuer-1",
			key:    "TEST",
			path:   keyFile,
		},
		{
			name:    "missing key path",
			issuer:  "issuer-1",
			key:     "TEST",
			wantErr: true,
		},
		{
			name:    "missing issuer",
			key:     "TEST",
			path:    keyFile,
			wantErr: true,
		},
		{
			name:    "unreadable key file",
			issuer:  "issuer-1",
			key:     "TEST",
			path:    filepath.Join(t.TempDir(), "missing.p8"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previousIssuer, previousKey, previousPath := issuerID, keyID, keyPath
			defer func() { issuerID, keyID, keyPath = previousIssuer, previousKey, previousPath }()

			t.Setenv("ASC_ISSUER_ID", "")
			t.Setenv("ASC_KEY_ID", "")
			t.Setenv("ASC_PRIVATE_KEY", "")
			issuerID, keyID, keyPath = tt.issuer, tt.key, tt.path

			cred, err := loadCredential()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cred.KeyID() != tt.key {
				t.Errorf("expected key ID %q, got %q", tt.key, cred.KeyID())
			}
		})
	}
}

// TestCommandTree verifies the command wiring
func TestCommandTree(t *testing.T) {
	want := map[string]bool{"token": false, "bundle-id": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q command to be registered", name)
		}
	}

	sub := map[string]bool{"list": false, "get": false, "register": false, "delete": false, "capabilities": false, "profiles": false}
	for _, cmd := range bundleIDCmd.Commands() {
		if _, ok := sub[cmd.Name()]; ok {
			sub[cmd.Name()] = true
		}
	}
	for name, found := range sub {
		if !found {
			t.Errorf("expected bundle-id %q subcommand to be registered", name)
		}
	}
}
