package auth

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
)

// ParsePrivateKey decodes a PEM-encoded private key. It accepts PKCS#8
// (the format of Apple-issued .p8 key files), SEC1 EC and PKCS#1 RSA
// encodings.
func ParsePrivateKey(data []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, errors.New("PKCS#8 key does not support signing")
		}
		return signer, nil
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, errors.New("unsupported private key encoding")
}
