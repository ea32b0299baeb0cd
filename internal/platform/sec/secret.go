// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// # Random Material

const (
	// SigningSecretLength is the byte length of a per-user signing secret.
	// 64 random bytes (128 hex chars) comfortably exceeds the HS256 block size.
	SigningSecretLength = 64

	// CSRFTokenLength is the byte length of the CSRF pairing value.
	CSRFTokenLength = 32
)

// NewSigningSecret generates a fresh per-user token signing secret.
//
// Every account carries its own secret; rotating it invalidates all tokens
// previously signed with the old value without any server-side session table.
func NewSigningSecret() (string, error) {
	return randomHex(SigningSecretLength)
}

// NewCSRFToken generates a random value for the CSRF cookie/body pair.
func NewCSRFToken() (string, error) {
	return randomHex(CSRFTokenLength)
}

// randomHex returns n cryptographically random bytes hex-encoded.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
