// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package auth implements the user identity layer of the Loft platform.

It defines the core domain entity (User) and the logic for registration,
credential verification, and the per-user signing secret lifecycle.

# Architecture

This layer is the "Truth" of the system. Every user row carries its own token
signing secret; token verification resolves that secret on every request, so
the row IS the session authority — rotating or clearing the secret revokes all
of the user's outstanding tokens at once.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered member of the Loft platform.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	SigningSecret string    `json:"-"` // Per-user token signing key. Never serialized.
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio,omitempty"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
	FieldLogin       = "login"
	FieldCaptcha     = "captcha_token"
	FieldRedirect    = "redirect"
	FieldToken       = "token"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
	FieldMessage     = "message"
)
