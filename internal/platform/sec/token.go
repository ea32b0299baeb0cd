// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. Unlike a conventional setup with one server-wide signing
// key, every principal carries its OWN signing secret: verification re-fetches
// the current secret from storage on every request, so rotating or clearing a
// user's secret instantly invalidates all of that user's outstanding tokens —
// no revocation list required.
package sec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Verification Failure Kinds
//
// These sentinels classify why a bearer token was rejected. They exist for
// structured logging and tests only; the HTTP boundary collapses all of them
// into a single 401 response so callers cannot probe for account existence.
var (
	// ErrMalformedToken marks a token that could not be decoded or that is
	// missing structurally required claims.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrPrincipalNotFound marks a token whose claimed principal no longer
	// exists in the credential store.
	ErrPrincipalNotFound = errors.New("sec: principal not found")

	// ErrInvalidOrExpired marks a signature mismatch against the principal's
	// current secret, or a token past its stated expiry.
	ErrInvalidOrExpired = errors.New("sec: invalid or expired token")

	// ErrTokenTooOld marks a token that passed signature and expiry checks
	// but whose issued-at exceeds the absolute freshness ceiling.
	ErrTokenTooOld = errors.New("sec: token too old")
)

// Principal is the minimal public identity attached to verified requests.
//
// Its fields always come from the credential store at verification time,
// never from token claims, so privilege or profile changes take effect on
// in-flight tokens immediately.
type Principal struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// AuthClaims is the payload embedded inside a session token.
//
// The embedded identity claims are informational; [TokenService.Verify]
// deliberately ignores them in favor of the store's current values.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID   string `json:"uid"`
	Email    string `json:"eml"`
	Username string `json:"unm"`
	IsAdmin  bool   `json:"adm"`
}

// SecretResolver fetches a principal's CURRENT signing secret plus its public
// fields from the credential store.
//
// # Why an interface?
//
// The resolver is the only storage dependency of token verification. Keeping
// it an interface lets the auth repository satisfy it in production while
// tests substitute an in-memory map.
type SecretResolver interface {
	// ResolveSigningSecret returns the current secret and public identity of
	// the principal, or [ErrPrincipalNotFound] if no such principal exists.
	ResolveSigningSecret(ctx context.Context, principalID string) (secret string, principal *Principal, err error)
}

// TokenService issues and verifies per-principal HS256 session tokens.
type TokenService struct {
	resolver SecretResolver
	issuer   string

	// FreshnessCeiling is the absolute maximum token age measured from the
	// issued-at claim, independent of the stated expiry.
	FreshnessCeiling time.Duration

	// Now is the clock source; overridable in tests. Nil means time.Now.
	Now func() time.Time
}

// NewTokenService creates a TokenService backed by the given secret resolver.
func NewTokenService(resolver SecretResolver, issuer string, freshnessCeiling time.Duration) *TokenService {
	return &TokenService{
		resolver:         resolver,
		issuer:           issuer,
		FreshnessCeiling: freshnessCeiling,
	}
}

// Issue creates a signed session token for an already-authenticated principal.
//
// # Parameters
//   - principal: The authenticated identity to encode.
//   - secret: The principal's current signing secret.
//   - timeToLive: Token lifetime, chosen by the session policy from the
//     caller's consent state at login time.
//
// No server-side session state is created; the token is the only artifact.
func (service *TokenService) Issue(principal *Principal, secret string, timeToLive time.Duration) (string, error) {
	if secret == "" {
		// A principal without a signing secret cannot authenticate at all.
		return "", fmt.Errorf("sec: principal %s has no signing secret", principal.ID)
	}

	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   principal.ID,
		Email:    principal.Email,
		Username: principal.Username,
		IsAdmin:  principal.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify authenticates a bearer token and returns the live principal.
//
// # Flow
//
//  1. Decode WITHOUT verifying to extract the claimed principal ID.
//  2. Fetch that principal's current secret from the credential store.
//  3. Re-verify the signature against the freshly fetched secret (never a
//     cached or token-embedded one) and validate the stated expiry.
//  4. Require issued-at and expires-at to be structurally present.
//  5. Enforce the absolute freshness ceiling on the token's age.
//  6. Return the principal's CURRENT store fields, not the claims.
//
// The ordering matters: a secret rotation or account deletion takes effect on
// the very next request, and admin-flag changes never wait for a re-login.
func (service *TokenService) Verify(ctx context.Context, tokenString string) (*Principal, error) {

	// ── 1. Unverified decode ─────────────────────────────────────────────
	unverified := &AuthClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, unverified); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if unverified.UserID == "" {
		return nil, fmt.Errorf("%w: missing principal id claim", ErrMalformedToken)
	}

	// ── 2. Current secret lookup ─────────────────────────────────────────
	secret, principal, err := service.resolver.ResolveSigningSecret(ctx, unverified.UserID)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("sec: secret resolution failed: %w", err)
	}
	if secret == "" {
		// Migration edge: an account created without a secret cannot verify.
		return nil, fmt.Errorf("%w: principal has no signing secret", ErrInvalidOrExpired)
	}

	// ── 3. Signature + expiry verification ───────────────────────────────
	claims := &AuthClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrExpired, err)
	}

	// ── 4. Structural claim requirements ─────────────────────────────────
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing iat or exp claim", ErrMalformedToken)
	}

	// ── 5. Absolute freshness ceiling ────────────────────────────────────
	// Independent of the token's stated expiry: bounds the usable life of a
	// leaked token even if its exp was set far in the future.
	tokenAge := service.now().Sub(claims.IssuedAt.Time)
	if tokenAge > service.FreshnessCeiling {
		return nil, fmt.Errorf("%w: issued %s ago", ErrTokenTooOld, tokenAge)
	}

	// ── 6. Live identity ─────────────────────────────────────────────────
	return principal, nil
}

// now returns the injected clock or the wall clock.
func (service *TokenService) now() time.Time {
	if service.Now != nil {
		return service.Now()
	}
	return time.Now()
}
