// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vantran-dev/loft/internal/platform/ctxutil"
	"github.com/vantran-dev/loft/internal/platform/sec"
)

// TokenVerifier authenticates a bearer token and returns the live principal.
//
// Satisfied by [sec.TokenService]; kept as an interface so gate tests can
// substitute a stub verifier without a credential store.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*sec.Principal, error)
}

// # Identity Gates
//
// Three layers with distinct responsibilities:
//
//   - Authenticate: best-effort identity extraction. Never rejects; requests
//     without a valid token simply proceed anonymous.
//   - RequireAuth: 401 for anonymous requests.
//   - RequireAdmin: 401 for anonymous, 403 for authenticated non-admins. The
//     distinction is deliberate: 401 means "we don't know who you are",
//     403 means "we know exactly who you are, and the answer is no".

// Authenticate extracts and verifies the Authorization bearer token.
//
// Every verification failure kind (malformed, unknown principal, bad
// signature, expired, too old) leaves the request anonymous in exactly the
// same way; the specific kind is only written to the structured log. Downstream
// gates then answer with one uniform 401, so a caller probing the API cannot
// distinguish a deleted account from a rotated secret.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the bearer token, if any
			tokenString := bearerToken(request)
			if tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Verify against the principal's CURRENT signing secret
			principal, err := verifier.Verify(request.Context(), tokenString)
			if err != nil {
				logger := ctxutil.GetLogger(request.Context())
				logger.WarnContext(request.Context(), "token_rejected",
					slog.String("kind", rejectionKind(err)),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Attach the verified identity for downstream handlers
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetPrincipal(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admin requests with 403.
//
// The admin flag is read from the principal resolved at verification time,
// which reflects the credential store's current value. Revoking a user's
// admin bit therefore locks them out of admin routes on their very next
// request, with no re-login involved.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			principal := ctxutil.GetPrincipal(request.Context())

			// Anonymous first: identity is unknown, so 401, not 403.
			if principal == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !principal.IsAdmin {
				writeError(writer, http.StatusForbidden, "FORBIDDEN", "Admin privileges required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(request *http.Request) string {
	header := request.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}

// rejectionKind maps a verification error to its log label.
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, sec.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, sec.ErrPrincipalNotFound):
		return "principal_not_found"
	case errors.Is(err, sec.ErrTokenTooOld):
		return "too_old"
	case errors.Is(err, sec.ErrInvalidOrExpired):
		return "invalid_or_expired"
	default:
		return "internal"
	}
}
