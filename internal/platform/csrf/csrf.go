// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package csrf implements the double-submit token guard for unauthenticated
write endpoints (public comment posting).

# Mechanism

A random value is set as an HttpOnly cookie and simultaneously handed to the
same-origin frontend (which mirrors it into a meta tag). A guarded request
must repeat the value in its JSON body; the guard only compares body token to
cookie token. Because the cookie is unreadable cross-origin while the body
token can only be supplied by same-origin script, a cross-origin form post
can never present a matching pair.

The guard is stateless: no credential store lookups, no server-side record.
*/
package csrf

import (
	"crypto/subtle"
	"net/http"

	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/internal/platform/constants"
	"github.com/vantran-dev/loft/internal/platform/respond"
	"github.com/vantran-dev/loft/internal/platform/sec"
)

// Issue generates a fresh CSRF value, sets the pairing cookie on the response,
// and returns the value for the frontend to mirror.
func Issue(writer http.ResponseWriter) (string, error) {
	token, err := sec.NewCSRFToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   constants.CSRFCookieMaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return token, nil
}

// Validate checks the double-submit pair: the token carried in the request
// body against the token carried in the pairing cookie.
//
// Both must be present and exactly equal, otherwise a CSRF_MISMATCH error is
// returned. Comparison is constant-time even though the value is random per
// pairing rather than a long-lived secret.
func Validate(request *http.Request, bodyToken string) error {
	cookie, err := request.Cookie(constants.CSRFCookieName)
	if err != nil || cookie.Value == "" || bodyToken == "" {
		return apperr.CsrfMismatch("CSRF token missing")
	}

	if subtle.ConstantTimeCompare([]byte(bodyToken), []byte(cookie.Value)) != 1 {
		return apperr.CsrfMismatch("CSRF token invalid")
	}

	return nil
}

// TokenHandler is the GET endpoint the SPA calls to obtain a CSRF pairing.
//
// The response body carries the token for the meta tag; the Set-Cookie header
// carries the HttpOnly half of the pair.
func TokenHandler(writer http.ResponseWriter, request *http.Request) {
	token, err := Issue(writer)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, map[string]string{"csrf_token": token})
}
