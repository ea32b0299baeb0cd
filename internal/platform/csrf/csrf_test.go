// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package csrf_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/internal/platform/constants"
	"github.com/vantran-dev/loft/internal/platform/csrf"
)

// issuePair returns a freshly issued token and its pairing cookie.
func issuePair(t *testing.T) (string, *http.Cookie) {
	t.Helper()

	recorder := httptest.NewRecorder()
	token, err := csrf.Issue(recorder)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.CSRFCookieName {
			return token, cookie
		}
	}
	t.Fatal("pairing cookie was not set")
	return "", nil
}

/*
TestIssue verifies the cookie half of the pair: HttpOnly, strict, and equal to
the body half.
*/
func TestIssue(t *testing.T) {
	token, cookie := issuePair(t)

	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

/*
TestValidate exercises the full double-submit matrix: matched pair passes,
every incomplete or mismatched combination fails with CSRF_MISMATCH.
*/
func TestValidate(t *testing.T) {
	token, cookie := issuePair(t)
	otherToken, _ := issuePair(t)

	testCases := []struct {
		name      string
		cookie    *http.Cookie
		bodyToken string
		wantErr   bool
	}{
		{"matched pair passes", cookie, token, false},
		{"missing cookie fails", nil, token, true},
		{"missing body token fails", cookie, "", true},
		{"mismatched pair fails", cookie, otherToken, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/api/v1/posts/x/comments", nil)
			if testCase.cookie != nil {
				request.AddCookie(testCase.cookie)
			}

			err := csrf.Validate(request, testCase.bodyToken)
			if !testCase.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "CSRF_MISMATCH", apperr.As(err).Code)
			assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
		})
	}
}
