// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran-dev/loft/internal/content/comment"
	"github.com/vantran-dev/loft/internal/platform/constants"
	"github.com/vantran-dev/loft/internal/platform/respond"
)

// allowAllLimiter is a ratelimit.Store that never throttles.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(context.Context, string) bool { return true }

// newCommentRouter mounts the public comment routes the way server.go does,
// so URL params resolve through chi.
func newCommentRouter(repo *memoryCommentRepo, service *comment.Service) chi.Router {
	handler := comment.NewHandler(service, allowAllLimiter{})

	router := chi.NewRouter()
	router.Mount("/posts/{slug}/comments", handler.Routes())
	return router
}

// postComment drives the submit endpoint with an explicit cookie/body token pair.
func postComment(t *testing.T, router chi.Router, cookieToken, bodyToken string) *httptest.ResponseRecorder {
	t.Helper()

	payload := map[string]string{
		"author":     "van",
		"content":    constructiveBody,
		"csrf_token": bodyToken,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/posts/first-post/comments", strings.NewReader(string(body)))
	request.Header.Set("Content-Type", "application/json")
	if cookieToken != "" {
		request.AddCookie(&http.Cookie{Name: constants.CSRFCookieName, Value: cookieToken})
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestSubmit_CSRFMismatchStoresNothing verifies that a failed double-submit
check rejects with 403 CSRF_MISMATCH before the comment reaches the store.
*/
func TestSubmit_CSRFMismatchStoresNothing(t *testing.T) {
	testCases := []struct {
		name        string
		cookieToken string
		bodyToken   string
	}{
		{name: "mismatched pair", cookieToken: "cookie-half", bodyToken: "forged-half"},
		{name: "missing cookie", cookieToken: "", bodyToken: "body-half"},
		{name: "missing body token", cookieToken: "cookie-half", bodyToken: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repo, service := newCommentFixture()
			router := newCommentRouter(repo, service)

			recorder := postComment(t, router, testCase.cookieToken, testCase.bodyToken)

			assert.Equal(t, http.StatusForbidden, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "CSRF_MISMATCH", envelope.Code)

			// The guard must short-circuit before any persistence.
			assert.Empty(t, repo.comments)
		})
	}
}

/*
TestSubmit_MatchingPairIsStored proves the guard is the only obstacle: the
same request with an agreeing token pair creates the comment.
*/
func TestSubmit_MatchingPairIsStored(t *testing.T) {
	repo, service := newCommentFixture()
	router := newCommentRouter(repo, service)

	recorder := postComment(t, router, "pairing-token", "pairing-token")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Len(t, repo.comments, 1)
}
