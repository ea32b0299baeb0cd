// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post_test

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

	"github.com/vantran-dev/loft/internal/content/post"
	"github.com/vantran-dev/loft/internal/platform/ctxutil"
	"github.com/vantran-dev/loft/internal/platform/respond"
	"github.com/vantran-dev/loft/internal/platform/sec"
)

// stubLimiter is a ratelimit.Store with a fixed verdict.
type stubLimiter struct{ allow bool }

func (limiter stubLimiter) Allow(context.Context, string) bool { return limiter.allow }

func newPostRouter(repo *memoryPostRepo, limiter stubLimiter) chi.Router {
	handler := post.NewHandler(post.NewService(repo), limiter)

	router := chi.NewRouter()
	router.Mount("/posts", handler.Routes())
	return router
}

// postArticle drives the create endpoint, optionally as an authenticated author.
func postArticle(t *testing.T, router chi.Router, principal *sec.Principal) *httptest.ResponseRecorder {
	t.Helper()

	payload := map[string]any{
		"title": "Deploying Loft",
		"body":  "Notes from the first production rollout.",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(string(body)))
	request.Header.Set("Content-Type", "application/json")
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCreate_RequiresAuthentication verifies the article create endpoint sits
on the public feed path behind the authentication gate: anonymous callers
get 401 and nothing is stored, while any authenticated author may draft.
*/
func TestCreate_RequiresAuthentication(t *testing.T) {
	t.Run("anonymous is rejected", func(t *testing.T) {
		repo := newMemoryPostRepo()
		router := newPostRouter(repo, stubLimiter{allow: true})

		recorder := postArticle(t, router, nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var envelope respond.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "UNAUTHORIZED", envelope.Code)
		assert.Empty(t, repo.posts)
	})

	t.Run("authenticated non-admin may draft", func(t *testing.T) {
		repo := newMemoryPostRepo()
		router := newPostRouter(repo, stubLimiter{allow: true})

		author := &sec.Principal{ID: "user-1", Username: "van", IsAdmin: false}
		recorder := postArticle(t, router, author)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		require.Len(t, repo.posts, 1)
		for _, article := range repo.posts {
			assert.Equal(t, "user-1", article.AuthorID)
		}
	})
}

/*
TestCreate_WriteBudgetApplies verifies the create endpoint honors the
injected write limiter even for authenticated authors.
*/
func TestCreate_WriteBudgetApplies(t *testing.T) {
	repo := newMemoryPostRepo()
	router := newPostRouter(repo, stubLimiter{allow: false})

	author := &sec.Principal{ID: "user-1", Username: "van"}
	recorder := postArticle(t, router, author)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "RATE_LIMITED", envelope.Code)
	assert.Empty(t, repo.posts)
}
