// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package requestutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	requestutil "github.com/vantran-dev/loft/internal/platform/request"
)

/*
TestSafeRedirectPath verifies open-redirect hardening on the login redirect.
*/
func TestSafeRedirectPath(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back", "", "/"},
		{"plain path honored", "/posts/hello-world", "/posts/hello-world"},
		{"root honored", "/", "/"},
		{"path with query honored", "/posts?page=2", "/posts?page=2"},
		{"protocol-relative rejected", "//evil.example/phish", "/"},
		{"absolute url rejected", "https://evil.example/", "/"},
		{"smuggled scheme rejected", "/redirect?to=https://evil.example", "/"},
		{"backslash trick rejected", "/\\evil.example", "/"},
		{"relative without slash rejected", "posts/hello", "/"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, requestutil.SafeRedirectPath(testCase.raw, "/"))
		})
	}
}
