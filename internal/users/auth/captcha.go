// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// # Captcha Verification

// CaptchaVerifier validates a human-verification challenge response.
//
// Login calls this before touching credentials, so automated credential
// stuffing is stopped ahead of any password comparison work.
type CaptchaVerifier interface {
	// VerifyCaptcha reports whether the challenge response is genuine.
	// A nil error with false means the challenge failed; a non-nil error
	// means the verification service itself could not be consulted.
	VerifyCaptcha(ctx context.Context, responseToken, remoteIP string) (bool, error)
}

// hCaptchaEndpoint is the hCaptcha siteverify API.
const hCaptchaEndpoint = "https://api.hcaptcha.com/siteverify"

// HCaptchaVerifier verifies challenge responses against the hCaptcha API.
type HCaptchaVerifier struct {
	secret     string
	httpClient *http.Client
}

// NewHCaptchaVerifier creates a verifier with the account's shared secret.
func NewHCaptchaVerifier(secret string) *HCaptchaVerifier {
	return &HCaptchaVerifier{
		secret: secret,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// VerifyCaptcha implements [CaptchaVerifier] via the siteverify endpoint.
func (verifier *HCaptchaVerifier) VerifyCaptcha(ctx context.Context, responseToken, remoteIP string) (bool, error) {
	if responseToken == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", verifier.secret)
	form.Set("response", responseToken)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, hCaptchaEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("auth_captcha_request_build_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := verifier.httpClient.Do(request)
	if err != nil {
		return false, fmt.Errorf("auth_captcha_request_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	var payload struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("auth_captcha_decode_failed: %w", err)
	}

	return payload.Success, nil
}

// AllowAllVerifier accepts every challenge response. Development only:
// wired when no captcha secret is configured.
type AllowAllVerifier struct{}

// VerifyCaptcha implements [CaptchaVerifier] by always succeeding.
func (AllowAllVerifier) VerifyCaptcha(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}
