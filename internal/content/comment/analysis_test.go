// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vantran-dev/loft/internal/content/comment"
)

/*
TestAnalyze_RejectsInappropriateLanguage verifies the hard rejection path for
abusive content.
*/
func TestAnalyze_RejectsInappropriateLanguage(t *testing.T) {
	verdict := comment.Analyze("this is fucking terrible, kill yourself", "anon")

	assert.Equal(t, comment.DecisionReject, verdict.Decision)
	assert.Contains(t, verdict.Flags, "inappropriate_content")
	assert.Negative(t, verdict.Score)
}

/*
TestAnalyze_RejectsSuspiciousLinks verifies that spam-bait URLs reject the
comment even when the surrounding text is polite.
*/
func TestAnalyze_RejectsSuspiciousLinks(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"url shortener", "great article! check https://bit.ly/3xYzAbc"},
		{"crypto bait", "send funds via https://example.com/bitcoin wallet"},
		{"throwaway tld", "more info at http://prizes.winner.tk/claim"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			verdict := comment.Analyze(testCase.body, "anon")
			assert.Equal(t, comment.DecisionReject, verdict.Decision)
			assert.Contains(t, verdict.Flags, "suspicious_link")
		})
	}
}

/*
TestAnalyze_ApprovesConstructiveFeedback verifies that praise paired with a
concrete suggestion scores well past the approval threshold.
*/
func TestAnalyze_ApprovesConstructiveFeedback(t *testing.T) {
	body := "Great work on this post! One suggestion: you could improve the " +
		"performance section with a concrete benchmark."

	verdict := comment.Analyze(body, "reader")

	assert.Equal(t, comment.DecisionApprove, verdict.Decision)
	assert.GreaterOrEqual(t, verdict.Score, 3.0)
	assert.Contains(t, verdict.Reasons, "Contains constructive or positive content")
}

/*
TestAnalyze_ShortCommentGoesToReview verifies that a tiny comment with no
signal lands in the review queue instead of auto-publishing.
*/
func TestAnalyze_ShortCommentGoesToReview(t *testing.T) {
	verdict := comment.Analyze("ok", "anon")

	assert.Equal(t, comment.DecisionReview, verdict.Decision)
}

/*
TestAnalyze_NeutralCommentApprovesByDefault verifies the permissive default
for ordinary comments that trip no flags.
*/
func TestAnalyze_NeutralCommentApprovesByDefault(t *testing.T) {
	verdict := comment.Analyze("I read this during my commute this morning and it reminded me of an old project.", "anon")

	assert.Equal(t, comment.DecisionApprove, verdict.Decision)
}

/*
TestExtractLinks verifies URL extraction from comment bodies.
*/
func TestExtractLinks(t *testing.T) {
	links := comment.ExtractLinks("see https://a.example/x and http://b.example/y for details")
	assert.Equal(t, []string{"https://a.example/x", "http://b.example/y"}, links)

	assert.Empty(t, comment.ExtractLinks("no links here"))
}

/*
TestStatusFor verifies the decision-to-status mapping.
*/
func TestStatusFor(t *testing.T) {
	assert.Equal(t, comment.StatusApproved, comment.StatusFor(comment.DecisionApprove))
	assert.Equal(t, comment.StatusRejected, comment.StatusFor(comment.DecisionReject))
	assert.Equal(t, comment.StatusPending, comment.StatusFor(comment.DecisionReview))
}
