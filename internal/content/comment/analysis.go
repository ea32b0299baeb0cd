// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment

import (
	"regexp"
	"strings"
)

// # Auto-Moderation
//
// Incoming comments are scored before persistence: clearly abusive or spammy
// content is rejected outright, constructive content is approved, and the
// ambiguous middle lands in the review queue. The scorer is pure string
// analysis with no external calls, so it adds no latency worth measuring.

// Decision is the moderation outcome for a new comment.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionReview  Decision = "review"
)

// Analysis is the detailed outcome of scoring one comment.
type Analysis struct {
	Decision Decision
	Score    float64
	Reasons  []string
	Flags    []string
}

// Keywords indicating constructive engagement with the article.
var constructiveKeywords = []string{
	"suggestion", "suggest", "improve", "improvement", "better", "enhance", "consider",
	"recommend", "recommendation", "helpful", "useful", "valuable", "insight",
	"feedback", "constructive", "well done", "good job", "excellent", "great work",
	"nice work", "appreciate", "thank you", "thanks", "grateful", "learned",
	"understand", "clear", "practical", "effective",
}

// Phrases that indicate positive but constructive feedback.
var constructivePhrases = []string{
	"could be", "might want", "perhaps", "maybe", "consider", "think about",
	"have you thought", "what about", "another way", "alternative", "instead",
	"rather than", "you could", "you might", "you should", "i suggest",
	"my suggestion", "one suggestion", "small suggestion", "quick suggestion",
}

// Patterns whose presence rejects the comment immediately.
var inappropriatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(fuck|shit|cunt|bitch|asshole)\b`),
	regexp.MustCompile(`(?i)\b(kill yourself|die|death threat)\b`),
	regexp.MustCompile(`(?i)\b(racist|sexist|homophobic|transphobic)\b`),
	regexp.MustCompile(`(?i)\b(spam|scam|phishing|malware|virus)\b`),
}

// Patterns marking links as spam bait.
var suspiciousLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(bit\.ly|tinyurl|goo\.gl|tiny\.cc|is\.gd|cli\.gs|qr\.ae)\b`),
	regexp.MustCompile(`(?i)\b(free|win|prize|lottery|casino|gambling|viagra|porn|sex)\b.*\.(com|net|org|info)`),
	regexp.MustCompile(`(?i)\b(whatsapp|telegram|discord)\b.*join`),
	regexp.MustCompile(`(?i)\b(buy|purchase|cheap|discount|sale)\b.*\.(com|net|org)`),
	regexp.MustCompile(`(?i)\b(paypal|bitcoin|crypto|wallet)\b`),
	regexp.MustCompile(`(?i)https?://[^\s]*\.(ru|cn|tk|ml|ga|cf|gq)`),
}

// Patterns indicating technical, on-topic criticism.
var constructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(improve|enhancement|optimization|refactor)\b`),
	regexp.MustCompile(`(?i)\b(bug|issue|problem|error|fix|solution)\b`),
	regexp.MustCompile(`(?i)\b(code|implementation|approach|method|technique)\b`),
	regexp.MustCompile(`(?i)\b(performance|speed|efficiency)\b`),
	regexp.MustCompile(`(?i)\b(security|vulnerability|protection|safe)\b`),
	regexp.MustCompile(`(?i)\b(test|testing|coverage|quality)\b`),
}

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// ExtractLinks returns every URL found in the comment body.
func ExtractLinks(body string) []string {
	return urlPattern.FindAllString(body, -1)
}

// Analyze scores a comment and decides its initial moderation state.
//
// # Decision ladder
//
//  1. Inappropriate language or a suspicious link rejects immediately.
//  2. A constructive score of 1 or more approves.
//  3. Very short comments with no signal go to review.
//  4. Everything else approves. The author moderates AFTER publication,
//     not before, so the default is permissive.
func Analyze(body, author string) Analysis {
	result := Analysis{Decision: DecisionReview}

	lowerBody := strings.ToLower(body)
	lowerAuthor := strings.ToLower(author)

	// Inappropriate content check first: immediate rejection.
	for _, pattern := range inappropriatePatterns {
		if pattern.MatchString(lowerBody) {
			result.Decision = DecisionReject
			result.Score -= 10
			result.Reasons = append(result.Reasons, "Contains inappropriate language")
			result.Flags = append(result.Flags, "inappropriate_content")
			break
		}
	}

	// Suspicious link scan.
	for _, link := range ExtractLinks(body) {
		for _, pattern := range suspiciousLinkPatterns {
			if pattern.MatchString(link) {
				result.Decision = DecisionReject
				result.Score -= 8
				result.Reasons = append(result.Reasons, "Suspicious link detected: "+link)
				result.Flags = append(result.Flags, "suspicious_link")
				break
			}
		}
	}

	if result.Decision == DecisionReject {
		return result
	}

	var constructiveScore float64

	for _, keyword := range constructiveKeywords {
		if strings.Contains(lowerBody, keyword) {
			constructiveScore++
		}
	}

	for _, phrase := range constructivePhrases {
		if strings.Contains(lowerBody, phrase) {
			constructiveScore += 2
		}
	}

	for _, pattern := range constructivePatterns {
		if pattern.MatchString(lowerBody) {
			constructiveScore += 1.5
		}
	}

	// Balanced feedback bonus: praise paired with a concrete suggestion.
	hasPositive := false
	for _, keyword := range constructiveKeywords[:10] {
		if strings.Contains(lowerBody, keyword) {
			hasPositive = true
			break
		}
	}
	hasSuggestion := false
	for _, phrase := range constructivePhrases {
		if strings.Contains(lowerBody, phrase) {
			hasSuggestion = true
			break
		}
	}
	if hasPositive && hasSuggestion {
		constructiveScore += 3
	}

	// Length consideration: constructive comments are usually longer.
	if len(body) > 50 && len(body) < 1000 {
		constructiveScore += 0.5
	}

	result.Score += constructiveScore

	switch {
	case constructiveScore >= 3:
		result.Decision = DecisionApprove
		result.Reasons = append(result.Reasons, "Contains constructive or positive content")
	case constructiveScore >= 1:
		result.Decision = DecisionApprove
		result.Reasons = append(result.Reasons, "Reasonable content - auto-approved")
	case len(body) < 10:
		result.Decision = DecisionReview
		result.Reasons = append(result.Reasons, "Very short comment - requires review")
	default:
		result.Decision = DecisionApprove
		result.Reasons = append(result.Reasons, "Standard comment - auto-approved")
	}

	// Questions lean constructive.
	if strings.Contains(lowerBody, "question") || strings.Contains(lowerBody, "?") {
		result.Score++
		result.Reasons = append(result.Reasons, "Contains questions - potentially constructive")
	}

	// Trusted author hint (display name only; not an authenticated signal).
	if strings.Contains(lowerAuthor, "admin") || strings.Contains(lowerAuthor, "moderator") {
		result.Score += 2
		result.Reasons = append(result.Reasons, "Trusted author")
	}

	return result
}

// StatusFor maps a moderation decision to the stored comment status.
func StatusFor(decision Decision) Status {
	switch decision {
	case DecisionApprove:
		return StatusApproved
	case DecisionReject:
		return StatusRejected
	default:
		return StatusPending
	}
}
