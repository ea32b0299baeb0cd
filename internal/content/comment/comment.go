// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package comment implements public discussion threads on published articles.

Comments are written by anonymous visitors (no account required), guarded by
the CSRF double-submit check and a write rate limit, and screened by an
auto-moderation pass before they become visible.

# Thread Shape

Threads are exactly two levels deep: top-level comments and direct replies.
Replying to a reply is rejected, which keeps rendering and moderation flat.
*/
package comment

import (
	"time"
)

// # Domain Entities

// Status is the moderation state of a comment.
type Status string

const (
	// StatusApproved comments are publicly visible.
	StatusApproved Status = "approved"

	// StatusPending comments await manual review.
	StatusPending Status = "pending"

	// StatusRejected comments are hidden permanently.
	StatusRejected Status = "rejected"
)

// Comment represents one visitor comment on an article.
type Comment struct {
	ID       string  `json:"id"`
	PostID   string  `json:"post_id"`
	ParentID *string `json:"parent_id,omitempty"`

	Author string `json:"author"`
	Email  string `json:"-"` // Collected for the author's gravatar; never exposed.
	Body   string `json:"body"`

	Status Status  `json:"status"`
	Score  float64 `json:"-"` // Moderation score; internal detail.

	CreatedAt time.Time `json:"created_at"`

	// Replies is populated on list reads for top-level comments only.
	Replies []*Comment `json:"replies,omitempty"`
}

// # Field Identifiers

const (
	FieldAuthor  = "author"
	FieldEmail   = "email"
	FieldBody    = "content"
	FieldParent  = "parent_id"
	FieldStatus  = "status"
	FieldCSRF    = "csrf_token"
	FieldMessage = "message"
)
