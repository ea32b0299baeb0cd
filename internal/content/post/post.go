// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package post implements the blog publishing domain.

It covers the full article lifecycle: drafting, slug assignment, publication,
and public listing. Only published articles are visible to anonymous readers;
drafts exist solely behind the admin gate.
*/
package post

import (
	"time"
)

// # Domain Entities

// Post represents a single blog article.
type Post struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldSummary   = "summary"
	FieldBody      = "body"
	FieldPublished = "published"
	FieldMessage   = "message"
)

// fallbackSlug is used when a title yields no sluggable characters at all.
const fallbackSlug = "untitled-post"

// maxSlugAttempts bounds the numeric-suffix search for a free slug.
const maxSlugAttempts = 50
