// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post

import (
	"context"
)

// # Post Data Access

// PostRepository defines the data access contract for blog articles.
type PostRepository interface {

	/*
		Create persists a brand-new article.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Conflict on duplicate slug, or persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID returns the article with the given ID, drafts included.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Post: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		FindPublishedBySlug returns the PUBLISHED article with the given slug.
		Drafts resolve as not found on this path.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Post: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindPublishedBySlug(context context.Context, slug string) (*Post, error)

	/*
		ListPublished returns published articles, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Page of articles
		  - int: Total published count (for pagination metadata)
		  - error: Database retrieval failures
	*/
	ListPublished(context context.Context, limit, offset int) ([]*Post, int, error)

	/*
		ListAll returns every article including drafts, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Page of articles
		  - int: Total count
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context, limit, offset int) ([]*Post, int, error)

	/*
		SlugExists reports whether any article already owns the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: true if taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Update persists changes to an existing article.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		Delete removes the article and, by cascade, its comments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
