// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post

import (
	"context"
	"fmt"
	"time"

	"github.com/vantran-dev/loft/pkg/pagination"
	"github.com/vantran-dev/loft/pkg/slug"
	"github.com/vantran-dev/loft/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the blog catalogue.
type Service struct {
	postRepo PostRepository
}

// NewService constructs a new [Service] with its required repository.
func NewService(postRepo PostRepository) *Service {
	return &Service{postRepo: postRepo}
}

// # Public Lookups

/*
ListPublished retrieves a page of published articles, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*Post: Page of articles
  - pagination.Meta: Total/page metadata
  - error: Repository level errors
*/
func (service *Service) ListPublished(context context.Context, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepo.ListPublished(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetBySlug fetches a single PUBLISHED article by its URL slug.

Description: The public read path. Drafts are invisible here by contract;
they resolve as not found exactly like a slug that never existed.

Parameters:
  - context: context.Context
  - articleSlug: string

Returns:
  - *Post: The hydrated domain entity
  - error: NotFound if no published match exists
*/
func (service *Service) GetBySlug(context context.Context, articleSlug string) (*Post, error) {
	return service.postRepo.FindPublishedBySlug(context, articleSlug)
}

// # Article Management (admin surface)

// CreateInput holds the fields for drafting a new article.
type CreateInput struct {
	AuthorID  string
	Title     string
	Summary   string
	Body      string
	Published bool
}

/*
Create drafts a new article with a unique SEO slug.

Description: Generates a stable UUID v7 identity and derives the slug from
the title. A taken slug gets a numeric suffix; a title with no sluggable
characters falls back to a generic slug, also suffixed as needed.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Post: Created entity
  - error: Slug exhaustion or persistence errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Post, error) {

	articleSlug, err := service.uniqueSlug(context, input.Title)
	if err != nil {
		return nil, err
	}

	article := &Post{
		ID:        uuid.New(),
		AuthorID:  input.AuthorID,
		Title:     input.Title,
		Slug:      articleSlug,
		Summary:   input.Summary,
		Body:      input.Body,
		Published: input.Published,
	}

	if article.Published {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := service.postRepo.Create(context, article); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	return article, nil
}

// UpdateInput holds the mutable article fields. Nil pointers mean "unchanged".
type UpdateInput struct {
	Title     *string
	Summary   *string
	Body      *string
	Published *bool
}

/*
Update applies partial modifications to an existing article.

Description: Only non-nil fields change. A title change does NOT regenerate
the slug: published URLs stay stable. Flipping Published to true for the
first time stamps PublishedAt.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Post: Updated entity
  - error: NotFound or persistence errors
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Post, error) {
	article, err := service.postRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Summary != nil {
		article.Summary = *input.Summary
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.Published != nil {
		article.Published = *input.Published
		if article.Published && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
	}

	if err := service.postRepo.Update(context, article); err != nil {
		return nil, fmt.Errorf("post_service_update_failed: %w", err)
	}

	return article, nil
}

/*
ListAll retrieves every article including drafts, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*Post: Page of articles
  - pagination.Meta: Total/page metadata
  - error: Repository level errors
*/
func (service *Service) ListAll(context context.Context, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepo.ListAll(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Delete removes an article permanently, cascading to its comments.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound or persistence errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.postRepo.Delete(context, id)
}

// # Slug Assignment

// uniqueSlug derives a slug from the title and searches for a free variant:
// the base first, then base-2, base-3, up to the attempt cap.
func (service *Service) uniqueSlug(context context.Context, title string) (string, error) {
	base := slug.From(title)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		taken, err := service.postRepo.SlugExists(context, candidate)
		if err != nil {
			return "", fmt.Errorf("post_service_slug_check_failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", fmt.Errorf("post_service_slug_exhausted: no free slug for %q", base)
}
