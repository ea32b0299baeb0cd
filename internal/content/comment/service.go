// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/vantran-dev/loft/internal/content/post"
	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/pkg/pagination"
	"github.com/vantran-dev/loft/pkg/uuid"
)

// # Service Layer

// PostCatalog is the slice of the publishing domain the comment service
// needs: resolving a slug to a published article.
//
// Satisfied by [post.Service].
type PostCatalog interface {
	GetBySlug(ctx context.Context, slug string) (*post.Post, error)
}

// Service orchestrates comment threads and moderation.
type Service struct {
	commentRepo CommentRepository
	postCatalog PostCatalog
}

// NewService constructs a new [Service] with its dependencies.
func NewService(commentRepo CommentRepository, postCatalog PostCatalog) *Service {
	return &Service{
		commentRepo: commentRepo,
		postCatalog: postCatalog,
	}
}

// # Public Thread Reads

/*
ListForPost returns the approved comment thread of a published article.

Description: Fetches the flat approved set and shapes it into the two-level
thread: top-level comments in posting order, each carrying its replies.

Parameters:
  - context: context.Context
  - articleSlug: string

Returns:
  - []*Comment: Top-level comments with nested replies
  - error: NotFound if the article is not published, or storage failures
*/
func (service *Service) ListForPost(context context.Context, articleSlug string) ([]*Comment, error) {
	article, err := service.postCatalog.GetBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}

	flat, err := service.commentRepo.ListApprovedByPost(context, article.ID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_failed: %w", err)
	}

	// Group replies under their parents; orphaned replies (parent no longer
	// approved) are dropped from the public thread.
	topLevel := make([]*Comment, 0, len(flat))
	byID := make(map[string]*Comment, len(flat))

	for _, entry := range flat {
		if entry.ParentID == nil {
			byID[entry.ID] = entry
			topLevel = append(topLevel, entry)
		}
	}
	for _, entry := range flat {
		if entry.ParentID == nil {
			continue
		}
		if parent, ok := byID[*entry.ParentID]; ok {
			parent.Replies = append(parent.Replies, entry)
		}
	}

	return topLevel, nil
}

// # Comment Submission

// SubmitInput holds a visitor's comment submission.
type SubmitInput struct {
	ArticleSlug string
	Author      string
	Email       string
	Body        string
	ParentID    string
}

/*
Submit validates, auto-moderates, and persists a visitor comment.

Description: The article must be published. A reply must target an existing
top-level comment of the SAME article; replying to a reply is rejected to
keep threads two levels deep. The moderation verdict decides the initial
status: rejected comments are still stored (for the audit trail) but never
shown.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Comment: Stored comment with its moderation status
  - error: Validation, NotFound, or storage failures
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Comment, error) {
	article, err := service.postCatalog.GetBySlug(context, input.ArticleSlug)
	if err != nil {
		return nil, err
	}

	var parentID *string
	if input.ParentID != "" {
		parent, err := service.commentRepo.FindByID(context, input.ParentID)
		if err != nil {
			return nil, apperr.ValidationError("Parent comment not found")
		}
		if parent.PostID != article.ID {
			return nil, apperr.ValidationError("Parent comment does not belong to this post")
		}
		if parent.ParentID != nil {
			return nil, apperr.ValidationError("Cannot reply to a reply")
		}
		parentID = &input.ParentID
	}

	verdict := Analyze(input.Body, input.Author)

	entry := &Comment{
		ID:       uuid.New(),
		PostID:   article.ID,
		ParentID: parentID,
		Author:   input.Author,
		Email:    input.Email,
		Body:     input.Body,
		Status:   StatusFor(verdict.Decision),
		Score:    verdict.Score,
	}

	if err := service.commentRepo.Create(context, entry); err != nil {
		return nil, fmt.Errorf("comment_service_submit_failed: %w", err)
	}

	return entry, nil
}

// # Moderation (admin surface)

/*
ListByStatus returns a page of comments in one moderation state.

Parameters:
  - context: context.Context
  - status: Status
  - params: pagination.Params

Returns:
  - []*Comment: Page of comments
  - pagination.Meta: Total/page metadata
  - error: Storage failures
*/
func (service *Service) ListByStatus(context context.Context, status Status, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	comments, total, err := service.commentRepo.ListByStatus(context, status, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Moderate moves a comment to a new status (approve or reject).

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Moderate(context context.Context, id string, status Status) error {
	if status != StatusApproved && status != StatusRejected {
		return apperr.ValidationError("Status must be approved or rejected")
	}
	return service.commentRepo.SetStatus(context, id, status)
}

/*
Delete removes a comment and its replies permanently.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.commentRepo.Delete(context, id)
}
