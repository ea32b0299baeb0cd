// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment

import (
	"context"
)

// # Comment Data Access

// CommentRepository defines the data access contract for visitor comments.
type CommentRepository interface {

	/*
		Create persists a new comment with its moderation verdict.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns the comment with the given ID, any status.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListApprovedByPost returns every APPROVED comment of the post, oldest
		first, flat (no reply grouping; the service shapes the thread).

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []*Comment: Flat comment list
		  - error: Database retrieval failures
	*/
	ListApprovedByPost(context context.Context, postID string) ([]*Comment, error)

	/*
		ListByStatus returns comments in the given moderation state, newest
		first. The admin review surface.

		Parameters:
		  - context: context.Context
		  - status: Status
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Page of comments
		  - int: Total count in that status
		  - error: Database retrieval failures
	*/
	ListByStatus(context context.Context, status Status, limit, offset int) ([]*Comment, int, error)

	/*
		SetStatus moves a comment to a new moderation state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: Persistence failures
	*/
	SetStatus(context context.Context, id string, status Status) error

	/*
		Delete removes the comment and, by cascade, its replies.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
