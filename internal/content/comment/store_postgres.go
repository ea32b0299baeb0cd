// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/internal/platform/dberr"
)

// # Comment Repository

// PostgresCommentRepository implements the CommentRepository interface using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

const commentColumns = `id, postid, parentid, author, email, body, status, score, createdat`

// scanComment hydrates a Comment from a row carrying commentColumns.
func scanComment(row pgx.Row) (*Comment, error) {
	entry := &Comment{}
	err := row.Scan(
		&entry.ID,
		&entry.PostID,
		&entry.ParentID,
		&entry.Author,
		&entry.Email,
		&entry.Body,
		&entry.Status,
		&entry.Score,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

/*
Create persists a new comment into the content.comment table.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (
			id, postid, parentid, author, email, body, status, score, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.PostID,
		comment.ParentID,
		comment.Author,
		comment.Email,
		comment.Body,
		comment.Status,
		comment.Score,
		comment.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_create_failed")
	}

	return nil
}

/*
FindByID retrieves a comment by primary key, any moderation status.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Comment: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCommentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM content.comment
		WHERE id = $1`

	entry, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return entry, nil
}

/*
ListApprovedByPost returns every approved comment of the post, oldest first.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - []*Comment: Flat comment list
  - error: Database retrieval failures
*/
func (repository *PostgresCommentRepository) ListApprovedByPost(context context.Context, postID string) ([]*Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM content.comment
		WHERE postid = $1 AND status = $2
		ORDER BY createdat ASC`

	rows, err := repository.pool.Query(context, query, postID, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		entry, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, nil
}

/*
ListByStatus returns a page of comments in one moderation state, newest first.

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
func (repository *PostgresCommentRepository) ListByStatus(context context.Context, status Status, limit, offset int) ([]*Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.comment WHERE status = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := `
		SELECT ` + commentColumns + `
		FROM content.comment
		WHERE status = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_by_status_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		entry, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, total, nil
}

/*
SetStatus moves a comment to a new moderation state.

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresCommentRepository) SetStatus(context context.Context, id string, status Status) error {
	const query = `UPDATE content.comment SET status = $2 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, status)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_set_status_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
Delete removes the comment; replies cascade at the schema level.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresCommentRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.comment WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
