// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post

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

// # Post Repository

// PostgresPostRepository implements the PostRepository interface using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of the PostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

const postColumns = `id, authorid, title, slug, summary, body, published, publishedat, createdat, updatedat`

// scanPost hydrates a Post from a row carrying postColumns.
func scanPost(row pgx.Row) (*Post, error) {
	article := &Post{}
	err := row.Scan(
		&article.ID,
		&article.AuthorID,
		&article.Title,
		&article.Slug,
		&article.Summary,
		&article.Body,
		&article.Published,
		&article.PublishedAt,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

/*
Create persists a new article into the content.post table.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Conflict on duplicate slug, or connectivity errors
*/
func (repository *PostgresPostRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO content.post (
			id, authorid, title, slug, summary, body, published, publishedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Body,
		post.Published,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_post_repo_create_failed")
	}

	return nil
}

/*
FindByID retrieves an article by primary key, drafts included.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPostRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM content.post
		WHERE id = $1`

	article, err := scanPost(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_by_id_failed: %w", err)
	}

	return article, nil
}

/*
FindPublishedBySlug retrieves a PUBLISHED article by its URL slug.

Description: Drafts are filtered at the query level, so the public path
cannot distinguish "draft exists" from "never existed".

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPostRepository) FindPublishedBySlug(context context.Context, slug string) (*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM content.post
		WHERE slug = $1 AND published = TRUE`

	article, err := scanPost(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_by_slug_failed: %w", err)
	}

	return article, nil
}

/*
ListPublished returns a page of published articles, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Post: Page of articles
  - int: Total published count
  - error: Database retrieval failures
*/
func (repository *PostgresPostRepository) ListPublished(context context.Context, limit, offset int) ([]*Post, int, error) {
	return repository.list(context, `WHERE published = TRUE`, limit, offset)
}

/*
ListAll returns a page of every article including drafts, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Post: Page of articles
  - int: Total count
  - error: Database retrieval failures
*/
func (repository *PostgresPostRepository) ListAll(context context.Context, limit, offset int) ([]*Post, int, error) {
	return repository.list(context, ``, limit, offset)
}

// list runs the shared pagination query with an optional WHERE clause.
func (repository *PostgresPostRepository) list(context context.Context, where string, limit, offset int) ([]*Post, int, error) {
	countQuery := `SELECT COUNT(*) FROM content.post ` + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM content.post ` + where + `
		ORDER BY COALESCE(publishedat, createdat) DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		article, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
		}
		posts = append(posts, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

/*
SlugExists reports whether any article already owns the slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - bool: true if taken
  - error: Database retrieval failures
*/
func (repository *PostgresPostRepository) SlugExists(context context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM content.post WHERE slug = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_post_repo_slug_exists_failed: %w", err)
	}

	return exists, nil
}

/*
Update persists changes to an existing article.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresPostRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE content.post
		SET title = $2, summary = $3, body = $4, published = $5, publishedat = $6, updatedat = $7
		WHERE id = $1`

	post.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Summary,
		post.Body,
		post.Published,
		post.PublishedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

/*
Delete removes the article; comments cascade at the schema level.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresPostRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.post WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}
