// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran-dev/loft/internal/content/post"
	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/pkg/pagination"
)

// memoryPostRepo is an in-memory PostRepository for service tests.
type memoryPostRepo struct {
	posts map[string]*post.Post
	order []string
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: map[string]*post.Post{}}
}

func (repo *memoryPostRepo) Create(_ context.Context, article *post.Post) error {
	repo.posts[article.ID] = article
	repo.order = append(repo.order, article.ID)
	return nil
}

func (repo *memoryPostRepo) FindByID(_ context.Context, id string) (*post.Post, error) {
	if article, ok := repo.posts[id]; ok {
		return article, nil
	}
	return nil, apperr.NotFound("Post")
}

func (repo *memoryPostRepo) FindPublishedBySlug(_ context.Context, articleSlug string) (*post.Post, error) {
	for _, article := range repo.posts {
		if article.Slug == articleSlug && article.Published {
			return article, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repo *memoryPostRepo) list(published bool, limit, offset int) ([]*post.Post, int, error) {
	var matching []*post.Post
	for _, id := range repo.order {
		if article := repo.posts[id]; !published || article.Published {
			matching = append(matching, article)
		}
	}
	total := len(matching)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

func (repo *memoryPostRepo) ListPublished(_ context.Context, limit, offset int) ([]*post.Post, int, error) {
	return repo.list(true, limit, offset)
}

func (repo *memoryPostRepo) ListAll(_ context.Context, limit, offset int) ([]*post.Post, int, error) {
	return repo.list(false, limit, offset)
}

func (repo *memoryPostRepo) SlugExists(_ context.Context, articleSlug string) (bool, error) {
	for _, article := range repo.posts {
		if article.Slug == articleSlug {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryPostRepo) Update(_ context.Context, article *post.Post) error {
	if _, ok := repo.posts[article.ID]; !ok {
		return apperr.NotFound("Post")
	}
	repo.posts[article.ID] = article
	return nil
}

func (repo *memoryPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	return nil
}

func strPtr(value string) *string { return &value }
func boolPtr(value bool) *bool    { return &value }

/*
TestService_Create_SlugAssignment verifies slug derivation, collision
suffixing, and the empty-title fallback.
*/
func TestService_Create_SlugAssignment(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	first, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Hello, World!",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	// Same title again: numeric suffix.
	second, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Hello, World!",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", second.Slug)

	third, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Hello, World!",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-3", third.Slug)

	// A title with nothing sluggable falls back to the generic slug.
	unnamed, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "???",
	})
	require.NoError(t, err)
	assert.Equal(t, "untitled-post", unnamed.Slug)
}

/*
TestService_Create_PublishStampsTimestamp verifies that publishing at creation
records PublishedAt while drafts stay unstamped.
*/
func TestService_Create_PublishStampsTimestamp(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	draft, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Draft", Published: false,
	})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	published, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Live", Published: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, published.PublishedAt)
}

/*
TestService_Update_PartialAndSlugStability verifies that nil fields are left
alone and that retitling never changes a slug.
*/
func TestService_Update_PartialAndSlugStability(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	article, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Original Title", Summary: "sum", Body: "body",
	})
	require.NoError(t, err)
	require.Equal(t, "original-title", article.Slug)

	updated, err := service.Update(context.Background(), article.ID, post.UpdateInput{
		Title: strPtr("Completely New Title"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Completely New Title", updated.Title)
	assert.Equal(t, "original-title", updated.Slug, "published URLs must stay stable")
	assert.Equal(t, "sum", updated.Summary)
	assert.Equal(t, "body", updated.Body)
}

/*
TestService_Update_FirstPublishStampsOnce verifies that PublishedAt is set on
the first publish and never rewritten by later publish toggles.
*/
func TestService_Update_FirstPublishStampsOnce(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	article, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Draft",
	})
	require.NoError(t, err)
	require.Nil(t, article.PublishedAt)

	published, err := service.Update(context.Background(), article.ID, post.UpdateInput{
		Published: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// Unpublish and republish: the original timestamp survives.
	_, err = service.Update(context.Background(), article.ID, post.UpdateInput{Published: boolPtr(false)})
	require.NoError(t, err)
	republished, err := service.Update(context.Background(), article.ID, post.UpdateInput{Published: boolPtr(true)})
	require.NoError(t, err)

	assert.Equal(t, firstStamp, *republished.PublishedAt)
}

/*
TestService_GetBySlug_DraftsAreInvisible verifies that the public slug lookup
cannot tell a draft apart from a missing article.
*/
func TestService_GetBySlug_DraftsAreInvisible(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	draft, err := service.Create(context.Background(), post.CreateInput{
		AuthorID: "u-1", Title: "Hidden Draft",
	})
	require.NoError(t, err)

	_, draftErr := service.GetBySlug(context.Background(), draft.Slug)
	_, missingErr := service.GetBySlug(context.Background(), "never-existed")

	require.Error(t, draftErr)
	require.Error(t, missingErr)
	assert.Equal(t, apperr.As(missingErr).Code, apperr.As(draftErr).Code)
	assert.Equal(t, apperr.As(missingErr).Message, apperr.As(draftErr).Message)
}

/*
TestService_Listing verifies the published/all split and pagination metadata.
*/
func TestService_Listing(t *testing.T) {
	service := post.NewService(newMemoryPostRepo())

	for index, published := range []bool{true, false, true} {
		_, err := service.Create(context.Background(), post.CreateInput{
			AuthorID: "u-1", Title: "Post " + string(rune('A'+index)), Published: published,
		})
		require.NoError(t, err)
	}

	visible, meta, err := service.ListPublished(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, visible, 2)
	assert.Equal(t, 2, meta.Total)

	everything, meta, err := service.ListAll(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, everything, 3)
	assert.Equal(t, 3, meta.Total)
}
