// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran-dev/loft/internal/content/comment"
	"github.com/vantran-dev/loft/internal/content/post"
	"github.com/vantran-dev/loft/internal/platform/apperr"
)

// memoryCommentRepo is an in-memory CommentRepository for service tests.
type memoryCommentRepo struct {
	comments map[string]*comment.Comment
	order    []string // insertion order, stands in for createdat ASC
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{comments: map[string]*comment.Comment{}}
}

func (repo *memoryCommentRepo) Create(_ context.Context, entry *comment.Comment) error {
	repo.comments[entry.ID] = entry
	repo.order = append(repo.order, entry.ID)
	return nil
}

func (repo *memoryCommentRepo) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	if entry, ok := repo.comments[id]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (repo *memoryCommentRepo) ListApprovedByPost(_ context.Context, postID string) ([]*comment.Comment, error) {
	var flat []*comment.Comment
	for _, id := range repo.order {
		entry := repo.comments[id]
		if entry.PostID == postID && entry.Status == comment.StatusApproved {
			// Fresh copy without stale reply grouping, like a row scan would be.
			clone := *entry
			clone.Replies = nil
			flat = append(flat, &clone)
		}
	}
	return flat, nil
}

func (repo *memoryCommentRepo) ListByStatus(_ context.Context, status comment.Status, limit, offset int) ([]*comment.Comment, int, error) {
	var matching []*comment.Comment
	for _, id := range repo.order {
		if entry := repo.comments[id]; entry.Status == status {
			matching = append(matching, entry)
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

func (repo *memoryCommentRepo) SetStatus(_ context.Context, id string, status comment.Status) error {
	entry, ok := repo.comments[id]
	if !ok {
		return apperr.NotFound("Comment")
	}
	entry.Status = status
	return nil
}

func (repo *memoryCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

// stubCatalog resolves slugs to published articles.
type stubCatalog struct {
	posts map[string]*post.Post
}

func (catalog *stubCatalog) GetBySlug(_ context.Context, slug string) (*post.Post, error) {
	if article, ok := catalog.posts[slug]; ok {
		return article, nil
	}
	return nil, apperr.NotFound("Post")
}

func newCommentFixture() (*memoryCommentRepo, *comment.Service) {
	repo := newMemoryCommentRepo()
	catalog := &stubCatalog{posts: map[string]*post.Post{
		"first-post":  {ID: "p-1", Slug: "first-post", Published: true},
		"second-post": {ID: "p-2", Slug: "second-post", Published: true},
	}}
	return repo, comment.NewService(repo, catalog)
}

func submit(t *testing.T, service *comment.Service, input comment.SubmitInput) *comment.Comment {
	t.Helper()
	entry, err := service.Submit(context.Background(), input)
	require.NoError(t, err)
	return entry
}

const constructiveBody = "Thanks, great work! One suggestion: you could improve the error handling example."

/*
TestService_Submit_ModerationDecidesStatus verifies that the analysis verdict
sets the stored status, and that rejected comments are stored but hidden.
*/
func TestService_Submit_ModerationDecidesStatus(t *testing.T) {
	repo, service := newCommentFixture()

	approved := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "reader", Body: constructiveBody,
	})
	assert.Equal(t, comment.StatusApproved, approved.Status)

	rejected := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "spammer", Body: "win a prize at https://bit.ly/xyz",
	})
	assert.Equal(t, comment.StatusRejected, rejected.Status)

	pending := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "terse", Body: "ok",
	})
	assert.Equal(t, comment.StatusPending, pending.Status)

	// All three are persisted, rejection included.
	assert.Len(t, repo.comments, 3)

	// But the public thread shows only the approved one.
	thread, err := service.ListForPost(context.Background(), "first-post")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, approved.ID, thread[0].ID)
}

/*
TestService_Submit_UnknownArticle verifies that commenting on a slug the
catalog does not expose fails with NotFound.
*/
func TestService_Submit_UnknownArticle(t *testing.T) {
	_, service := newCommentFixture()

	_, err := service.Submit(context.Background(), comment.SubmitInput{
		ArticleSlug: "no-such-post", Author: "reader", Body: constructiveBody,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Submit_ReplyValidation exercises the three reply rejection cases:
missing parent, parent on another post, and replying to a reply.
*/
func TestService_Submit_ReplyValidation(t *testing.T) {
	_, service := newCommentFixture()

	parent := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "reader", Body: constructiveBody,
	})
	reply := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "reader2", Body: constructiveBody, ParentID: parent.ID,
	})
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	testCases := []struct {
		name     string
		slug     string
		parentID string
	}{
		{"parent does not exist", "first-post", "c-missing"},
		{"parent belongs to another post", "second-post", parent.ID},
		{"replying to a reply", "first-post", reply.ID},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), comment.SubmitInput{
				ArticleSlug: testCase.slug, Author: "reader3", Body: constructiveBody, ParentID: testCase.parentID,
			})
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_ListForPost_GroupsReplies verifies the two-level thread shaping
and that replies whose parent is not approved are dropped.
*/
func TestService_ListForPost_GroupsReplies(t *testing.T) {
	_, service := newCommentFixture()

	first := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "a", Body: constructiveBody,
	})
	second := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "b", Body: constructiveBody,
	})
	replyToFirst := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "c", Body: constructiveBody, ParentID: first.ID,
	})
	submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "d", Body: constructiveBody, ParentID: second.ID,
	})

	// Reject the second top-level comment: its reply must vanish from the thread.
	require.NoError(t, service.Moderate(context.Background(), second.ID, comment.StatusRejected))

	thread, err := service.ListForPost(context.Background(), "first-post")
	require.NoError(t, err)

	require.Len(t, thread, 1)
	assert.Equal(t, first.ID, thread[0].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, replyToFirst.ID, thread[0].Replies[0].ID)
}

/*
TestService_Moderate verifies the allowed status transitions.
*/
func TestService_Moderate(t *testing.T) {
	repo, service := newCommentFixture()

	entry := submit(t, service, comment.SubmitInput{
		ArticleSlug: "first-post", Author: "terse", Body: "ok",
	})
	require.Equal(t, comment.StatusPending, entry.Status)

	// Pending cannot be a moderation target status.
	err := service.Moderate(context.Background(), entry.ID, comment.StatusPending)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	require.NoError(t, service.Moderate(context.Background(), entry.ID, comment.StatusApproved))
	assert.Equal(t, comment.StatusApproved, repo.comments[entry.ID].Status)
}
