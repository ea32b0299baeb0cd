// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantran-dev/loft/internal/platform/csrf"
	"github.com/vantran-dev/loft/internal/platform/middleware"
	"github.com/vantran-dev/loft/internal/platform/ratelimit"
	requestutil "github.com/vantran-dev/loft/internal/platform/request"
	"github.com/vantran-dev/loft/internal/platform/respond"
	"github.com/vantran-dev/loft/internal/platform/validate"
	"github.com/vantran-dev/loft/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements comment thread HTTP endpoints.
type Handler struct {
	commentService *Service
	writeLimiter   ratelimit.Store
}

// NewHandler constructs a new [Handler].
//
// writeLimiter guards the anonymous POST endpoint; it is typically the
// Redis-backed fixed-window store so the budget holds across instances.
func NewHandler(service *Service, writeLimiter ratelimit.Store) *Handler {
	return &Handler{
		commentService: service,
		writeLimiter:   writeLimiter,
	}
}

// Routes returns the comment routes, mounted under /posts/{slug}/comments.
//
// # Endpoints
//   - GET  / : Approved comment thread of the article.
//   - POST / : Submits a new comment (CSRF + rate limited).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.With(middleware.RateLimit(handler.writeLimiter)).Post("/", handler.submit)

	return router
}

// AdminRoutes returns the moderation routes. Mounted behind the admin gate.
//
// # Endpoints
//   - GET    /           : Paginated comments filtered by status.
//   - PUT    /{id}/status: Approves or rejects a comment.
//   - DELETE /{id}       : Removes a comment and its replies.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByStatus)
	router.Put("/{id}/status", handler.moderate)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type submitCommentRequest struct {
	Author    string `json:"author"`
	Email     string `json:"email"`
	Body      string `json:"content"`
	ParentID  string `json:"parent_id"`
	CSRFToken string `json:"csrf_token"`
}

type moderateCommentRequest struct {
	Status string `json:"status"`
}

/*
List returns the approved comment thread for a published article.

GET /api/v1/posts/{slug}/comments

Response:
  - 200: Top-level comments with nested replies
  - 404: ErrNotFound: Article not published or nonexistent
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	articleSlug := requestutil.Param(request, "slug")

	comments, err := handler.commentService.ListForPost(request.Context(), articleSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

/*
Submit posts a new visitor comment.

POST /api/v1/posts/{slug}/comments

Description: The CSRF check runs AFTER JSON decoding because the pairing
token travels in the body; it still runs before any validation or storage
work. The moderation verdict is returned with the stored comment so the
frontend can tell the visitor if their comment awaits review.

Request:
  - Body: submitCommentRequest (Author, Email, Content, ParentID, CSRFToken)
  - Cookies: csrf_token (the HttpOnly half of the pairing)

Response:
  - 201: Stored comment with moderation status
  - 400: ErrInvalidJSON: Bad input, bad parent, or validation failure
  - 403: CSRF_MISMATCH: Missing or mismatched token pair
  - 429: RATE_LIMITED: Write budget exhausted
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Double-submit check before any further processing.
	if err := csrf.Validate(request, input.CSRFToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldAuthor, input.Author).
		MaxLen(FieldAuthor, input.Author, 100).
		Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 1000)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.commentService.Submit(request.Context(), SubmitInput{
		ArticleSlug: requestutil.Param(request, "slug"),
		Author:      input.Author,
		Email:       input.Email,
		Body:        input.Body,
		ParentID:    input.ParentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
ListByStatus returns the moderation queue. Admin only.

GET /api/v1/admin/comments?status=pending&page=&limit=

Response:
  - 200: Paginated comments in the requested status (default pending)
*/
func (handler *Handler) listByStatus(writer http.ResponseWriter, request *http.Request) {
	status := Status(request.URL.Query().Get(FieldStatus))
	if status == "" {
		status = StatusPending
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(status),
		string(StatusApproved),
		string(StatusPending),
		string(StatusRejected),
	)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, meta, err := handler.commentService.ListByStatus(request.Context(), status, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

/*
Moderate approves or rejects a comment. Admin only.

PUT /api/v1/admin/comments/{id}/status

Request:
  - Body: moderateCommentRequest (Status: "approved" or "rejected")

Response:
  - 200: Confirmation message
  - 400: ErrInvalidJSON: Unknown status value
  - 404: ErrNotFound: No comment with this ID
*/
func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input moderateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.commentService.Moderate(request.Context(), id, Status(input.Status)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Comment status updated",
	})
}

/*
Remove deletes a comment and its replies. Admin only.

DELETE /api/v1/admin/comments/{id}

Response:
  - 204: Deleted
  - 404: ErrNotFound: No comment with this ID
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.commentService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
