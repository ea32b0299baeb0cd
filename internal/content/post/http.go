// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantran-dev/loft/internal/platform/middleware"
	"github.com/vantran-dev/loft/internal/platform/ratelimit"
	requestutil "github.com/vantran-dev/loft/internal/platform/request"
	"github.com/vantran-dev/loft/internal/platform/respond"
	"github.com/vantran-dev/loft/internal/platform/validate"
	"github.com/vantran-dev/loft/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements blog article HTTP endpoints.
type Handler struct {
	postService  *Service
	writeLimiter ratelimit.Store
}

// NewHandler constructs a new [Handler].
//
// writeLimiter guards the authenticated POST endpoint so a single author
// cannot flood the feed.
func NewHandler(service *Service, writeLimiter ratelimit.Store) *Handler {
	return &Handler{
		postService:  service,
		writeLimiter: writeLimiter,
	}
}

// Routes returns the public and authenticated article routes.
//
// # Endpoints
//   - GET  /        : Paginated list of published articles.
//   - GET  /{slug}  : Single published article by slug.
//   - POST /        : Drafts a new article (authenticated, rate limited).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getBySlug)
	router.With(
		middleware.RequireAuth(),
		middleware.RateLimit(handler.writeLimiter),
	).Post("/", handler.create)

	return router
}

// AdminRoutes returns the article management routes.
//
// Mounted behind the admin gate by the server; this router carries no gate
// of its own.
//
// # Endpoints
//   - GET    /       : Paginated list of ALL articles, drafts included.
//   - PUT    /{id}   : Partially updates an article.
//   - DELETE /{id}   : Removes an article and its comments.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAll)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createPostRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Summary   *string `json:"summary"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

/*
ListPublished returns the public article feed.

GET /api/v1/posts?page=&limit=

Response:
  - 200: Paginated published articles, newest first
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, meta, err := handler.postService.ListPublished(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
GetBySlug returns one published article.

GET /api/v1/posts/{slug}

Response:
  - 200: Post
  - 404: ErrNotFound: No published article with this slug (drafts included)
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	articleSlug := requestutil.Param(request, "slug")

	article, err := handler.postService.GetBySlug(request.Context(), articleSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
ListAll returns every article including drafts. Admin only.

GET /api/v1/admin/posts?page=&limit=

Response:
  - 200: Paginated articles
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, meta, err := handler.postService.ListAll(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
Create drafts a new article. Authenticated.

POST /api/v1/posts

Request:
  - Body: createPostRequest (Title, Summary, Body, Published)

Response:
  - 201: Created Post with its assigned slug
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: UNAUTHORIZED: No valid bearer token
  - 429: RATE_LIMITED: Write budget exhausted
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldSummary, input.Summary, 500).
		Required(FieldBody, input.Body)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.postService.Create(request.Context(), CreateInput{
		AuthorID:  principal.ID,
		Title:     input.Title,
		Summary:   input.Summary,
		Body:      input.Body,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
Update partially modifies an article. Admin only.

PUT /api/v1/admin/posts/{id}

Request:
  - Body: updatePostRequest (all fields optional)

Response:
  - 200: Updated Post
  - 404: ErrNotFound: No article with this ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.Summary != nil {
		validator.MaxLen(FieldSummary, *input.Summary, 500)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.postService.Update(request.Context(), id, UpdateInput{
		Title:     input.Title,
		Summary:   input.Summary,
		Body:      input.Body,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
Remove deletes an article and its comments. Admin only.

DELETE /api/v1/admin/posts/{id}

Response:
  - 204: Deleted
  - 404: ErrNotFound: No article with this ID
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.postService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
