// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
HTTP delivery layer for user identity management.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Consent is read from cookies at login time only; tokens travel
    in the Authorization header, never in cookies.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vantran-dev/loft/internal/platform/middleware"
	requestutil "github.com/vantran-dev/loft/internal/platform/request"
	"github.com/vantran-dev/loft/internal/platform/respond"
	"github.com/vantran-dev/loft/internal/platform/validate"
	"github.com/vantran-dev/loft/internal/users/session"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register      : Creates a new account.
//   - POST /login         : Authenticates and returns a bearer token.
//   - POST /rotate-secret : Invalidates every outstanding token (log out everywhere).
//   - GET  /profile       : Returns the caller's account.
//   - PUT  /profile       : Updates the caller's profile fields.
//   - DELETE /profile     : Soft-deletes the caller's account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())
		r.Post("/rotate-secret", handler.rotateSecret)
		r.Get("/profile", handler.profile)
		r.Put("/profile", handler.updateProfile)
		r.Delete("/profile", handler.deleteAccount)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
	Redirect     string `json:"redirect"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, and persists
a new user profile to the database.

Request:
  - Body: registerRequest (Username, Email, Password, DisplayName)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 32).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies the captcha challenge, checks credentials, and returns
a bearer token whose lifetime was chosen from the consent cookies present on
THIS request. The redirect target from the body is validated against open
redirects before being echoed back.

Request:
  - Body: loginRequest (Login, Password, CaptchaToken, Redirect)
  - Cookies: cookie_consent (optional; absent means no consent)

Response:
  - 200: token, expiry, redirect target, and user profile
  - 401: ErrUnauthorized: Failed captcha or invalid credentials (one message)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Consent is read from cookies at this exact moment; it fixes the
	// session lifetime and is not consulted again at the HTTP layer.
	consent := session.FromRequest(request)

	loginSession, err := handler.authService.Login(request.Context(), LoginInput{
		Login:        input.Login,
		Password:     input.Password,
		CaptchaToken: input.CaptchaToken,
		IPAddress:    middleware.RealIP(request),
		Consented:    consent.Given,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldToken:     loginSession.Token,
		FieldExpiresIn: int64(time.Until(loginSession.ExpiresAt).Seconds()),
		FieldRedirect:  requestutil.SafeRedirectPath(input.Redirect, "/"),
		FieldUser:      loginSession.User,
	})
}

/*
RotateSecret invalidates every outstanding token for the caller.

POST /api/v1/auth/rotate-secret

Description: Replaces the caller's signing secret. All previously issued
tokens, including the one used for THIS request, stop verifying immediately.

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) rotateSecret(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RotateSecret(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "All sessions have been invalidated",
	})
}

/*
Profile returns the caller's own account.

GET /api/v1/auth/profile

Response:
  - 200: User
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile updates the caller's mutable profile fields.

PUT /api/v1/auth/profile

Request:
  - Body: updateProfileRequest (DisplayName, Bio)

Response:
  - 200: Updated User
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldDisplayName, input.DisplayName, 64).
		MaxLen(FieldBio, input.Bio, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteAccount soft-deletes the caller's own account.

DELETE /api/v1/auth/profile

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Account deleted",
	})
}
