// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/internal/platform/sec"
	"github.com/vantran-dev/loft/internal/users/session"
	"github.com/vantran-dev/loft/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting signed session tokens.
type TokenIssuer interface {
	// Issue creates a signed token for the principal using the principal's
	// own signing secret, valid for timeToLive.
	Issue(principal *sec.Principal, secret string, timeToLive time.Duration) (string, error)
}

// Service implements user identity use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, secret
// rotation, or login logic must be reviewed before merge.
type Service struct {
	userRepository  UserRepository
	tokenIssuer     TokenIssuer
	captchaVerifier CaptchaVerifier
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenIssuer TokenIssuer, captchaVerifier CaptchaVerifier) *Service {
	return &Service{
		userRepository:  userRepo,
		tokenIssuer:     tokenIssuer,
		captchaVerifier: captchaVerifier,
	}
}

// principalOf projects the public identity fields of a user.
func principalOf(user *User) *sec.Principal {
	return &sec.Principal{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member. The account is born with a
fresh signing secret so it can authenticate immediately; without one, no
token for the account could ever verify.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Every account carries its own signing secret from birth.
	signingSecret, err := sec.NewSigningSecret()
	if err != nil {
		return nil, fmt.Errorf("auth_service_secret_generation_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuid.New(),
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  hashedPassword,
		SigningSecret: signingSecret,
		DisplayName:   input.DisplayName,
		IsAdmin:       false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login        string // Can be Username or Email
	Password     string
	CaptchaToken string
	IPAddress    string

	// Consented records whether cookie consent was present at the moment of
	// login. It picks the session lifetime and is NOT revisited later: the
	// token's expiry is fixed at issuance.
	Consented bool
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Login validates a challenge response plus user credentials and issues a token.

Description: Verifies the captcha before any credential work, performs
constant-time password comparison, and mints a session token whose lifetime
is chosen by the consent-gated session policy.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session token
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Humans first: reject automated attempts before touching credentials.
	human, err := service.captchaVerifier.VerifyCaptcha(context, input.CaptchaToken, input.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("auth_service_captcha_unavailable: %w", err)
	}
	if !human {
		return nil, apperr.Unauthorized("Captcha verification failed")
	}

	var user *User
	// Flexible login: look up by Email or Username
	user, err = service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// The consent state AT LOGIN fixes the token lifetime.
	timeToLive := session.LifetimeFor(input.Consented)

	token, err := service.tokenIssuer.Issue(principalOf(user), user.SigningSecret, timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: time.Now().Add(timeToLive),
		User:      user,
	}, nil
}

// # Session Revocation

/*
RotateSecret replaces the user's signing secret with a fresh value.

Description: The global "log me out everywhere" operation. Verification
resolves the CURRENT secret per request, so every token issued before the
rotation fails signature checking on its very next use. No revocation list
is consulted or maintained.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Generation or persistence failures
*/
func (service *Service) RotateSecret(context context.Context, userID string) error {
	newSecret, err := sec.NewSigningSecret()
	if err != nil {
		return fmt.Errorf("auth_service_secret_generation_failed: %w", err)
	}

	if err := service.userRepository.UpdateSigningSecret(context, userID, newSecret); err != nil {
		return fmt.Errorf("auth_service_rotate_secret_failed: %w", err)
	}

	return nil
}

// # Profile Management

// UpdateProfileInput holds the mutable profile fields.
type UpdateProfileInput struct {
	DisplayName string
	Bio         string
}

/*
GetProfile returns the account owning the given ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
UpdateProfile persists changes to the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *User: Updated entity
  - err: NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = input.DisplayName
	user.Bio = input.Bio

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}

	return user, nil
}

/*
DeleteAccount soft-deletes the caller's own account.

Description: The row survives for referential integrity, but every lookup —
including signing-secret resolution — stops seeing it, so the account's
outstanding tokens die with it.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: NotFound or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.userRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("auth_service_delete_account_failed: %w", err)
	}
	return nil
}
