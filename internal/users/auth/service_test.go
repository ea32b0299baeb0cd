// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran-dev/loft/internal/platform/apperr"
	"github.com/vantran-dev/loft/internal/platform/constants"
	platformsec "github.com/vantran-dev/loft/internal/platform/sec"
	"github.com/vantran-dev/loft/internal/users/auth"
)

// memoryUserRepo is an in-memory UserRepository for service tests.
type memoryUserRepo struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*auth.User{}}
}

func (repo *memoryUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepo) UpdateSigningSecret(_ context.Context, userID, newSecret string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.SigningSecret = newSecret
	return nil
}

func (repo *memoryUserRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

// recordingIssuer captures the lifetime and secret used for each issuance.
type recordingIssuer struct {
	lastTTL    time.Duration
	lastSecret string
}

func (issuer *recordingIssuer) Issue(_ *platformsec.Principal, secret string, timeToLive time.Duration) (string, error) {
	issuer.lastTTL = timeToLive
	issuer.lastSecret = secret
	return "issued-token", nil
}

// denyCaptcha fails every challenge.
type denyCaptcha struct{}

func (denyCaptcha) VerifyCaptcha(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func newService(repo *memoryUserRepo, issuer *recordingIssuer) *auth.Service {
	return auth.NewService(repo, issuer, auth.AllowAllVerifier{})
}

func registerAlice(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "alice@loft.blog",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return user
}

/*
TestService_Register verifies enrollment: hashed password, fresh signing
secret, and identity conflict handling.
*/
func TestService_Register(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo, &recordingIssuer{})

	user := registerAlice(t, service)

	// Password is stored hashed, never plain.
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	assert.True(t, platformsec.CheckPasswordHash("correct-horse-battery", user.PasswordHash))

	// The account is born with a signing secret.
	assert.Len(t, user.SigningSecret, platformsec.SigningSecretLength*2) // hex encoding doubles it
	assert.False(t, user.IsAdmin)

	// Duplicate email conflicts.
	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice2", Email: "alice@loft.blog", Password: "xxxxxxxx",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Duplicate username conflicts.
	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "other@loft.blog", Password: "xxxxxxxx",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Login_ConsentPicksLifetime verifies the consent-gated TTL: the
same credentials buy a week with consent and four hours without.
*/
func TestService_Login_ConsentPicksLifetime(t *testing.T) {
	repo := newMemoryUserRepo()
	issuer := &recordingIssuer{}
	service := newService(repo, issuer)
	user := registerAlice(t, service)

	// With consent at login.
	loginSession, err := service.Login(context.Background(), auth.LoginInput{
		Login: "alice@loft.blog", Password: "correct-horse-battery", Consented: true,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ConsentedSessionLifetime, issuer.lastTTL)
	assert.Equal(t, "issued-token", loginSession.Token)
	assert.Equal(t, user.SigningSecret, issuer.lastSecret)

	// Without consent at login.
	_, err = service.Login(context.Background(), auth.LoginInput{
		Login: "alice@loft.blog", Password: "correct-horse-battery", Consented: false,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ShortSessionLifetime, issuer.lastTTL)
}

/*
TestService_Login_ByUsername verifies the flexible login lookup.
*/
func TestService_Login_ByUsername(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo, &recordingIssuer{})
	registerAlice(t, service)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login: "alice", Password: "correct-horse-battery",
	})
	assert.NoError(t, err)
}

/*
TestService_Login_EnumerationSafety verifies that a wrong password and a
nonexistent account produce byte-identical client errors.
*/
func TestService_Login_EnumerationSafety(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo, &recordingIssuer{})
	registerAlice(t, service)

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Login: "alice@loft.blog", Password: "wrong",
	})
	_, noSuchUser := service.Login(context.Background(), auth.LoginInput{
		Login: "ghost@loft.blog", Password: "whatever",
	})

	require.Error(t, wrongPassword)
	require.Error(t, noSuchUser)
	assert.Equal(t, apperr.As(wrongPassword).Code, apperr.As(noSuchUser).Code)
	assert.Equal(t, apperr.As(wrongPassword).Message, apperr.As(noSuchUser).Message)
	assert.Equal(t, apperr.As(wrongPassword).HTTPStatus, apperr.As(noSuchUser).HTTPStatus)
}

/*
TestService_Login_CaptchaGate verifies that a failed challenge blocks login
before credentials are even considered.
*/
func TestService_Login_CaptchaGate(t *testing.T) {
	repo := newMemoryUserRepo()
	issuer := &recordingIssuer{}
	service := auth.NewService(repo, issuer, denyCaptcha{})
	registerAlice(t, service)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login: "alice@loft.blog", Password: "correct-horse-battery",
	})
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

/*
TestService_RotateSecret verifies that rotation stores a brand-new secret.
*/
func TestService_RotateSecret(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo, &recordingIssuer{})
	user := registerAlice(t, service)

	before := user.SigningSecret
	require.NoError(t, service.RotateSecret(context.Background(), user.ID))

	after := repo.users[user.ID].SigningSecret
	assert.NotEqual(t, before, after)
	assert.Len(t, after, platformsec.SigningSecretLength*2)
}

/*
TestService_UpdateProfile verifies the profile write path.
*/
func TestService_UpdateProfile(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo, &recordingIssuer{})
	user := registerAlice(t, service)

	updated, err := service.UpdateProfile(context.Background(), user.ID, auth.UpdateProfileInput{
		DisplayName: "Alice L.",
		Bio:         "I write here.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.DisplayName)
	assert.Equal(t, "I write here.", updated.Bio)
}
