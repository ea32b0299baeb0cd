// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations must also satisfy [sec.SecretResolver] so the token
// verifier can re-derive trust from the stored signing secret per request.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdateSigningSecret replaces the user's token signing secret.

		Because token verification resolves the current secret per request,
		this single write invalidates every token previously issued to the
		user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newSecret: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateSigningSecret(context context.Context, userID, newSecret string) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		A soft-deleted account is invisible to every lookup, including the
		secret resolver, so its outstanding tokens stop verifying immediately.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}
