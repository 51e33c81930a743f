package services

import "errors"

// Recoverable outcomes of the core operations. Handlers map these to HTTP
// statuses; anything else is an internal storage failure.
var (
	// ErrInvalidOperation rejects self-referential actions: following
	// yourself, removing yourself from your followers, messaging yourself.
	ErrInvalidOperation = errors.New("operation not allowed on self")

	// ErrNotFound reports an unknown user, profile, conversation or post.
	ErrNotFound = errors.New("not found")

	// ErrNotFollowing reports a remove-follower call for an edge that does
	// not exist.
	ErrNotFollowing = errors.New("user is not a follower")

	// ErrForbidden rejects an action by a user without standing, such as a
	// non-participant posting into a conversation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict reports a uniqueness violation surfaced to the caller,
	// such as a taken username or email.
	ErrConflict = errors.New("already exists")

	// ErrInvalidToken reports an expired, already-used or otherwise
	// unverifiable password-reset token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrBadCredentials reports a failed sign-in.
	ErrBadCredentials = errors.New("invalid credentials")
)
