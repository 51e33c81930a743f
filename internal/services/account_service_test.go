package services

import (
	"context"
	"testing"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	user, err := svc.Register("Alice", "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username, "username is stored lowercased")
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password, "password is stored hashed")

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegisterDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	_, err := svc.Register("alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register("other", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	registered, err := svc.Register("alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.Authenticate("Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Authenticate("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	_, err := svc.Register("alice", "alice@example.com", "oldpass1")
	require.NoError(t, err)

	token, err := svc.IssueResetToken("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(token, "newpass1"))

	_, err = svc.Authenticate("alice@example.com", "oldpass1")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Authenticate("alice@example.com", "newpass1")
	assert.NoError(t, err)

	// A redeemed token cannot be replayed.
	err = svc.ResetPassword(token, "another1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenInvalidatedByNewerReset(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	_, err := svc.Register("alice", "alice@example.com", "oldpass1")
	require.NoError(t, err)

	stale, err := svc.IssueResetToken("alice@example.com")
	require.NoError(t, err)
	fresh, err := svc.IssueResetToken("alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(fresh, "newpass1"))

	// The version bump from the first reset makes the older token worthless.
	err = svc.ResetPassword(stale, "sneaky1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	_, err := svc.IssueResetToken("ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPasswordGarbageToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	err := svc.ResetPassword("not-a-jwt", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProfileViewCountsAndFollowFlag(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db, nil, testJWTSecret)
	graph := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := graph.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	view, err := accounts.ProfileViewByUsername(context.Background(), "alice", bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, view.FollowersCount)
	assert.EqualValues(t, 1, view.FollowingCount)
	assert.True(t, view.IsFollowing)
	assert.Equal(t, "alice", view.Username)

	view, err = accounts.ProfileViewByUsername(context.Background(), "alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, view.IsFollowing, "never relative to self")

	_, err = accounts.ProfileViewByUsername(context.Background(), "ghost", bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileAppliesOnlySetFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, nil, testJWTSecret)

	alice := createUser(t, db, "alice")
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", alice.ID).Update("bio", "original bio").Error)

	profile, err := svc.UpdateProfile(alice.ID, models.UpdateProfileRequest{Website: "https://alice.dev"})
	require.NoError(t, err)
	assert.Equal(t, "original bio", profile.Bio, "unset fields are left alone")
	assert.Equal(t, "https://alice.dev", profile.Website)
}
