package services

import (
	"testing"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	followed, err := svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, followed)

	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	followed, err = svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, followed)

	following, err = svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestToggleFollowSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count, "graph must be unchanged after rejected self-follow")
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.ToggleFollow(alice.ID, alice.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleFollowNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	var notifs []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", bob.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.VerbFollow, notifs[0].Verb)
	assert.Equal(t, alice.ID, notifs[0].ActorID)

	// Unfollow retracts the notification.
	_, err = svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("recipient_id = ?", bob.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRemoveFollower(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// bob follows alice; alice throws bob out.
	_, err := svc.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFollower(alice.ID, bob.ID))

	following, err := svc.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND actor_id = ? AND verb = ?", alice.ID, bob.ID, models.VerbFollow).
		Count(&count).Error)
	assert.Zero(t, count, "follow notification must be retracted with the edge")
}

func TestRemoveFollowerNotFollowing(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := svc.RemoveFollower(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestRemoveFollowerSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")

	err := svc.RemoveFollower(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestFollowersAndFollowingAnnotation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	// bob and carol follow alice; the viewer (bob) follows carol too.
	_, err := svc.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(bob.ID, carol.ID)
	require.NoError(t, err)

	followers, err := svc.Followers(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	byUsername := make(map[string]models.UserCompact)
	for _, f := range followers {
		byUsername[f.Username] = f
	}
	assert.False(t, byUsername["bob"].IsFollowing, "viewer does not follow themselves")
	assert.True(t, byUsername["carol"].IsFollowing, "viewer follows carol")

	following, err := svc.Following(bob.ID, carol.ID)
	require.NoError(t, err)
	assert.Len(t, following, 2) // alice and carol
}

func TestSearchCapAndCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db)

	viewer := createUser(t, db, "viewer")
	for i := 0; i < 25; i++ {
		createUser(t, db, "Finder"+string(rune('a'+i)))
	}

	results, err := svc.Search("finder", viewer.ID)
	require.NoError(t, err)
	assert.Len(t, results, searchLimit, "search is capped")

	results, err = svc.Search("FINDERA", viewer.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Findera", results[0].Username)
}
