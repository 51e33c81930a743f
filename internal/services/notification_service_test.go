package services

import (
	"testing"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbFollow, models.NotificationTarget{}))
	require.NoError(t, svc.Record(alice.ID, carol.ID, models.VerbLike, models.NotificationTarget{Type: models.TargetPost, ID: "abc123"}))

	notifs, total, err := svc.ListFor(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, notifs, 2)

	assert.Equal(t, carol.ID, notifs[0].ActorID, "latest record comes first")
	assert.Equal(t, models.VerbLike, notifs[0].Verb)
	assert.Equal(t, bob.ID, notifs[1].ActorID)
}

func TestNotificationPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	for i := 0; i < 7; i++ {
		require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbLike, models.NotificationTarget{Type: models.TargetPost, ID: "p"}))
	}

	firstPage, total, err := svc.ListFor(alice.ID, 1, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	assert.Len(t, firstPage, 5)

	secondPage, _, err := svc.ListFor(alice.ID, 2, 5)
	require.NoError(t, err)
	assert.Len(t, secondPage, 2)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbFollow, models.NotificationTarget{}))
	require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbComment, models.NotificationTarget{Type: models.TargetComment, ID: "1"}))

	unread, err := svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	require.NoError(t, svc.MarkAllRead(alice.ID))
	require.NoError(t, svc.MarkAllRead(alice.ID))

	unread, err = svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// A record landing after the sweep stays unread.
	require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbFollow, models.NotificationTarget{}))
	unread, err = svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestUnreadCountScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Record(alice.ID, bob.ID, models.VerbFollow, models.NotificationTarget{}))
	require.NoError(t, svc.Record(bob.ID, alice.ID, models.VerbFollow, models.NotificationTarget{}))

	require.NoError(t, svc.MarkAllRead(alice.ID))

	bobUnread, err := svc.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, bobUnread, "another recipient's sweep must not touch bob")
}
