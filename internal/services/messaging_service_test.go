package services

import (
	"testing"
	"time"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	first, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)

	second, err := svc.GetOrCreate(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "argument order must not matter")

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one conversation per pair")
}

func TestGetOrCreateSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.GetOrCreate(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestGetOrCreateAddsBothParticipants(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conv, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)

	var participants []models.ConversationParticipant
	require.NoError(t, db.Where("conversation_id = ?", conv.ID).Find(&participants).Error)
	require.Len(t, participants, 2)
}

func TestPostMessageForbiddenForNonParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mallory := createUser(t, db, "mallory")

	conv, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.PostMessage(conv.ID, mallory.ID, "let me in")
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&count).Error)
	assert.Zero(t, count, "rejected message must not be stored")
}

func TestPostMessageUnknownConversation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.PostMessage(9999, alice.ID, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostMessageBumpsConversation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conv, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)
	createdAt := conv.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	_, err = svc.PostMessage(conv.ID, alice.ID, "hi")
	require.NoError(t, err)

	var reloaded models.Conversation
	require.NoError(t, db.First(&reloaded, conv.ID).Error)
	assert.True(t, reloaded.UpdatedAt.After(createdAt), "posting must bump updated_at")
}

func TestListMessagesOrderAndReadMarking(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conv, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.PostMessage(conv.ID, bob.ID, "hi")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.PostMessage(conv.ID, bob.ID, "hello")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.PostMessage(conv.ID, alice.ID, "hey")
	require.NoError(t, err)

	messages, err := svc.ListMessages(conv.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// Oldest first for display.
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, "hello", messages[1].Text)
	assert.Equal(t, "hey", messages[2].Text)

	// Viewing acknowledges the other side's messages only.
	assert.True(t, messages[0].IsRead)
	assert.True(t, messages[1].IsRead)
	assert.False(t, messages[2].IsRead, "viewer's own message is untouched")
}

func TestListMessagesForbiddenForNonParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mallory := createUser(t, db, "mallory")

	conv, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.ListMessages(conv.ID, mallory.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListForOrdersByActivity(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessagingService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	withBob, err := svc.GetOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)
	withCarol, err := svc.GetOrCreate(alice.ID, carol.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.PostMessage(withBob.ID, bob.ID, "newest activity")
	require.NoError(t, err)

	summaries, err := svc.ListFor(alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, withBob.ID, summaries[0].ID, "most recently updated first")
	assert.Equal(t, withCarol.ID, summaries[1].ID)

	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "newest activity", summaries[0].LastMessage.Text)
	assert.Nil(t, summaries[1].LastMessage, "empty conversation has no summary message")
}
