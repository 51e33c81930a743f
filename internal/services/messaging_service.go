package services

import (
	"errors"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// MessagingService owns conversations and their message history. A
// conversation is keyed by its unordered participant pair, so GetOrCreate
// is symmetric in its arguments and concurrent calls converge on one row.
type MessagingService struct {
	db       *gorm.DB
	convRepo repositories.ConversationRepository
	msgRepo  repositories.MessageRepository
	userRepo repositories.UserRepository
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(db *gorm.DB) *MessagingService {
	return &MessagingService{
		db:       db,
		convRepo: repositories.NewPostgresConversationRepository(db),
		msgRepo:  repositories.NewPostgresMessageRepository(db),
		userRepo: repositories.NewPostgresUserRepository(db),
	}
}

// GetOrCreate returns the conversation between the two users, creating it
// with both participants when none exists. A concurrent creation of the
// same pair trips the pair-key unique index; the loser re-reads and
// returns the winner's row.
func (s *MessagingService) GetOrCreate(userA, userB uint) (*models.Conversation, error) {
	if userA == userB {
		return nil, ErrInvalidOperation
	}

	conv, err := s.convRepo.FindBetween(userA, userB)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = &models.Conversation{}
	if err := s.convRepo.CreateWithParticipants(conv, userA, userB); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.convRepo.FindBetween(userA, userB)
		}
		return nil, err
	}
	return conv, nil
}

// ListFor returns the user's conversations newest-activity-first, each with
// its participants and latest message as a summary.
func (s *MessagingService) ListFor(userID uint) ([]models.ConversationSummary, error) {
	convs, err := s.convRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, len(convs))
	for i, conv := range convs {
		participantIDs, err := s.convRepo.GetParticipantIDs(conv.ID)
		if err != nil {
			return nil, err
		}
		users, err := s.userRepo.GetUsersByIDs(participantIDs)
		if err != nil {
			return nil, err
		}
		compact := make([]models.UserCompact, len(users))
		for j, u := range users {
			compact[j] = models.UserCompact{ID: u.ID, Username: u.Username}
		}

		latest, err := s.msgRepo.GetLatest(conv.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = models.ConversationSummary{
			Conversation: conv,
			Participants: compact,
			LastMessage:  latest,
		}
	}
	return summaries, nil
}

// PostMessage appends a message from sender and bumps the conversation's
// activity timestamp. Only participants may post.
func (s *MessagingService) PostMessage(conversationID, senderID uint, text string) (*models.Message, error) {
	if _, err := s.convRepo.GetByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isParticipant, err := s.convRepo.IsParticipant(conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrForbidden
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresMessageRepository(tx).CreateMessage(message); err != nil {
			return err
		}
		return repositories.NewPostgresConversationRepository(tx).Touch(conversationID)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns the conversation's messages oldest-first for
// display. Listing is acknowledgment: every unread message not authored by
// the viewer is marked read as a side effect. Only participants may list.
func (s *MessagingService) ListMessages(conversationID, viewerID uint) ([]models.Message, error) {
	isParticipant, err := s.convRepo.IsParticipant(conversationID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrForbidden
	}

	if err := s.msgRepo.MarkReadForViewer(conversationID, viewerID); err != nil {
		return nil, err
	}
	return s.msgRepo.ListByConversation(conversationID)
}
