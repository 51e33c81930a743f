package repositories

import (
	"errors"
	"time"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation operations
type ConversationRepository interface {
	FindBetween(userA, userB uint) (*models.Conversation, error)
	CreateWithParticipants(conv *models.Conversation, userA, userB uint) error
	GetByID(id uint) (*models.Conversation, error)
	ListForUser(userID uint) ([]models.Conversation, error)
	GetParticipantIDs(conversationID uint) ([]uint, error)
	IsParticipant(conversationID, userID uint) (bool, error)
	Touch(conversationID uint) error
}

// PostgresConversationRepository implements ConversationRepository for PostgreSQL
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// FindBetween looks up the conversation whose participant set is exactly
// {userA, userB}: userA's conversation memberships filtered by userB's
// membership, not a table scan.
func (r *PostgresConversationRepository) FindBetween(userA, userB uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("id IN (?)",
		r.db.Table("conversation_participants").Select("conversation_id").Where("user_id = ?", userA),
	).Where("id IN (?)",
		r.db.Table("conversation_participants").Select("conversation_id").Where("user_id = ?", userB),
	).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// CreateWithParticipants inserts the conversation and both participant rows
// in one transaction (both-or-neither). The pair-key unique index turns a
// concurrent duplicate into gorm.ErrDuplicatedKey for the caller to retry.
func (r *PostgresConversationRepository) CreateWithParticipants(conv *models.Conversation, userA, userB uint) error {
	conv.PairKey = models.PairKeyFor(userA, userB)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		participants := []models.ConversationParticipant{
			{ConversationID: conv.ID, UserID: userA},
			{ConversationID: conv.ID, UserID: userB},
		}
		return tx.Create(&participants).Error
	})
}

// GetByID retrieves a conversation by ID
func (r *PostgresConversationRepository) GetByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListForUser returns the user's conversations, most recently updated first
func (r *PostgresConversationRepository) ListForUser(userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("id IN (?)",
		r.db.Table("conversation_participants").Select("conversation_id").Where("user_id = ?", userID),
	).Order("updated_at DESC").Find(&convs).Error
	return convs, err
}

// GetParticipantIDs returns the user IDs participating in a conversation
func (r *PostgresConversationRepository) GetParticipantIDs(conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// IsParticipant checks whether a user belongs to a conversation
func (r *PostgresConversationRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// Touch bumps the conversation's updated_at to now
func (r *PostgresConversationRepository) Touch(conversationID uint) error {
	res := r.db.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("conversation not found")
	}
	return nil
}
