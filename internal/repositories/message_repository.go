package repositories

import (
	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	ListByConversation(conversationID uint) ([]models.Message, error)
	GetLatest(conversationID uint) (*models.Message, error)
	MarkReadForViewer(conversationID, viewerID uint) error
	GetUnreadCount(conversationID, viewerID uint) (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage appends a message to its conversation
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByConversation returns a conversation's messages oldest-first, the
// order they are displayed in.
func (r *PostgresMessageRepository) ListByConversation(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// GetLatest returns the newest message of a conversation, or nil when the
// conversation is empty.
func (r *PostgresMessageRepository) GetLatest(conversationID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkReadForViewer marks every unread message in the conversation that the
// viewer did not author. The viewer's own messages are left untouched.
func (r *PostgresMessageRepository) MarkReadForViewer(conversationID, viewerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Update("is_read", true).Error
}

// GetUnreadCount counts messages in the conversation the viewer has not read
func (r *PostgresMessageRepository) GetUnreadCount(conversationID, viewerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Count(&count).Error
	return count, err
}
