package models

import (
	"fmt"
	"time"
)

// Conversation is a direct-message thread between two users. PairKey is the
// unordered pair "loID:hiID"; its unique index is what keeps concurrent
// get-or-create calls from racing into two threads for the same pair.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PairKey   string    `json:"-" gorm:"uniqueIndex;size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

// ConversationParticipant links a user into a conversation.
type ConversationParticipant struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	ConversationID uint `json:"conversation_id" gorm:"index;uniqueIndex:idx_conversation_user"`
	UserID         uint `json:"user_id" gorm:"index;uniqueIndex:idx_conversation_user"`
}

// PairKeyFor builds the canonical unordered pair key for two user IDs.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Message belongs to exactly one conversation. Immutable once created
// except for IsRead, which flips when the other participant lists the
// conversation's messages.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"index"`
	SenderID       uint      `json:"sender_id" gorm:"index"`
	Text           string    `json:"text" gorm:"type:text"`
	IsRead         bool      `json:"is_read" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// ConversationSummary is a conversation with its participants and latest
// message, as returned by the conversation list.
type ConversationSummary struct {
	Conversation
	Participants []UserCompact `json:"participants"`
	LastMessage  *Message      `json:"last_message,omitempty"`
}

// CreateConversationRequest opens (or returns) a thread with another user
type CreateConversationRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
