package models

import "time"

// NotificationVerb is the kind of event a notification records.
type NotificationVerb string

const (
	VerbLike    NotificationVerb = "like"
	VerbComment NotificationVerb = "comment"
	VerbFollow  NotificationVerb = "follow"
)

// TargetType tags the optional content back-reference of a notification.
// The target is weak: the core never checks that it still exists.
type TargetType string

const (
	TargetNone    TargetType = ""
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// NotificationTarget is the tagged content reference carried by like and
// comment notifications. Follow notifications carry TargetNone.
type NotificationTarget struct {
	Type TargetType
	ID   string
}

// Notification is one row of the per-recipient event ledger. Follow
// notifications are deleted when their edge is removed; like/comment
// notifications live as long as their content does.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	Verb        NotificationVerb `json:"verb" gorm:"size:20;index"`
	TargetType  TargetType       `json:"target_type" gorm:"size:20"`
	TargetID    string           `json:"target_id"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
