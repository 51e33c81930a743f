package services

import (
	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationService is the per-recipient event ledger. Records are
// append-only here; the only deletion path is the follow-edge removal in
// GraphService.
type NotificationService struct {
	notifRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		notifRepo: repositories.NewPostgresNotificationRepository(db),
	}
}

// Record appends a notification. No dedup: callers that toggle (like) are
// responsible for guarding repeats.
func (s *NotificationService) Record(recipientID, actorID uint, verb models.NotificationVerb, target models.NotificationTarget) error {
	return s.notifRepo.CreateNotification(&models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		TargetType:  target.Type,
		TargetID:    target.ID,
	})
}

// ListFor returns the recipient's notifications newest-first with a total
// for pagination.
func (s *NotificationService) ListFor(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	return s.notifRepo.GetByRecipientID(recipientID, page, limit)
}

// UnreadCount returns how many of the recipient's notifications are unread.
func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	return s.notifRepo.GetUnreadCount(recipientID)
}

// MarkAllRead flips every unread notification of the recipient. Idempotent;
// notifications recorded after the call stay unread.
func (s *NotificationService) MarkAllRead(recipientID uint) error {
	return s.notifRepo.MarkAllAsRead(recipientID)
}
