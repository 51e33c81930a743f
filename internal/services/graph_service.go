package services

import (
	"errors"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// GraphService owns the follow graph: edge mutation with notification
// fan-out, follower/following projections and user search. Edge plus
// notification changes always run inside one transaction so a crashed or
// concurrent toggle can never leave an edge without its matching (or
// correctly absent) follow notification.
type GraphService struct {
	db         *gorm.DB
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewGraphService creates a new GraphService
func NewGraphService(db *gorm.DB) *GraphService {
	return &GraphService{
		db:         db,
		followRepo: repositories.NewPostgresFollowRepository(db),
		userRepo:   repositories.NewPostgresUserRepository(db),
	}
}

// searchLimit caps username search results.
const searchLimit = 20

// ToggleFollow flips the edge actor -> target. Returns true when the edge
// was created (followed), false when it was removed (unfollowed).
func (s *GraphService) ToggleFollow(actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, ErrInvalidOperation
	}
	if _, err := s.userRepo.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var followed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		followRepo := repositories.NewPostgresFollowRepository(tx)
		notifRepo := repositories.NewPostgresNotificationRepository(tx)

		following, err := followRepo.IsFollowing(actorID, targetID)
		if err != nil {
			return err
		}

		if following {
			if err := followRepo.DeleteFollow(actorID, targetID); err != nil {
				return err
			}
			followed = false
			return notifRepo.DeleteFollowNotification(targetID, actorID)
		}

		if err := followRepo.CreateFollow(&models.Follow{FollowerID: actorID, FollowingID: targetID}); err != nil {
			return err
		}
		followed = true
		return notifRepo.CreateNotification(&models.Notification{
			RecipientID: targetID,
			ActorID:     actorID,
			Verb:        models.VerbFollow,
		})
	})
	return followed, err
}

// RemoveFollower forces follower off current's follower list: it removes
// the edge follower -> current and the follow notification that edge left
// on current's ledger.
func (s *GraphService) RemoveFollower(currentID, followerID uint) error {
	if currentID == followerID {
		return ErrInvalidOperation
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		followRepo := repositories.NewPostgresFollowRepository(tx)
		notifRepo := repositories.NewPostgresNotificationRepository(tx)

		if err := followRepo.DeleteFollow(followerID, currentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFollowing
			}
			return err
		}
		return notifRepo.DeleteFollowNotification(currentID, followerID)
	})
}

// Followers lists the users following target, each annotated with whether
// the viewer follows them.
func (s *GraphService) Followers(targetID, viewerID uint) ([]models.UserCompact, error) {
	users, err := s.followRepo.GetFollowers(targetID)
	if err != nil {
		return nil, err
	}
	return s.annotate(users, viewerID)
}

// Following lists the users target follows, each annotated with whether the
// viewer follows them.
func (s *GraphService) Following(targetID, viewerID uint) ([]models.UserCompact, error) {
	users, err := s.followRepo.GetFollowing(targetID)
	if err != nil {
		return nil, err
	}
	return s.annotate(users, viewerID)
}

// IsFollowing reports whether follower currently follows followee.
func (s *GraphService) IsFollowing(followerID, followeeID uint) (bool, error) {
	return s.followRepo.IsFollowing(followerID, followeeID)
}

// Counts returns the follower and following counts for a user.
func (s *GraphService) Counts(userID uint) (followers, following int64, err error) {
	followers, err = s.followRepo.GetFollowersCount(userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.GetFollowingCount(userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

// Search finds users by case-insensitive username substring, capped at 20,
// annotated for the viewer.
func (s *GraphService) Search(query string, viewerID uint) ([]models.UserCompact, error) {
	users, err := s.userRepo.SearchUsers(query, searchLimit)
	if err != nil {
		return nil, err
	}
	return s.annotate(users, viewerID)
}

// annotate converts users to their compact shape with is_following set
// relative to the viewer. One following-set query, not one per row.
func (s *GraphService) annotate(users []models.User, viewerID uint) ([]models.UserCompact, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	followingSet := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		followingSet[id] = true
	}

	profiles := make(map[uint]models.Profile)
	profileRepo := repositories.NewPostgresProfileRepository(s.db)
	for _, u := range users {
		if p, err := profileRepo.GetByUserID(u.ID); err == nil {
			profiles[u.ID] = *p
		}
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = models.UserCompact{
			ID:          u.ID,
			Username:    u.Username,
			IsFollowing: followingSet[u.ID],
		}
		if p, ok := profiles[u.ID]; ok {
			compact[i].AvatarURL = p.AvatarURL
			compact[i].Bio = p.Bio
		}
	}
	return compact, nil
}
