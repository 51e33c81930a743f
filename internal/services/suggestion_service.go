package services

import (
	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// SuggestionService derives "people you may want to follow" from the
// graph. Read-only: it persists nothing of its own.
type SuggestionService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
	graph      *GraphService
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{
		followRepo: repositories.NewPostgresFollowRepository(db),
		userRepo:   repositories.NewPostgresUserRepository(db),
		graph:      NewGraphService(db),
	}
}

const (
	suggestionLimit = 10
	// Below this many friend-of-friend candidates the pool is topped up
	// with random users, so new accounts still get suggestions.
	fallbackThreshold = 5
)

// Suggest returns up to suggestionLimit users the given user might want to
// follow. Friend-of-friend candidates come first; random top-up fills the
// rest when the graph signal is thin. Never includes the user or anyone
// already followed.
func (s *SuggestionService) Suggest(userID uint) ([]models.UserCompact, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	excluded := append([]uint{userID}, followingIDs...)

	candidateIDs, err := s.followRepo.GetFollowedByUsers(followingIDs, excluded, suggestionLimit)
	if err != nil {
		return nil, err
	}

	ids := candidateIDs
	if len(candidateIDs) < fallbackThreshold {
		random, err := s.userRepo.GetRandomUsersExcluding(excluded, suggestionLimit)
		if err != nil {
			return nil, err
		}
		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			seen[id] = true
		}
		for _, u := range random {
			if !seen[u.ID] {
				seen[u.ID] = true
				ids = append(ids, u.ID)
			}
		}
	}
	if len(ids) > suggestionLimit {
		ids = ids[:suggestionLimit]
	}

	users, err := s.userRepo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	// Restore A-then-B precedence lost by the IN query.
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}

	return s.graph.annotate(ordered, userID)
}
