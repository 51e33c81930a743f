package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService owns identity lifecycle: registration (always paired with
// a profile), credential checks, Firebase identity linking, profile views
// with derived counts, and the password-reset token contract.
type AccountService struct {
	db        *gorm.DB
	userRepo  repositories.UserRepository
	profRepo  repositories.ProfileRepository
	tokenRepo repositories.ResetTokenRepository
	postRepo  repositories.PostRepository
	graph     *GraphService
	jwtSecret []byte
}

// NewAccountService creates a new AccountService
func NewAccountService(db *gorm.DB, postRepo repositories.PostRepository, jwtSecret string) *AccountService {
	return &AccountService{
		db:        db,
		userRepo:  repositories.NewPostgresUserRepository(db),
		profRepo:  repositories.NewPostgresProfileRepository(db),
		tokenRepo: repositories.NewPostgresResetTokenRepository(db),
		postRepo:  postRepo,
		graph:     NewGraphService(db),
		jwtSecret: []byte(jwtSecret),
	}
}

const resetTokenTTL = time.Hour

// Register creates a user and its paired profile in one transaction.
func (s *AccountService) Register(username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.ToLower(username),
		Email:    strings.ToLower(email),
		Password: string(hashed),
	}
	if err := s.userRepo.CreateUserWithProfile(user, &models.Profile{}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks email+password and returns the user on success.
func (s *AccountService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// LinkFirebaseUser finds the user for a verified Firebase identity,
// linking by UID, falling back to email, creating user+profile when
// neither matches.
func (s *AccountService) LinkFirebaseUser(firebaseUID, email, name string) (*models.User, error) {
	user, err := s.userRepo.GetUserByFirebaseUID(firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.userRepo.GetUserByEmail(strings.ToLower(email))
	if err == nil {
		user.FirebaseUID = firebaseUID
		if err := s.userRepo.UpdateUser(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := strings.ToLower(name)
	if username == "" {
		username = "user-" + firebaseUID[:8]
	}
	user = &models.User{
		Username:    username,
		Email:       strings.ToLower(email),
		FirebaseUID: firebaseUID,
	}
	if err := s.userRepo.CreateUserWithProfile(user, &models.Profile{}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// ProfileViewByUsername builds a profile with derived counts and the
// viewer-relative is_following flag. Counts are computed, never stored.
func (s *AccountService) ProfileViewByUsername(ctx context.Context, username string, viewerID uint) (*models.ProfileView, error) {
	user, err := s.userRepo.GetUserByUsername(strings.ToLower(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.profileView(ctx, user, viewerID)
}

// ProfileViewByID builds the profile view for a user ID.
func (s *AccountService) ProfileViewByID(ctx context.Context, userID, viewerID uint) (*models.ProfileView, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.profileView(ctx, user, viewerID)
}

func (s *AccountService) profileView(ctx context.Context, user *models.User, viewerID uint) (*models.ProfileView, error) {
	profile, err := s.profRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.graph.Counts(user.ID)
	if err != nil {
		return nil, err
	}

	var posts int64
	if s.postRepo != nil {
		posts, err = s.postRepo.CountByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	isFollowing := false
	if viewerID != 0 && viewerID != user.ID {
		isFollowing, err = s.graph.IsFollowing(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.ProfileView{
		Profile:        *profile,
		Username:       user.Username,
		Email:          user.Email,
		PostsCount:     posts,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// UpdateProfile applies non-empty fields of the request to the user's profile.
func (s *AccountService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	if err := s.profRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// IssueResetToken mints a one-time, time-bounded reset token for the
// account with the given email. The token is a signed JWT whose JTI is
// persisted together with the user's current password version; either a
// redeemed JTI or a bumped version makes it worthless. Delivering the
// token to the user is the mail collaborator's job.
func (s *AccountService) IssueResetToken(email string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	jti := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.tokenRepo.CreateToken(&models.PasswordResetToken{
		JTI:             jti,
		UserID:          user.ID,
		PasswordVersion: user.PasswordVersion,
		ExpiresAt:       expiresAt,
	}); err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ResetPassword redeems a reset token: verify signature and expiry, check
// the persisted JTI is unused and still matches the user's password
// version, then set the new hash, bump the version and stamp the token
// used — all in one transaction (check-then-invalidate).
func (s *AccountService) ResetPassword(tokenString, newPassword string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tokenRepo := repositories.NewPostgresResetTokenRepository(tx)
		userRepo := repositories.NewPostgresUserRepository(tx)

		stored, err := tokenRepo.GetByJTI(claims.ID)
		if err != nil {
			return ErrInvalidToken
		}
		if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
			return ErrInvalidToken
		}

		user, err := userRepo.GetUserByID(stored.UserID)
		if err != nil {
			return ErrInvalidToken
		}
		if user.PasswordVersion != stored.PasswordVersion {
			return ErrInvalidToken
		}

		user.Password = string(hashed)
		user.PasswordVersion++
		if err := userRepo.UpdateUser(user); err != nil {
			return err
		}
		return tokenRepo.MarkUsed(claims.ID)
	})
}
