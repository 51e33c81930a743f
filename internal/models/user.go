package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an authenticated identity. Its Profile row is created in the same
// transaction, so every user carries exactly one profile for its lifetime.
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email           string    `json:"email" gorm:"uniqueIndex"`
	Password        string    `json:"-"` // bcrypt hash
	FirebaseUID     string    `json:"firebase_uid,omitempty" gorm:"index"`
	PasswordVersion int       `json:"-" gorm:"default:0"` // bumped on password change, invalidates outstanding reset tokens
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserCompact is the shape embedded in user lists (followers, suggestions,
// search results). IsFollowing is relative to the requesting viewer.
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsFollowing bool   `json:"is_following"`
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest asks for a one-time reset token for the given email
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm redeems a reset token with a new password
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
