package models

import "time"

// Profile holds per-user presentation data. One row per user, created
// alongside the user and cascade-deleted with it. Counts are derived at
// read time, never stored.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	Bio       string    `json:"bio" gorm:"size:500"`
	Website   string    `json:"website" gorm:"size:200"`
	AvatarURL string    `json:"avatar_url"` // opaque reference, resolved by the media layer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileView is a profile joined with its user and derived counts.
type ProfileView struct {
	Profile
	Username       string `json:"username"`
	Email          string `json:"email"`
	PostsCount     int64  `json:"posts_count"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Website   string `json:"website,omitempty" validate:"omitempty,url,max=200"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
