package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FollowingID. The composite unique index makes the edge set idempotent;
// self edges are rejected at the service layer.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
