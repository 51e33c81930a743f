package models

import "time"

// PasswordResetToken is a one-time, time-bounded proof tied to one user and
// one password version. Redeeming it stamps UsedAt; a bumped password
// version on the user invalidates any token issued before the change.
type PasswordResetToken struct {
	JTI             string     `json:"-" gorm:"primaryKey;size:36"`
	UserID          uint       `json:"-" gorm:"index"`
	PasswordVersion int        `json:"-"`
	ExpiresAt       time.Time  `json:"-"`
	UsedAt          *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"-"`
}
