package models

import (
	"time"
)

// Like records a user's membership in a post's like-set.
// The (UserID, PostID) pair is unique; rows are hard-deleted on unlike so the
// unique index stays the single arbiter under concurrent toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
