package models

import (
	"time"
)

// Post is a short text entry in the feed. UserID is the author and is set
// exactly once at creation. Posts are hard-deleted together with their likes.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Username is the author's current username, joined at read time.
	Username string `gorm:"->;-:migration" json:"username"`
	// Likes is the set of user ids that currently like this post (computed).
	Likes []uint `gorm:"-" json:"likes"`
}
