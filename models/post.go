// File: /models/post.go
package models

import (
	"time"
)

// Post is immutable once created; there is no edit or delete path.
type Post struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	AuthorID    string    `json:"author_id" gorm:"not null;size:191;index"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}
