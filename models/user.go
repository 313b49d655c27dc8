// File: /models/user.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the persisted social-graph record. The five relationship sets live
// on the row itself as JSON columns, so every save is a single-record write.
// `following`/`followers` are asymmetric directed edges (followers is the
// inverse view of other users' following). `friends` is symmetric and must
// appear on both endpoints or neither. The request sets are pairwise inverses
// tracking pending friend requests.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:191"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string `json:"-" gorm:"not null;size:255"`

	Following              IDSet `json:"following" gorm:"type:json"`
	Followers              IDSet `json:"followers" gorm:"type:json"`
	Friends                IDSet `json:"friends" gorm:"type:json"`
	SentFriendRequests     IDSet `json:"sent_friend_requests" gorm:"type:json"`
	ReceivedFriendRequests IDSet `json:"received_friend_requests" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind normalizes legacy rows on load. Records written before a
// relationship set existed scan as nil; treating them as empty sets here
// means no operation ever has to guard against missing fields.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Normalize()
	return nil
}

// Normalize replaces nil relationship sets with empty ones.
func (u *User) Normalize() {
	if u.Following == nil {
		u.Following = IDSet{}
	}
	if u.Followers == nil {
		u.Followers = IDSet{}
	}
	if u.Friends == nil {
		u.Friends = IDSet{}
	}
	if u.SentFriendRequests == nil {
		u.SentFriendRequests = IDSet{}
	}
	if u.ReceivedFriendRequests == nil {
		u.ReceivedFriendRequests = IDSet{}
	}
}

// UserSummary is the reduced shape returned by friend and search listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary converts a User to its listing shape.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
