package types

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// UserRole determines which API surface a user may reach.
type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

// WaitlistStatus tracks a user's standing on the designer waitlist.
type WaitlistStatus string

const (
	WaitlistStatusNone     WaitlistStatus = "none"
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusApproved WaitlistStatus = "approved"
)

// User represents a community member account.
type User struct {
	ID             string         `bun:",pk"             json:"id"`
	Name           string         `bun:",notnull"        json:"name"`
	Email          string         `bun:",notnull,unique" json:"email"`
	Role           UserRole       `bun:",notnull"        json:"role"`
	WaitlistStatus WaitlistStatus `bun:",notnull"        json:"waitlistStatus"`
	CreatedAt      time.Time      `bun:",notnull"        json:"createdAt"`
}

// IsAdmin reports whether the user may perform round management operations.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Session maps a bearer token to a user for the duration of a login.
type Session struct {
	Token     string    `bun:",pk"      json:"token"`
	UserID    string    `bun:",notnull" json:"userId"`
	ExpiresAt time.Time `bun:",notnull" json:"expiresAt"`
	CreatedAt time.Time `bun:",notnull" json:"createdAt"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}
