package domain

import (
	"time"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account known to the auth service.
// Role is always RoleUser at registration; admins are promoted directly in the store.
type User struct {
	ID           string    `bson:"_id,omitempty" firestore:"-" json:"id"`
	Email        string    `bson:"email" firestore:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" firestore:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role      `bson:"role" firestore:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" firestore:"updatedAt" json:"updatedAt"`
}

// UserProfile is the part of a user the client app needs to decide what to show.
type UserProfile struct {
	Role Role `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Profile() UserProfile {
	return UserProfile{Role: u.Role}
}
