package entity

import (
	"time"
)

// Platform-level roles, supplied by the identity collaborator.
const (
	RoleUser       = "user"
	RoleModerator  = "moderator"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Username  string    `json:"username" firestore:"username"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Actor is the identity every core operation receives explicitly. A zero
// Actor represents an anonymous caller.
type Actor struct {
	ID   string
	Role string
}

// Elevated reports whether the actor holds a platform-level role that
// bypasses ownership and membership checks.
func (a Actor) Elevated() bool {
	switch a.Role {
	case RoleModerator, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (a Actor) Anonymous() bool {
	return a.ID == ""
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
