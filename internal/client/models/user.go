// Package models defines the entity and view-state types handled by the
// LegeClair client: users, documents, audits and their corrections, plus the
// transient filter/sort/pagination state consumed by the store derivations.
package models

import "time"

// Role classifies a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated account identity. It is owned by the session
// store while a session is active and nil otherwise.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Avatar      string    `json:"avatar,omitempty"`
	Role        Role      `json:"role"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Initials returns the first letter of each name part, e.g. "JD".
func (u *User) Initials() string {
	s := ""
	if u.FirstName != "" {
		s += string([]rune(u.FirstName)[0])
	}
	if u.LastName != "" {
		s += string([]rune(u.LastName)[0])
	}
	return s
}
