package user

import "time"

// Role gates the admin surface. Exactly one login is the site operator;
// everyone else is a regular user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

const adminLogin = "gbrsuperadmin"

// Classify maps a login to the role assigned at registration. The role
// lives on the stored profile from then on, so additional operators can
// be promoted directly in the database.
func Classify(login string) Role {
	if login == adminLogin {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID           string
	Login        string
	Password     string // bcrypt hash
	Role         Role
	CreatedAt    time.Time
	LastLogin    time.Time
	LastActivity time.Time
}

// IsAdmin reports whether the user may use the admin surface.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
