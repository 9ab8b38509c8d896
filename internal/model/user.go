package model

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser   Role = "user"
	RoleExpert Role = "expert"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleAdmin:
		return true
	}
	return false
}

// User is an account. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Label renders the user the way dashboards show a client: "name (email)".
func (u *User) Label() string {
	if u == nil {
		return "Unknown user"
	}
	name := u.DisplayName
	if name == "" {
		name = "Unnamed"
	}
	if u.Email == "" {
		return name
	}
	return name + " (" + u.Email + ")"
}
