package model

import (
	"strings"
	"time"
)

// Expert is a bookable provider. UserID links the profile to the account that
// registered it; admin-created experts have none.
type Expert struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	CategoryID string    `json:"category_id"`
	AvatarPath string    `json:"avatar_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Matches reports whether term occurs in name, email or bio, ignoring case.
// A blank term matches everything.
func (e *Expert) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Email), term) ||
		strings.Contains(strings.ToLower(e.Bio), term)
}

// ExpertView is an expert with its category name resolved.
type ExpertView struct {
	Expert
	CategoryName string `json:"category_name"`
}
