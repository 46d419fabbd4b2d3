package dto

import (
	"time"

	"github.com/pratyush0898/OnlyCodes/internal/models"
)

// User is the public profile representation. Nullable text arrives as "".
// The counts are only present on profile reads, not on embedded authors.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	Website        string    `json:"website"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FollowersCount *int      `json:"followers_count,omitempty"`
	FollowingCount *int      `json:"following_count,omitempty"`
}

// CreateProfileRequest claims a username for the authenticated account
type CreateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

// UpdateProfileRequest carries only the fields to change. Username is immutable.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
	Website   *string `json:"website,omitempty" binding:"omitempty,url"`
}

// ToAuthor maps a bare profile, as embedded in a post
func ToAuthor(p *models.Profile) *User {
	if p == nil {
		return nil
	}
	return &User{
		ID:        p.ID,
		Username:  p.Username,
		Name:      p.Name,
		Bio:       stringOrEmpty(p.Bio),
		AvatarURL: stringOrEmpty(p.AvatarURL),
		Website:   stringOrEmpty(p.Website),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToUser maps a profile read with its follow aggregates
func ToUser(row *models.ProfileRow) *User {
	if row == nil {
		return nil
	}
	u := ToAuthor(&row.Profile)
	followers := FirstCountOrZero(row.Followers)
	following := FirstCountOrZero(row.Following)
	u.FollowersCount = &followers
	u.FollowingCount = &following
	return u
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
