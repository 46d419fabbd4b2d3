package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public face of an account. ID matches the identity
// provider's subject; Username is the routing key and never changes.
type Profile struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string  `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Name      string  `gorm:"size:100" json:"name"`
	Bio       *string `gorm:"type:text" json:"bio"`
	AvatarURL *string `gorm:"type:text" json:"avatar_url"`
	Website   *string `gorm:"type:text" json:"website"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is the social graph edge FollowerID -> FollowingID
type Follow struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index;check:chk_follows_not_self,follower_id <> following_id" json:"follower_id"`
	FollowingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserPreference drives the For You feed. One row per user.
type UserPreference struct {
	ID                 string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID             string   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	PreferredTags      []string `gorm:"type:jsonb;serializer:json" json:"preferred_tags"`
	PreferredLanguages []string `gorm:"type:jsonb;serializer:json" json:"preferred_languages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = generateUUID()
	}
	return nil
}

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	if p.PreferredTags == nil {
		p.PreferredTags = []string{}
	}
	if p.PreferredLanguages == nil {
		p.PreferredLanguages = []string{}
	}
	return nil
}

// Helper function for UUID generation
func generateUUID() string {
	return uuid.New().String()
}
