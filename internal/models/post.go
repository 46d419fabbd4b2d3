package models

import (
	"time"

	"gorm.io/gorm"
)

// MediaType classifies an attached media URL
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Valid reports whether t is one of the known media types
func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// Post is a text, code or media share. Content may be empty only when a
// code snippet or media URL is present. Language is set iff CodeSnippet is,
// MediaType iff MediaURL is.
type Post struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	AuthorID    string     `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Content     string     `gorm:"type:text;not null;default:''" json:"content"`
	CodeSnippet *string    `gorm:"type:text" json:"code_snippet,omitempty"`
	Language    *string    `gorm:"size:50;index" json:"language,omitempty"`
	MediaURL    *string    `gorm:"type:text" json:"media_url,omitempty"`
	MediaType   *MediaType `gorm:"size:10" json:"media_type,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment on a post. Only counted by the feeds.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like is unique per (post, user)
type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user;index" json:"post_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag names are unique
type Tag struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:50" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTag is the posts <-> tags join table
type PostTag struct {
	PostID string `gorm:"primaryKey;type:uuid" json:"post_id"`
	TagID  string `gorm:"primaryKey;type:uuid;index" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	return nil
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = generateUUID()
	}
	return nil
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = generateUUID()
	}
	return nil
}
