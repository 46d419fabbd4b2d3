package dto

import (
	"fmt"
	"time"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

// Post is the canonical post shape returned by every feed
type Post struct {
	ID          string            `json:"id"`
	Content     string            `json:"content"`
	CodeSnippet *string           `json:"code_snippet,omitempty"`
	Language    *string           `json:"language,omitempty"`
	MediaURL    *string           `json:"media_url,omitempty"`
	MediaType   *models.MediaType `json:"media_type,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	AuthorID    string            `json:"author_id"`
	Likes       int               `json:"likes"`
	Comments    int               `json:"comments"`
	User        *User             `json:"user"`
	IsLiked     *bool             `json:"is_liked,omitempty"`
}

// PostPage is one window of a feed
type PostPage struct {
	Posts   []Post `json:"posts"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Size    int    `json:"limit"`
	HasMore bool   `json:"has_more"`
}

// CreatePostRequest is the body of POST /posts
type CreatePostRequest struct {
	Content     string            `json:"content" binding:"max=5000"`
	CodeSnippet *string           `json:"code_snippet,omitempty" binding:"omitempty,max=20000"`
	Language    *string           `json:"language,omitempty" binding:"omitempty,max=50"`
	MediaURL    *string           `json:"media_url,omitempty" binding:"omitempty,url"`
	MediaType   *models.MediaType `json:"media_type,omitempty"`
	TagIDs      []string          `json:"tag_ids,omitempty"`
}

// ToPost flattens a joined post row. A row without its author is an
// integrity fault and is returned as an error.
func ToPost(row *models.PostRow) (Post, error) {
	if row == nil {
		return Post{}, apperrors.Backend("map post", fmt.Errorf("nil post row"))
	}
	if row.Author == nil {
		return Post{}, apperrors.Backend("map post", fmt.Errorf("post %s has no author %s", row.ID, row.AuthorID))
	}

	return Post{
		ID:          row.ID,
		Content:     row.Content,
		CodeSnippet: row.CodeSnippet,
		Language:    row.Language,
		MediaURL:    row.MediaURL,
		MediaType:   row.MediaType,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		AuthorID:    row.AuthorID,
		Likes:       FirstCountOrZero(row.Likes),
		Comments:    FirstCountOrZero(row.Comments),
		User:        ToAuthor(row.Author),
	}, nil
}

// ToPosts maps every row, failing on the first integrity fault
func ToPosts(rows []models.PostRow) ([]Post, error) {
	posts := make([]Post, 0, len(rows))
	for i := range rows {
		p, err := ToPost(&rows[i])
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
