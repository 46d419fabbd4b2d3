package repository

import (
	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Page selects a window of a feed. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Limits turns caller-supplied paging into a Page
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits are used when no configuration is supplied
var DefaultLimits = Limits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}

// Page applies the default to a non-positive size and clamps to the
// maximum. The page number is left as given and validated by the query.
func (l Limits) Page(number, size int) Page {
	if size <= 0 {
		size = l.DefaultSize
	}
	if l.MaxSize > 0 && size > l.MaxSize {
		size = l.MaxSize
	}
	return Page{Number: number, Size: size}
}

// Validate rejects pages that do not describe a window
func (p Page) Validate() error {
	if p.Number < 1 {
		return apperrors.InvalidInput("page", "page must be 1 or greater")
	}
	if p.Size < 1 {
		return apperrors.InvalidInput("limit", "limit must be 1 or greater")
	}
	return nil
}

// Window returns the inclusive row range [from, to] of the page
func (p Page) Window() (from, to int) {
	from = (p.Number - 1) * p.Size
	to = p.Number*p.Size - 1
	return from, to
}

// HasMore reports whether rows exist past this page
func (p Page) HasMore(total int64) bool {
	return int64(p.Number)*int64(p.Size) < total
}

func newPostPage(posts []dto.Post, total int64, page Page) *dto.PostPage {
	if posts == nil {
		posts = []dto.Post{}
	}
	return &dto.PostPage{
		Posts:   posts,
		Total:   total,
		Page:    page.Number,
		Size:    page.Size,
		HasMore: page.HasMore(total),
	}
}
