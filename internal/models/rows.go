package models

// Read-side shapes. Counts are never stored: each aggregate relation is
// preloaded as SELECT fk, COUNT(*) ... GROUP BY fk, so a parent receives
// either one aggregate record or none.

// LikeCount is one GROUP BY post_id aggregate over likes
type LikeCount struct {
	PostID string
	Count  int64
}

func (LikeCount) TableName() string { return "likes" }

// CommentCount is one GROUP BY post_id aggregate over comments
type CommentCount struct {
	PostID string
	Count  int64
}

func (CommentCount) TableName() string { return "comments" }

// FollowerCount aggregates follows by the followed profile
type FollowerCount struct {
	FollowingID string
	Count       int64
}

func (FollowerCount) TableName() string { return "follows" }

// FollowingCount aggregates follows by the following profile
type FollowingCount struct {
	FollowerID string
	Count      int64
}

func (FollowingCount) TableName() string { return "follows" }

// PostRow is a post joined with its author and aggregate counts
type PostRow struct {
	Post
	Author   *Profile       `gorm:"foreignKey:AuthorID"`
	Likes    []LikeCount    `gorm:"foreignKey:PostID"`
	Comments []CommentCount `gorm:"foreignKey:PostID"`
}

func (PostRow) TableName() string { return "posts" }

// ProfileRow is a profile with follower/following aggregates
type ProfileRow struct {
	Profile
	Followers []FollowerCount  `gorm:"foreignKey:FollowingID"`
	Following []FollowingCount `gorm:"foreignKey:FollowerID"`
}

func (ProfileRow) TableName() string { return "profiles" }

// Aggregate is implemented by every count record above
type Aggregate interface {
	Total() int64
}

func (c LikeCount) Total() int64      { return c.Count }
func (c CommentCount) Total() int64   { return c.Count }
func (c FollowerCount) Total() int64  { return c.Count }
func (c FollowingCount) Total() int64 { return c.Count }
