// Package seed fills a database with fake developers, posts and engagement
// for local development.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options sizes a seeding run
type Options struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
	Follows  int
	// Seed makes runs reproducible. Zero picks a time based seed.
	Seed int64
}

// DefaultOptions is a small but varied dev dataset
func DefaultOptions() Options {
	return Options{Users: 25, Posts: 150, Comments: 300, Likes: 600, Follows: 120}
}

// Summary counts what a run created
type Summary struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
	Follows  int
}

var tagNames = []string{"go", "rust", "webdev", "databases", "devops", "algorithms", "til", "opensource", "testing", "career"}

var languages = []string{"go", "rust", "python", "typescript", "sql", "java", "c"}

var snippets = map[string]string{
	"go":         "func main() {\n\tfmt.Println(\"hello\")\n}",
	"rust":       "fn main() {\n    println!(\"hello\");\n}",
	"python":     "def main():\n    print(\"hello\")",
	"typescript": "const greet = (name: string) => `hello ${name}`;",
	"sql":        "SELECT id, username FROM profiles ORDER BY created_at DESC LIMIT 10;",
	"java":       "public static void main(String[] args) {\n    System.out.println(\"hello\");\n}",
	"c":          "int main(void) {\n    puts(\"hello\");\n    return 0;\n}",
}

var commentTemplates = []string{
	"Nice, TIL",
	"This saved me an afternoon",
	"Have you benchmarked it?",
	"Clean solution",
	"Would love a write-up on this",
	"LGTM",
}

// Seeder writes fake data through the repositories so the same invariants
// apply as for API writes
type Seeder struct {
	db    *gorm.DB
	repos *repository.Repositories
	opts  Options
	rng   *rand.Rand
	now   time.Time
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	_ = gofakeit.Seed(seed)

	return &Seeder{
		db:    db,
		repos: repository.New(db),
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now().UTC(),
	}
}

// Run seeds tags, profiles, posts, the follow graph, likes, comments and
// preferences in dependency order
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	logger.Log.Info("Creating tags...")
	tags, err := s.repos.Tags.Ensure(ctx, tagNames)
	if err != nil {
		return nil, fmt.Errorf("failed to seed tags: %w", err)
	}

	logger.Log.Info("Creating profiles...")
	userIDs, err := s.seedProfiles(ctx, s.opts.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to seed profiles: %w", err)
	}
	summary.Users = len(userIDs)
	if len(userIDs) == 0 {
		return summary, nil
	}

	logger.Log.Info("Creating posts...")
	tagIDs := lo.Map(tags, func(t models.Tag, _ int) string { return t.ID })
	postIDs, err := s.seedPosts(ctx, userIDs, tagIDs, s.opts.Posts)
	if err != nil {
		return nil, fmt.Errorf("failed to seed posts: %w", err)
	}
	summary.Posts = len(postIDs)

	logger.Log.Info("Creating follows...")
	if summary.Follows, err = s.seedFollows(ctx, userIDs, s.opts.Follows); err != nil {
		return nil, fmt.Errorf("failed to seed follows: %w", err)
	}

	if len(postIDs) > 0 {
		logger.Log.Info("Creating likes...")
		if summary.Likes, err = s.seedLikes(ctx, userIDs, postIDs, s.opts.Likes); err != nil {
			return nil, fmt.Errorf("failed to seed likes: %w", err)
		}

		logger.Log.Info("Creating comments...")
		if summary.Comments, err = s.seedComments(ctx, userIDs, postIDs, s.opts.Comments); err != nil {
			return nil, fmt.Errorf("failed to seed comments: %w", err)
		}
	}

	logger.Log.Info("Creating preferences...")
	if err := s.seedPreferences(ctx, userIDs, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to seed preferences: %w", err)
	}

	logger.Log.Info("Seeding complete",
		zap.Int("users", summary.Users),
		zap.Int("posts", summary.Posts),
		zap.Int("follows", summary.Follows),
		zap.Int("likes", summary.Likes),
		zap.Int("comments", summary.Comments))
	return summary, nil
}

// Clean deletes every row the seeder can create, children first
func (s *Seeder) Clean(ctx context.Context) error {
	tables := []string{"user_preferences", "comments", "likes", "post_tags", "follows", "posts", "tags", "profiles"}
	for _, table := range tables {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedProfiles(ctx context.Context, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for len(ids) < count {
		username := usernameFrom(gofakeit.Username())
		if len(username) < 3 {
			continue
		}

		user, err := s.repos.Profiles.Create(ctx, &models.Profile{
			Username:  username,
			Name:      gofakeit.Name(),
			Bio:       lo.ToPtr(gofakeit.HipsterSentence()),
			AvatarURL: lo.ToPtr("https://api.dicebear.com/7.x/identicon/png?seed=" + username),
		})
		if err != nil {
			if apperrors.CodeOf(err) == apperrors.ErrConflict {
				continue
			}
			return nil, err
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

// usernameFrom keeps the lowercase alphanumerics of a generated name
func usernameFrom(raw string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, raw)
	if len(name) > 30 {
		name = name[:30]
	}
	return name
}

func (s *Seeder) seedPosts(ctx context.Context, userIDs, tagIDs []string, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		post := &models.Post{
			AuthorID:  userIDs[s.rng.Intn(len(userIDs))],
			Content:   gofakeit.HipsterSentence(),
			CreatedAt: s.pastTime(),
		}

		switch s.rng.Intn(4) {
		case 0, 1:
			lang := languages[s.rng.Intn(len(languages))]
			post.CodeSnippet = lo.ToPtr(snippets[lang])
			post.Language = lo.ToPtr(lang)
		case 2:
			mediaType := models.MediaTypeImage
			if s.rng.Intn(5) == 0 {
				mediaType = models.MediaTypeVideo
			}
			post.MediaURL = lo.ToPtr("https://picsum.photos/seed/" + gofakeit.Word() + "/800/600")
			post.MediaType = &mediaType
		}

		created, err := s.repos.Posts.Create(ctx, post, s.pick(tagIDs, 3))
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func (s *Seeder) seedFollows(ctx context.Context, userIDs []string, count int) (int, error) {
	if len(userIDs) < 2 {
		return 0, nil
	}
	for i := 0; i < count; i++ {
		follower := userIDs[s.rng.Intn(len(userIDs))]
		following := userIDs[s.rng.Intn(len(userIDs))]
		if follower == following {
			continue
		}
		if err := s.repos.Social.Follow(ctx, follower, following); err != nil {
			return 0, err
		}
	}

	var edges int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).Count(&edges).Error; err != nil {
		return 0, err
	}
	return int(edges), nil
}

func (s *Seeder) seedLikes(ctx context.Context, userIDs, postIDs []string, count int) (int, error) {
	for i := 0; i < count; i++ {
		user := userIDs[s.rng.Intn(len(userIDs))]
		post := postIDs[s.rng.Intn(len(postIDs))]
		if err := s.repos.Engagement.Like(ctx, post, user); err != nil {
			return 0, err
		}
	}

	var likes int64
	if err := s.db.WithContext(ctx).Model(&models.Like{}).Count(&likes).Error; err != nil {
		return 0, err
	}
	return int(likes), nil
}

func (s *Seeder) seedComments(ctx context.Context, userIDs, postIDs []string, count int) (int, error) {
	comments := make([]models.Comment, 0, count)
	for i := 0; i < count; i++ {
		content := commentTemplates[s.rng.Intn(len(commentTemplates))]
		if s.rng.Intn(2) == 0 {
			content = gofakeit.HipsterSentence()
		}
		comments = append(comments, models.Comment{
			PostID:    postIDs[s.rng.Intn(len(postIDs))],
			UserID:    userIDs[s.rng.Intn(len(userIDs))],
			Content:   content,
			CreatedAt: s.pastTime(),
		})
	}
	if len(comments) == 0 {
		return 0, nil
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&comments, 100).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

// seedPreferences gives roughly half the users For You preferences
func (s *Seeder) seedPreferences(ctx context.Context, userIDs, tagIDs []string) error {
	for _, userID := range userIDs {
		if s.rng.Intn(2) == 0 {
			continue
		}
		tags := s.pick(tagIDs, 3)
		langs := s.pick(languages, 2)
		if _, err := s.repos.Preferences.Upsert(ctx, userID, repository.PreferenceUpdate{
			PreferredTags:      &tags,
			PreferredLanguages: &langs,
		}); err != nil {
			return err
		}
	}
	return nil
}

// pick returns up to max distinct random elements of values
func (s *Seeder) pick(values []string, max int) []string {
	if len(values) == 0 || max <= 0 {
		return nil
	}
	n := s.rng.Intn(max) + 1
	out := make([]string, 0, n)
	for _, i := range s.rng.Perm(len(values)) {
		if len(out) == n {
			break
		}
		out = append(out, values[i])
	}
	return out
}

// pastTime is a random instant within the last 30 days
func (s *Seeder) pastTime() time.Time {
	return gofakeit.DateRange(s.now.AddDate(0, 0, -30), s.now)
}
