package repository

import (
	"errors"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
)

func (suite *RepositoryTestSuite) TestListGlobalPaginatesNewestFirst() {
	author := suite.createProfile("ada")
	var created []string
	for i := 0; i < 15; i++ {
		created = append(created, suite.createPost(author, "post").ID)
	}

	first, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	second, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 2, Size: 10})
	suite.Require().NoError(err)

	suite.Len(first.Posts, 10)
	suite.Len(second.Posts, 5)
	suite.Equal(int64(15), first.Total)
	suite.Equal(int64(15), second.Total)
	suite.True(first.HasMore)
	suite.False(second.HasMore)

	all := append(postIDs(first), postIDs(second)...)
	suite.Len(lo.Uniq(all), 15)
	suite.Equal(lo.Reverse(created), all)
}

func (suite *RepositoryTestSuite) TestListGlobalBreaksTiesByID() {
	author := suite.createProfile("ada")
	at := suite.tick()
	low := &models.Post{ID: "00000000-0000-0000-0000-000000000001", AuthorID: author.ID, Content: "a", CreatedAt: at}
	high := &models.Post{ID: "00000000-0000-0000-0000-000000000002", AuthorID: author.ID, Content: "b", CreatedAt: at}
	suite.Require().NoError(suite.db.Create(low).Error)
	suite.Require().NoError(suite.db.Create(high).Error)

	page, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{high.ID, low.ID}, postIDs(page))
}

func (suite *RepositoryTestSuite) TestListGlobalRejectsPageZero() {
	_, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 0, Size: 10})
	suite.True(errors.Is(err, apperrors.ErrInvalidInput))
}

func (suite *RepositoryTestSuite) TestListGlobalPastTheEnd() {
	author := suite.createProfile("ada")
	suite.createPost(author, "only")

	page, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 3, Size: 10})
	suite.Require().NoError(err)
	suite.Empty(page.Posts)
	suite.NotNil(page.Posts)
	suite.Equal(int64(1), page.Total)
	suite.False(page.HasMore)
}

func (suite *RepositoryTestSuite) TestListGlobalMapsAuthorAndCounts() {
	author := suite.createProfile("ada")
	fan1 := suite.createProfile("fan1")
	fan2 := suite.createProfile("fan2")
	popular := suite.createPost(author, "popular")
	quiet := suite.createPost(author, "quiet")

	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, popular.ID, fan1.ID))
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, popular.ID, fan2.ID))
	suite.Require().NoError(suite.db.Create(&models.Comment{PostID: popular.ID, UserID: fan1.ID, Content: "nice"}).Error)

	page, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	byID := lo.KeyBy(page.Posts, func(p dto.Post) string { return p.ID })

	suite.Equal(2, byID[popular.ID].Likes)
	suite.Equal(1, byID[popular.ID].Comments)
	suite.Equal(0, byID[quiet.ID].Likes)
	suite.Equal(0, byID[quiet.ID].Comments)
	suite.Require().NotNil(byID[quiet.ID].User)
	suite.Equal("ada", byID[quiet.ID].User.Username)
	suite.Equal("", byID[quiet.ID].User.Bio)
	suite.Equal(author.ID, byID[quiet.ID].AuthorID)
}

func (suite *RepositoryTestSuite) TestListGlobalFailsOnMissingAuthor() {
	author := suite.createProfile("ada")
	suite.createPost(author, "orphaned")
	suite.Require().NoError(suite.db.Delete(&models.Profile{}, "id = ?", author.ID).Error)

	_, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 1, Size: 10})
	suite.True(errors.Is(err, apperrors.ErrBackendFailure))
}

func (suite *RepositoryTestSuite) TestListFollowingFollowsNobody() {
	x := suite.createProfile("x")
	a := suite.createProfile("a")
	suite.createPost(a, "hello")

	page, err := suite.repo.Posts.ListFollowing(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Empty(page.Posts)
	suite.Equal(int64(0), page.Total)
	suite.False(page.HasMore)
}

func (suite *RepositoryTestSuite) TestListFollowingOnlyFollowedAuthors() {
	a := suite.createProfile("a")
	b := suite.createProfile("b")
	c := suite.createProfile("c")
	x := suite.createProfile("x")

	older := suite.createPost(a, "a1")
	suite.createPost(b, "b1")
	newer := suite.createPost(a, "a2")
	suite.createPost(c, "c1")

	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, x.ID, a.ID))

	page, err := suite.repo.Posts.ListFollowing(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{newer.ID, older.ID}, postIDs(page))
	suite.Equal(int64(2), page.Total)
}

func (suite *RepositoryTestSuite) TestListForYouFiltersByPreferredTag() {
	author := suite.createProfile("ada")
	x := suite.createProfile("x")
	react := suite.createTag("react")
	golang := suite.createTag("go")

	reactPost := suite.createPost(author, "hooks")
	both := suite.createPost(author, "react + go")
	goPost := suite.createPost(author, "goroutines")
	suite.createPost(author, "untagged and newest")

	suite.tagPost(reactPost, react)
	suite.tagPost(both, react, golang)
	suite.tagPost(goPost, golang)

	tags := []string{react.ID}
	_, err := suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredTags: &tags})
	suite.Require().NoError(err)

	page, err := suite.repo.Posts.ListForYou(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{both.ID, reactPost.ID}, postIDs(page))
	suite.Equal(int64(2), page.Total)
}

func (suite *RepositoryTestSuite) TestListForYouFallsBackToGlobal() {
	author := suite.createProfile("ada")
	x := suite.createProfile("x")
	suite.createPost(author, "one")
	suite.createPost(author, "two")

	forYou, err := suite.repo.Posts.ListForYou(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	global, err := suite.repo.Posts.ListGlobal(suite.ctx, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)

	suite.Equal(postIDs(global), postIDs(forYou))
	suite.Equal(global.Total, forYou.Total)

	empty := []string{}
	_, err = suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredTags: &empty})
	suite.Require().NoError(err)
	forYou, err = suite.repo.Posts.ListForYou(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(2), forYou.Total)
}

func (suite *RepositoryTestSuite) TestListForYouFiltersByLanguage() {
	author := suite.createProfile("ada")
	x := suite.createProfile("x")
	rust := suite.createCodePost(author, "rust")
	suite.createCodePost(author, "python")
	suite.createPost(author, "prose")

	langs := []string{"Rust"}
	_, err := suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredLanguages: &langs})
	suite.Require().NoError(err)

	page, err := suite.repo.Posts.ListForYou(suite.ctx, x.ID, Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{rust.ID}, postIDs(page))
}

func (suite *RepositoryTestSuite) TestListByAuthor() {
	ada := suite.createProfile("ada")
	bob := suite.createProfile("bob")
	mine := suite.createPost(ada, "mine")
	suite.createPost(bob, "theirs")

	page, err := suite.repo.Posts.ListByAuthor(suite.ctx, "ada", Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{mine.ID}, postIDs(page))

	_, err = suite.repo.Posts.ListByAuthor(suite.ctx, "nobody", Page{Number: 1, Size: 10})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RepositoryTestSuite) TestListLikedByUser() {
	ada := suite.createProfile("ada")
	fan := suite.createProfile("fan")
	liked1 := suite.createPost(ada, "one")
	suite.createPost(ada, "two")
	liked2 := suite.createPost(ada, "three")

	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, liked1.ID, fan.ID))
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, liked2.ID, fan.ID))

	page, err := suite.repo.Posts.ListLikedByUser(suite.ctx, "fan", Page{Number: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal([]string{liked2.ID, liked1.ID}, postIDs(page))

	_, err = suite.repo.Posts.ListLikedByUser(suite.ctx, "nobody", Page{Number: 1, Size: 10})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RepositoryTestSuite) TestCreateRejectsContentlessPost() {
	ada := suite.createProfile("ada")

	_, err := suite.repo.Posts.Create(suite.ctx, &models.Post{AuthorID: ada.ID, Content: "   "}, nil)
	suite.True(errors.Is(err, apperrors.ErrInvalidInput))
	suite.Equal(int64(0), suite.count(&models.Post{}))
}

func (suite *RepositoryTestSuite) TestCreateReturnsMappedPost() {
	ada := suite.createProfile("ada")
	react := suite.createTag("react")
	snippet := "const [x, setX] = useState(0)"
	lang := "JavaScript"

	post, err := suite.repo.Posts.Create(suite.ctx, &models.Post{
		AuthorID:    ada.ID,
		CodeSnippet: &snippet,
		Language:    &lang,
	}, []string{react.ID, react.ID})
	suite.Require().NoError(err)

	suite.NotEmpty(post.ID)
	suite.Equal(ada.ID, post.AuthorID)
	suite.Equal(0, post.Likes)
	suite.Equal(0, post.Comments)
	suite.Require().NotNil(post.User)
	suite.Equal("ada", post.User.Username)
	suite.Require().NotNil(post.Language)
	suite.Equal("javascript", *post.Language)

	tags, err := suite.repo.Tags.ForPost(suite.ctx, post.ID)
	suite.Require().NoError(err)
	suite.Len(tags, 1)
}

func (suite *RepositoryTestSuite) TestCreateKeepsSnippetVerbatim() {
	ada := suite.createProfile("ada")
	snippet := "    x := 1\n    y := 2\n"
	lang := "go"

	post, err := suite.repo.Posts.Create(suite.ctx, &models.Post{
		AuthorID:    ada.ID,
		CodeSnippet: &snippet,
		Language:    &lang,
	}, nil)
	suite.Require().NoError(err)
	suite.Require().NotNil(post.CodeSnippet)
	suite.Equal("    x := 1\n    y := 2\n", *post.CodeSnippet)
}

func (suite *RepositoryTestSuite) TestCreateRejectsUnknownTag() {
	ada := suite.createProfile("ada")
	react := suite.createTag("react")

	_, err := suite.repo.Posts.Create(suite.ctx, &models.Post{AuthorID: ada.ID, Content: "hooks"}, []string{react.ID, "missing"})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Equal(int64(0), suite.count(&models.Post{}))
	suite.Equal(int64(0), suite.count(&models.PostTag{}))
}

func (suite *RepositoryTestSuite) TestCreateUnknownAuthor() {
	_, err := suite.repo.Posts.Create(suite.ctx, &models.Post{AuthorID: "ghost", Content: "boo"}, nil)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Equal(int64(0), suite.count(&models.Post{}))
}

func (suite *RepositoryTestSuite) TestGetPost() {
	ada := suite.createProfile("ada")
	post := suite.createPost(ada, "hello")

	got, err := suite.repo.Posts.Get(suite.ctx, post.ID)
	suite.Require().NoError(err)
	suite.Equal("hello", got.Content)

	_, err = suite.repo.Posts.Get(suite.ctx, "missing")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}
