package handlers

import (
	"net/http"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
)

func postIDs(page dto.PostPage) []string {
	return lo.Map(page.Posts, func(p dto.Post, _ int) string { return p.ID })
}

func (suite *HandlersTestSuite) TestGlobalFeedPagination() {
	ada := suite.createProfile("ada")
	var posts []*models.Post
	for i := 0; i < 3; i++ {
		posts = append(posts, suite.createPost(ada, "post"))
	}

	w := suite.do(http.MethodGet, "/api/v1/feed/global?page=1&limit=2", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := decode[dto.PostPage](suite, w)
	suite.Equal([]string{posts[2].ID, posts[1].ID}, postIDs(page))
	suite.Equal(int64(3), page.Total)
	suite.True(page.HasMore)
	suite.Nil(page.Posts[0].IsLiked)

	w = suite.do(http.MethodGet, "/api/v1/feed/global?page=2&limit=2", "", nil)
	page = decode[dto.PostPage](suite, w)
	suite.Equal([]string{posts[0].ID}, postIDs(page))
	suite.False(page.HasMore)
}

func (suite *HandlersTestSuite) TestGlobalFeedRejectsBadPage() {
	w := suite.do(http.MethodGet, "/api/v1/feed/global?page=0", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT", suite.errorCode(w))
}

func (suite *HandlersTestSuite) TestGlobalFeedAnnotatesViewerLikes() {
	ada := suite.createProfile("ada")
	viewer := suite.createProfile("viewer")
	post := suite.createPost(ada, "hello")

	token := suite.tokenFor(viewer)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", token, nil).Code)

	w := suite.do(http.MethodGet, "/api/v1/feed/global", token, nil)
	page := decode[dto.PostPage](suite, w)
	suite.Require().Len(page.Posts, 1)
	suite.Require().NotNil(page.Posts[0].IsLiked)
	suite.True(*page.Posts[0].IsLiked)
	suite.Equal(1, page.Posts[0].Likes)
}

func (suite *HandlersTestSuite) TestFollowingFeedRequiresAuth() {
	w := suite.do(http.MethodGet, "/api/v1/feed/following", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", suite.errorCode(w))
}

func (suite *HandlersTestSuite) TestFollowingFeed() {
	ada := suite.createProfile("ada")
	grace := suite.createProfile("grace")
	viewer := suite.createProfile("viewer")
	adaPost := suite.createPost(ada, "from ada")
	suite.createPost(grace, "from grace")

	token := suite.tokenFor(viewer)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/users/ada/follow", token, nil).Code)

	w := suite.do(http.MethodGet, "/api/v1/feed/following", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]string{adaPost.ID}, postIDs(decode[dto.PostPage](suite, w)))
}

func (suite *HandlersTestSuite) TestForYouFeedUsesPreferences() {
	ada := suite.createProfile("ada")
	viewer := suite.createProfile("viewer")
	token := suite.tokenFor(viewer)

	goSnippet, goLang := "package main", "go"
	goPost := &models.Post{AuthorID: ada.ID, CodeSnippet: &goSnippet, Language: &goLang, CreatedAt: suite.tick()}
	suite.Require().NoError(suite.db.Create(goPost).Error)
	suite.createPost(ada, "plain text")

	// No preferences yet: global fallback
	w := suite.do(http.MethodGet, "/api/v1/feed/for-you", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode[dto.PostPage](suite, w).Posts, 2)

	w = suite.do(http.MethodPut, "/api/v1/preferences", token, map[string]interface{}{
		"preferred_languages": []string{"Go"},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/feed/for-you", token, nil)
	suite.Equal([]string{goPost.ID}, postIDs(decode[dto.PostPage](suite, w)))
}

func (suite *HandlersTestSuite) TestUserPostsAndLikes() {
	ada := suite.createProfile("ada")
	grace := suite.createProfile("grace")
	adaPost := suite.createPost(ada, "mine")
	gracePost := suite.createPost(grace, "hers")

	token := suite.tokenFor(ada)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/posts/"+gracePost.ID+"/like", token, nil).Code)

	w := suite.do(http.MethodGet, "/api/v1/users/ada/posts", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]string{adaPost.ID}, postIDs(decode[dto.PostPage](suite, w)))

	w = suite.do(http.MethodGet, "/api/v1/users/ada/likes", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]string{gracePost.ID}, postIDs(decode[dto.PostPage](suite, w)))

	w = suite.do(http.MethodGet, "/api/v1/users/nobody/posts", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
