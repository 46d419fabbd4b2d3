package handlers

import (
	"net/http"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

func (suite *HandlersTestSuite) TestCreatePostRequiresAuth() {
	w := suite.do(http.MethodPost, "/api/v1/posts", "", map[string]string{"content": "hi"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePost() {
	ada := suite.createProfile("ada")
	token := suite.tokenFor(ada)

	tag := &models.Tag{Name: "go"}
	suite.Require().NoError(suite.db.Create(tag).Error)

	w := suite.do(http.MethodPost, "/api/v1/posts", token, map[string]interface{}{
		"content":      "fizzbuzz",
		"code_snippet": "fmt.Println(1)",
		"language":     "Go",
		"tag_ids":      []string{tag.ID},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	post := decode[dto.Post](suite, w)
	suite.Equal(ada.ID, post.AuthorID)
	suite.Equal(0, post.Likes)
	suite.Equal(0, post.Comments)
	suite.Require().NotNil(post.Language)
	suite.Equal("go", *post.Language)

	w = suite.do(http.MethodGet, "/api/v1/posts/"+post.ID+"/tags", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"name":"go"`)
}

func (suite *HandlersTestSuite) TestCreatePostRejectsBrokenInvariants() {
	ada := suite.createProfile("ada")
	token := suite.tokenFor(ada)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"empty post", map[string]interface{}{"content": "  "}, "content"},
		{"language without code", map[string]interface{}{"content": "x", "language": "go"}, "language"},
		{"media type without url", map[string]interface{}{"content": "x", "media_type": "image"}, "media_type"},
	}

	for _, tt := range tests {
		w := suite.do(http.MethodPost, "/api/v1/posts", token, tt.body)
		suite.Equal(http.StatusBadRequest, w.Code, tt.name)
		body := decode[map[string]map[string]interface{}](suite, w)
		suite.Equal(tt.field, body["error"]["field"], tt.name)
	}
}

func (suite *HandlersTestSuite) TestLikeIsIdempotent() {
	ada := suite.createProfile("ada")
	viewer := suite.createProfile("viewer")
	post := suite.createPost(ada, "hello")
	token := suite.tokenFor(viewer)
	path := "/api/v1/posts/" + post.ID + "/like"

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, path, token, nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, path, token, nil).Code)

	w := suite.do(http.MethodGet, path, token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"post_id":"`+post.ID+`","liked":true}`, w.Body.String())

	var likes int64
	suite.Require().NoError(suite.db.Model(&models.Like{}).Count(&likes).Error)
	suite.Equal(int64(1), likes)

	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, path, token, nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, path, token, nil).Code)

	w = suite.do(http.MethodGet, path, token, nil)
	suite.JSONEq(`{"post_id":"`+post.ID+`","liked":false}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLikeUnknownPost() {
	viewer := suite.createProfile("viewer")
	w := suite.do(http.MethodPost, "/api/v1/posts/00000000-0000-0000-0000-000000000000/like", suite.tokenFor(viewer), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestAddPostTag() {
	ada := suite.createProfile("ada")
	grace := suite.createProfile("grace")
	post := suite.createPost(ada, "hello")
	path := "/api/v1/posts/" + post.ID + "/tags"

	w := suite.do(http.MethodPost, path, suite.tokenFor(grace), map[string]string{"name": "go"})
	suite.Equal(http.StatusForbidden, w.Code)

	token := suite.tokenFor(ada)
	w = suite.do(http.MethodPost, path, token, map[string]string{"name": " Go "})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"name":"go"`)

	// Attaching again by id is a no-op
	var tag models.Tag
	suite.Require().NoError(suite.db.Where("name = ?", "go").First(&tag).Error)
	w = suite.do(http.MethodPost, path, token, map[string]string{"tag_id": tag.ID})
	suite.Equal(http.StatusOK, w.Code)

	var links int64
	suite.Require().NoError(suite.db.Model(&models.PostTag{}).Count(&links).Error)
	suite.Equal(int64(1), links)

	w = suite.do(http.MethodPost, path, token, map[string]string{"tag_id": "missing"})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/tags", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"name":"go"`)
}

func (suite *HandlersTestSuite) TestUploadMedia() {
	ada := suite.createProfile("ada")
	token := suite.tokenFor(ada)

	w := suite.upload("/api/v1/media", token, "shot.png", "image/png")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"media_type":"image"`)
	suite.Equal([]string{"media/" + ada.ID + "/shot.png"}, suite.media.uploads)

	w = suite.upload("/api/v1/media", token, "notes.txt", "text/plain")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.upload("/api/v1/media", "", "shot.png", "image/png")
	suite.Equal(http.StatusUnauthorized, w.Code)
}
