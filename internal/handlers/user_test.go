package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pratyush0898/OnlyCodes/internal/dto"
)

func (suite *HandlersTestSuite) TestGetUserProfile() {
	ada := suite.createProfile("ada")
	viewer := suite.createProfile("viewer")
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/users/ada/follow", suite.tokenFor(viewer), nil).Code)

	w := suite.do(http.MethodGet, "/api/v1/users/ada", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	user := decode[dto.User](suite, w)
	suite.Equal(ada.ID, user.ID)
	suite.Require().NotNil(user.FollowersCount)
	suite.Require().NotNil(user.FollowingCount)
	suite.Equal(1, *user.FollowersCount)
	suite.Equal(0, *user.FollowingCount)
}

func (suite *HandlersTestSuite) TestGetUserProfileNotFound() {
	w := suite.do(http.MethodGet, "/api/v1/users/nobody", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.errorCode(w))
}

func (suite *HandlersTestSuite) TestFollowLifecycle() {
	suite.createProfile("ada")
	viewer := suite.createProfile("viewer")
	token := suite.tokenFor(viewer)
	path := "/api/v1/users/ada/follow"

	w := suite.do(http.MethodGet, path, token, nil)
	suite.JSONEq(`{"username":"ada","following":false}`, w.Body.String())

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, path, token, nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, path, token, nil).Code)

	w = suite.do(http.MethodGet, path, token, nil)
	suite.JSONEq(`{"username":"ada","following":true}`, w.Body.String())

	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, path, token, nil).Code)
	w = suite.do(http.MethodGet, path, token, nil)
	suite.JSONEq(`{"username":"ada","following":false}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestFollowRejectsSelfAndUnknown() {
	viewer := suite.createProfile("viewer")
	token := suite.tokenFor(viewer)

	w := suite.do(http.MethodPost, "/api/v1/users/viewer/follow", token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/users/nobody/follow", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/users/viewer/follow", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestCreateProfile() {
	id := uuid.New().String()
	resp, err := suite.auth.IssueToken(id, "")
	suite.Require().NoError(err)

	w := suite.do(http.MethodPost, "/api/v1/profiles", resp.Token, map[string]string{"username": "Linus", "name": "Linus"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	user := decode[dto.User](suite, w)
	suite.Equal(id, user.ID)
	suite.Equal("linus", user.Username)

	// Username is taken
	other, err := suite.auth.IssueToken(uuid.New().String(), "")
	suite.Require().NoError(err)
	w = suite.do(http.MethodPost, "/api/v1/profiles", other.Token, map[string]string{"username": "linus"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", suite.errorCode(w))

	w = suite.do(http.MethodPost, "/api/v1/profiles", other.Token, map[string]string{"username": "no spaces"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateMyProfile() {
	ada := suite.createProfile("ada")
	token := suite.tokenFor(ada)

	w := suite.do(http.MethodPut, "/api/v1/profiles/me", token, map[string]string{"bio": "compilers"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	user := decode[dto.User](suite, w)
	suite.Equal("compilers", user.Bio)
	suite.Equal("ada", user.Name)

	w = suite.do(http.MethodPut, "/api/v1/profiles/me", token, map[string]string{"website": "not a url"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUploadAvatar() {
	ada := suite.createProfile("ada")

	w := suite.upload("/api/v1/profiles/me/avatar", suite.tokenFor(ada), "me.png", "image/png")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	user := decode[dto.User](suite, w)
	suite.Equal("https://cdn.test/avatars/"+ada.ID+"/me.png", user.AvatarURL)

	// No profile yet: nothing is uploaded
	resp, err := suite.auth.IssueToken(uuid.New().String(), "")
	suite.Require().NoError(err)
	w = suite.upload("/api/v1/profiles/me/avatar", resp.Token, "me.png", "image/png")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Len(suite.media.uploads, 1)
}

func (suite *HandlersTestSuite) TestPreferences() {
	ada := suite.createProfile("ada")
	token := suite.tokenFor(ada)

	w := suite.do(http.MethodGet, "/api/v1/preferences", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	prefs := decode[dto.Preferences](suite, w)
	suite.Empty(prefs.PreferredTags)
	suite.Empty(prefs.PreferredLanguages)

	w = suite.do(http.MethodPut, "/api/v1/preferences", token, map[string]interface{}{
		"preferred_languages": []string{"Go", " go ", "Rust"},
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	prefs = decode[dto.Preferences](suite, w)
	suite.Equal([]string{"go", "rust"}, prefs.PreferredLanguages)

	w = suite.do(http.MethodGet, "/api/v1/preferences", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}
