package repository

import (
	"errors"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

func (suite *RepositoryTestSuite) TestGetByUsernameCounts() {
	a := suite.createProfile("a")
	b := suite.createProfile("b")
	x := suite.createProfile("x")

	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, x.ID, a.ID))
	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, b.ID, a.ID))

	user, err := suite.repo.Profiles.GetByUsername(suite.ctx, "a")
	suite.Require().NoError(err)
	suite.Equal(a.ID, user.ID)
	suite.Equal(2, *user.FollowersCount)
	suite.Equal(0, *user.FollowingCount)

	user, err = suite.repo.Profiles.GetByUsername(suite.ctx, "x")
	suite.Require().NoError(err)
	suite.Equal(0, *user.FollowersCount)
	suite.Equal(1, *user.FollowingCount)

	_, err = suite.repo.Profiles.GetByUsername(suite.ctx, "nobody")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RepositoryTestSuite) TestCreateProfileConflict() {
	user, err := suite.repo.Profiles.Create(suite.ctx, &models.Profile{Username: "ada", Name: "Ada"})
	suite.Require().NoError(err)
	suite.Equal("ada", user.Username)
	suite.Equal("", user.AvatarURL)

	_, err = suite.repo.Profiles.Create(suite.ctx, &models.Profile{Username: "ada"})
	suite.True(errors.Is(err, apperrors.ErrConflict))

	_, err = suite.repo.Profiles.Create(suite.ctx, &models.Profile{Username: "  "})
	suite.True(errors.Is(err, apperrors.ErrInvalidInput))
}

func (suite *RepositoryTestSuite) TestUpdateProfileOnlyProvidedFields() {
	ada := suite.createProfile("ada")
	bio := "compilers and coffee"

	user, err := suite.repo.Profiles.Update(suite.ctx, ada.ID, ProfileUpdate{Bio: &bio})
	suite.Require().NoError(err)
	suite.Equal(bio, user.Bio)
	suite.Equal("ada", user.Name)
	suite.Equal("ada", user.Username)

	website := "https://ada.dev"
	user, err = suite.repo.Profiles.Update(suite.ctx, ada.ID, ProfileUpdate{Website: &website})
	suite.Require().NoError(err)
	suite.Equal(bio, user.Bio)
	suite.Equal(website, user.Website)

	_, err = suite.repo.Profiles.Update(suite.ctx, "missing", ProfileUpdate{Bio: &bio})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RepositoryTestSuite) TestResolveID() {
	ada := suite.createProfile("ada")

	id, err := suite.repo.Profiles.ResolveID(suite.ctx, "ada")
	suite.Require().NoError(err)
	suite.Equal(ada.ID, id)

	_, err = suite.repo.Profiles.ResolveID(suite.ctx, "nobody")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}
