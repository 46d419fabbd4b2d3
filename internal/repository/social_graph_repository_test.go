package repository

import (
	"errors"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

func (suite *RepositoryTestSuite) TestIsFollowingToggles() {
	a := suite.createProfile("a")
	b := suite.createProfile("b")

	following, err := suite.repo.Social.IsFollowing(suite.ctx, a.ID, b.ID)
	suite.Require().NoError(err)
	suite.False(following)

	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, a.ID, b.ID))
	following, err = suite.repo.Social.IsFollowing(suite.ctx, a.ID, b.ID)
	suite.Require().NoError(err)
	suite.True(following)

	// direction matters
	following, err = suite.repo.Social.IsFollowing(suite.ctx, b.ID, a.ID)
	suite.Require().NoError(err)
	suite.False(following)

	suite.Require().NoError(suite.repo.Social.Unfollow(suite.ctx, a.ID, b.ID))
	following, err = suite.repo.Social.IsFollowing(suite.ctx, a.ID, b.ID)
	suite.Require().NoError(err)
	suite.False(following)
}

func (suite *RepositoryTestSuite) TestFollowIsIdempotent() {
	a := suite.createProfile("a")
	b := suite.createProfile("b")

	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, a.ID, b.ID))
	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, a.ID, b.ID))
	suite.Equal(int64(1), suite.count(&models.Follow{}))

	suite.Require().NoError(suite.repo.Social.Unfollow(suite.ctx, a.ID, b.ID))
	suite.Require().NoError(suite.repo.Social.Unfollow(suite.ctx, a.ID, b.ID))
	suite.Equal(int64(0), suite.count(&models.Follow{}))
}

func (suite *RepositoryTestSuite) TestFollowSelfRejected() {
	a := suite.createProfile("a")

	err := suite.repo.Social.Follow(suite.ctx, a.ID, a.ID)
	suite.True(errors.Is(err, apperrors.ErrInvalidInput))
	suite.Equal(int64(0), suite.count(&models.Follow{}))
}

func (suite *RepositoryTestSuite) TestFollowCountsAndIDs() {
	a := suite.createProfile("a")
	b := suite.createProfile("b")
	x := suite.createProfile("x")

	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, x.ID, a.ID))
	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, b.ID, a.ID))
	suite.Require().NoError(suite.repo.Social.Follow(suite.ctx, x.ID, b.ID))

	followers, err := suite.repo.Social.FollowerCount(suite.ctx, a.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), followers)

	following, err := suite.repo.Social.FollowingCount(suite.ctx, x.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), following)

	ids, err := suite.repo.Social.FollowingIDs(suite.ctx, x.ID)
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{a.ID, b.ID}, ids)
}
