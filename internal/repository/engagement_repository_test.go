package repository

import (
	"errors"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

func (suite *RepositoryTestSuite) TestLikeTwiceKeepsOneRow() {
	ada := suite.createProfile("ada")
	fan := suite.createProfile("fan")
	post := suite.createPost(ada, "hello")

	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, post.ID, fan.ID))
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, post.ID, fan.ID))

	suite.Equal(int64(1), suite.count(&models.Like{}))
	liked, err := suite.repo.Engagement.IsLiked(suite.ctx, post.ID, fan.ID)
	suite.Require().NoError(err)
	suite.True(liked)
}

func (suite *RepositoryTestSuite) TestUnlikeWithoutLikeIsNoop() {
	ada := suite.createProfile("ada")
	post := suite.createPost(ada, "hello")

	suite.NoError(suite.repo.Engagement.Unlike(suite.ctx, post.ID, ada.ID))
	suite.Equal(int64(0), suite.count(&models.Like{}))
}

func (suite *RepositoryTestSuite) TestLikeUnlikeToggle() {
	ada := suite.createProfile("ada")
	fan := suite.createProfile("fan")
	post := suite.createPost(ada, "hello")

	liked, err := suite.repo.Engagement.IsLiked(suite.ctx, post.ID, fan.ID)
	suite.Require().NoError(err)
	suite.False(liked)

	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, post.ID, fan.ID))
	suite.Require().NoError(suite.repo.Engagement.Unlike(suite.ctx, post.ID, fan.ID))

	liked, err = suite.repo.Engagement.IsLiked(suite.ctx, post.ID, fan.ID)
	suite.Require().NoError(err)
	suite.False(liked)

	// a fresh like after unlike is a new row
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, post.ID, fan.ID))
	suite.Equal(int64(1), suite.count(&models.Like{}))
}

func (suite *RepositoryTestSuite) TestLikeUnknownPost() {
	fan := suite.createProfile("fan")

	err := suite.repo.Engagement.Like(suite.ctx, "missing", fan.ID)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RepositoryTestSuite) TestLikedPostIDs() {
	ada := suite.createProfile("ada")
	fan := suite.createProfile("fan")
	p1 := suite.createPost(ada, "1")
	p2 := suite.createPost(ada, "2")
	p3 := suite.createPost(ada, "3")

	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, p1.ID, fan.ID))
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, p3.ID, fan.ID))
	suite.Require().NoError(suite.repo.Engagement.Like(suite.ctx, p2.ID, ada.ID))

	liked, err := suite.repo.Engagement.LikedPostIDs(suite.ctx, fan.ID, []string{p1.ID, p2.ID, p3.ID})
	suite.Require().NoError(err)
	suite.Equal(map[string]bool{p1.ID: true, p3.ID: true}, liked)

	liked, err = suite.repo.Engagement.LikedPostIDs(suite.ctx, fan.ID, nil)
	suite.Require().NoError(err)
	suite.Empty(liked)
}
