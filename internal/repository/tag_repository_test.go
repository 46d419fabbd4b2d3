package repository

import (
	"errors"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
)

func tagNames(tags []models.Tag) []string {
	return lo.Map(tags, func(t models.Tag, _ int) string { return t.Name })
}

func (suite *RepositoryTestSuite) TestListTagsOrderedByName() {
	suite.createTag("rust")
	suite.createTag("go")
	suite.createTag("react")

	tags, err := suite.repo.Tags.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"go", "react", "rust"}, tagNames(tags))
}

func (suite *RepositoryTestSuite) TestAddTagToPostIsIdempotent() {
	ada := suite.createProfile("ada")
	post := suite.createPost(ada, "hello")
	react := suite.createTag("react")
	golang := suite.createTag("go")

	suite.Require().NoError(suite.repo.Tags.AddToPost(suite.ctx, post.ID, react.ID))
	suite.Require().NoError(suite.repo.Tags.AddToPost(suite.ctx, post.ID, react.ID))
	suite.Require().NoError(suite.repo.Tags.AddToPost(suite.ctx, post.ID, golang.ID))

	suite.Equal(int64(2), suite.count(&models.PostTag{}))

	tags, err := suite.repo.Tags.ForPost(suite.ctx, post.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"go", "react"}, tagNames(tags))
}

func (suite *RepositoryTestSuite) TestEnsureTags() {
	suite.createTag("go")

	tags, err := suite.repo.Tags.Ensure(suite.ctx, []string{"Go", " rust ", "rust", ""})
	suite.Require().NoError(err)
	suite.Equal([]string{"go", "rust"}, tagNames(tags))
	suite.Equal(int64(2), suite.count(&models.Tag{}))

	tags, err = suite.repo.Tags.Ensure(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(tags)
}

func (suite *RepositoryTestSuite) TestGetTag() {
	golang := suite.createTag("go")

	got, err := suite.repo.Tags.Get(suite.ctx, golang.ID)
	suite.Require().NoError(err)
	suite.Equal("go", got.Name)

	_, err = suite.repo.Tags.Get(suite.ctx, "missing")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}
