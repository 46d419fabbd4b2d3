package repository

import (
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

func (suite *RepositoryTestSuite) TestGetPreferencesDefaultsWhenAbsent() {
	x := suite.createProfile("x")

	pref, err := suite.repo.Preferences.Get(suite.ctx, x.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{}, pref.PreferredTags)
	suite.Equal([]string{}, pref.PreferredLanguages)
	suite.Equal(int64(0), suite.count(&models.UserPreference{}))
}

func (suite *RepositoryTestSuite) TestUpsertPreferencesKeepsOneRow() {
	x := suite.createProfile("x")
	tags := []string{"t1", "t2", "t1", " "}
	langs := []string{"Go", "go", "Rust"}

	pref, err := suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredTags: &tags})
	suite.Require().NoError(err)
	suite.Equal([]string{"t1", "t2"}, pref.PreferredTags)
	suite.Equal([]string{}, pref.PreferredLanguages)

	pref, err = suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredLanguages: &langs})
	suite.Require().NoError(err)
	suite.Equal([]string{"t1", "t2"}, pref.PreferredTags)
	suite.Equal([]string{"go", "rust"}, pref.PreferredLanguages)

	suite.Equal(int64(1), suite.count(&models.UserPreference{}))
}

func (suite *RepositoryTestSuite) TestUpsertPreferencesClearsList() {
	x := suite.createProfile("x")
	tags := []string{"t1"}
	none := []string{}

	_, err := suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredTags: &tags})
	suite.Require().NoError(err)
	pref, err := suite.repo.Preferences.Upsert(suite.ctx, x.ID, PreferenceUpdate{PreferredTags: &none})
	suite.Require().NoError(err)
	suite.Empty(pref.PreferredTags)
}
