package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/xpense-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestLoadProfileCreatesDefaults() {
	profile, err := models.LoadProfile(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Equal(models.CurrencyINR, profile.Currency)
	suite.Assert().Equal("system", profile.Theme)
	suite.Assert().True(profile.Savings.IsZero())

	// Loading again returns the same profile, not a new one
	again, err := models.LoadProfile(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(profile.ID, again.ID)
}

func (suite *TestSuiteStandard) TestAddSavings() {
	profile, err := models.LoadProfile(models.DB)
	suite.Require().Nil(err)

	suite.Require().Nil(profile.AddSavings(models.DB, decimal.NewFromInt(100)))
	suite.Require().Nil(profile.AddSavings(models.DB, decimal.NewFromInt(50)))

	suite.Assert().True(profile.Savings.Equal(decimal.NewFromInt(150)), "savings are %s, should be 150", profile.Savings)

	// The balance is persisted
	reloaded, err := models.LoadProfile(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(reloaded.Savings.Equal(decimal.NewFromInt(150)), "savings are %s, should be 150", reloaded.Savings)
}
