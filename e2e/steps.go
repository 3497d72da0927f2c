package e2e

import (
	"github.com/cucumber/godog"

	"govportal/e2e/steps/cases"
	"govportal/e2e/steps/common"
	"govportal/e2e/steps/profile"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Applications, complaints, health services and the officer dashboard
	cases.RegisterSteps(ctx, tc)

	// Citizen profiles and scheme eligibility
	profile.RegisterSteps(ctx, tc)
}
