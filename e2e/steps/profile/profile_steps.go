package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseBody() []byte
}

// RegisterSteps registers profile and eligibility steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &profileSteps{tc: tc}

	ctx.Step(`^user "([^"]*)" saves a profile:$`, steps.saveProfile)
	ctx.Step(`^I fetch the profile of user "([^"]*)"$`, steps.fetchByUser)
	ctx.Step(`^the eligible schemes should be "([^"]*)"$`, steps.eligibleSchemesShouldBe)
	ctx.Step(`^no schemes should be eligible$`, steps.noSchemes)
}

type profileSteps struct {
	tc TestContext
}

// saveProfile reads a two-column table of field/value pairs. Numbers and
// booleans are sent as JSON literals.
func (s *profileSteps) saveProfile(ctx context.Context, userID string, table *godog.Table) error {
	body := map[string]any{"userId": userID}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("profile table rows need two cells")
		}
		key, raw := row.Cells[0].Value, row.Cells[1].Value
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		body[key] = v
	}
	return s.tc.POST("/api/profiles", body)
}

func (s *profileSteps) fetchByUser(ctx context.Context, userID string) error {
	return s.tc.GET("/api/profiles/user/"+userID, nil)
}

func (s *profileSteps) schemes() ([]string, error) {
	var body struct {
		EligibleSchemes []string `json:"eligibleSchemes"`
	}
	if err := json.Unmarshal(s.tc.GetResponseBody(), &body); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return body.EligibleSchemes, nil
}

func (s *profileSteps) eligibleSchemesShouldBe(ctx context.Context, list string) error {
	got, err := s.schemes()
	if err != nil {
		return err
	}
	want := strings.Split(list, ",")
	for i := range want {
		want[i] = strings.TrimSpace(want[i])
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("expected schemes %v, got %v", want, got)
	}
	return nil
}

func (s *profileSteps) noSchemes(ctx context.Context) error {
	got, err := s.schemes()
	if err != nil {
		return err
	}
	if len(got) != 0 {
		return fmt.Errorf("expected no schemes, got %v", got)
	}
	return nil
}
