package cases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	PUT(path string, body any) error
	GET(path string, headers map[string]string) error
	GetStatusCode() int
	GetResponseBody() []byte
	GetResponseField(field string) (any, error)
	Save(name, value string)
	Saved(name string) string
}

var families = map[string]string{
	"application":    "applications",
	"complaint":      "complaints",
	"health service": "health-services",
}

// RegisterSteps registers case lifecycle and dashboard steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &caseSteps{tc: tc}

	// Submission steps
	ctx.Step(`^user "([^"]*)" applies for scheme "([^"]*)"$`, steps.applyForScheme)
	ctx.Step(`^user "([^"]*)" files a "([^"]*)" complaint about "([^"]*)"$`, steps.fileComplaint)
	ctx.Step(`^user "([^"]*)" requests a "([^"]*)"$`, steps.requestHealthService)
	ctx.Step(`^I remember the (application|complaint|health service)$`, steps.remember)

	// Officer steps
	ctx.Step(`^officer "([^"]*)" sets the (application|complaint|health service) status to "([^"]*)"$`, steps.setStatus)
	ctx.Step(`^officer "([^"]*)" resolves the complaint with "([^"]*)"$`, steps.resolveComplaint)
	ctx.Step(`^officer "([^"]*)" issues the health service with certificate "([^"]*)"$`, steps.issueHealthService)
	ctx.Step(`^the complaint is assigned to "([^"]*)"$`, steps.assignComplaint)
	ctx.Step(`^I track the (application|complaint|health service)$`, steps.track)
	ctx.Step(`^I list the (application|complaint|health service)s of user "([^"]*)"$`, steps.listByUser)
	ctx.Step(`^I fetch the dashboard stats$`, steps.fetchDashboard)

	// Assertion steps
	ctx.Step(`^the timeline should have (\d+) entries$`, steps.timelineShouldHave)
	ctx.Step(`^the latest timeline entry should be "([^"]*)" by "([^"]*)"$`, steps.latestTimelineEntry)
	ctx.Step(`^the response should list (\d+) cases$`, steps.responseShouldList)
}

type caseSteps struct {
	tc TestContext
}

func (s *caseSteps) applyForScheme(ctx context.Context, userID, scheme string) error {
	return s.tc.POST("/api/applications", map[string]any{
		"userId":     userID,
		"schemeName": scheme,
		"documents":  []string{"aadhaar.pdf"},
	})
}

func (s *caseSteps) fileComplaint(ctx context.Context, userID, priority, category string) error {
	return s.tc.POST("/api/complaints", map[string]any{
		"userId":      userID,
		"type":        "service",
		"category":    category,
		"description": "raised from e2e",
		"priority":    priority,
	})
}

func (s *caseSteps) requestHealthService(ctx context.Context, userID, serviceType string) error {
	return s.tc.POST("/api/health-services", map[string]any{
		"userId":      userID,
		"serviceType": serviceType,
		"formData":    map[string]any{"hospital": "District Hospital"},
	})
}

func (s *caseSteps) remember(ctx context.Context, family string) error {
	for _, field := range []string{"id", "trackingId"} {
		v, err := s.tc.GetResponseField(field)
		if err != nil {
			return err
		}
		s.tc.Save(family+"."+field, fmt.Sprint(v))
	}
	return nil
}

func (s *caseSteps) setStatus(ctx context.Context, officer, family, status string) error {
	return s.update(family, map[string]any{"status": status, "officerName": officer})
}

func (s *caseSteps) resolveComplaint(ctx context.Context, officer, resolution string) error {
	return s.update("complaint", map[string]any{
		"status":      "resolved",
		"officerName": officer,
		"resolution":  resolution,
	})
}

func (s *caseSteps) issueHealthService(ctx context.Context, officer, certificate string) error {
	return s.update("health service", map[string]any{
		"status":            "issued",
		"officerName":       officer,
		"certificateNumber": certificate,
	})
}

func (s *caseSteps) update(family string, body map[string]any) error {
	path := fmt.Sprintf("/api/officer/%s/%s/status", families[family], s.tc.Saved(family+".id"))
	return s.tc.PUT(path, body)
}

func (s *caseSteps) assignComplaint(ctx context.Context, officerID string) error {
	path := fmt.Sprintf("/api/officer/complaints/%s/assign", s.tc.Saved("complaint.id"))
	return s.tc.PUT(path, map[string]any{"officerId": officerID})
}

func (s *caseSteps) track(ctx context.Context, family string) error {
	return s.tc.GET(fmt.Sprintf("/api/%s/track/%s", families[family], s.tc.Saved(family+".trackingId")), nil)
}

func (s *caseSteps) listByUser(ctx context.Context, family, userID string) error {
	return s.tc.GET(fmt.Sprintf("/api/%s/user/%s", families[family], userID), nil)
}

func (s *caseSteps) fetchDashboard(ctx context.Context) error {
	return s.tc.GET("/api/officer/dashboard/stats", nil)
}

type timelineEntry struct {
	Status  string `json:"status"`
	Officer struct {
		Name string `json:"name"`
	} `json:"officer"`
}

func (s *caseSteps) timeline() ([]timelineEntry, error) {
	var body struct {
		Timeline []timelineEntry `json:"timeline"`
	}
	if err := json.Unmarshal(s.tc.GetResponseBody(), &body); err != nil {
		return nil, fmt.Errorf("decode case: %w", err)
	}
	return body.Timeline, nil
}

func (s *caseSteps) timelineShouldHave(ctx context.Context, n int) error {
	entries, err := s.timeline()
	if err != nil {
		return err
	}
	if len(entries) != n {
		return fmt.Errorf("expected %d timeline entries, got %d", n, len(entries))
	}
	return nil
}

func (s *caseSteps) latestTimelineEntry(ctx context.Context, status, officer string) error {
	entries, err := s.timeline()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("timeline is empty")
	}
	last := entries[len(entries)-1]
	if last.Status != status || last.Officer.Name != officer {
		return fmt.Errorf("latest entry is %q by %q", last.Status, last.Officer.Name)
	}
	return nil
}

func (s *caseSteps) responseShouldList(ctx context.Context, n int) error {
	var items []json.RawMessage
	if err := json.Unmarshal(s.tc.GetResponseBody(), &items); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	if len(items) != n {
		return fmt.Errorf("expected %d cases, got %d", n, len(items))
	}
	return nil
}
