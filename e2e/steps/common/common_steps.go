package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	PostRaw(path, contentType, body string) error
	PutRaw(path, contentType, body string) error
	GetStatusCode() int
	GetResponseBody() []byte
	GetResponseField(field string) (any, error)
	ResponseContains(field string) bool
	Save(name, value string)
	Expand(s string) string
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the portal is running$`, steps.portalIsRunning)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I POST to "([^"]*)" with body:$`, steps.postWithBody)
	ctx.Step(`^I PUT to "([^"]*)" with body:$`, steps.putWithBody)
	ctx.Step(`^I POST plain text to "([^"]*)"$`, steps.postPlainText)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should equal (\d+)$`, steps.fieldShouldEqualNumber)
	ctx.Step(`^the response field "([^"]*)" should match "([^"]*)"$`, steps.fieldShouldMatchPrefix)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContain)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeShouldBe)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, steps.saveField)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) portalIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz", nil); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) postWithBody(ctx context.Context, path string, body *godog.DocString) error {
	return s.tc.PostRaw(path, "application/json", s.tc.Expand(body.Content))
}

func (s *commonSteps) putWithBody(ctx context.Context, path string, body *godog.DocString) error {
	return s.tc.PutRaw(path, "application/json", s.tc.Expand(body.Content))
}

func (s *commonSteps) postPlainText(ctx context.Context, path string) error {
	return s.tc.PostRaw(path, "text/plain", "hello")
}

func (s *commonSteps) statusShouldBe(ctx context.Context, code int) error {
	if got := s.tc.GetStatusCode(); got != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, got, s.tc.GetResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != s.tc.Expand(want) {
		return fmt.Errorf("field %q: expected %q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldEqualNumber(ctx context.Context, field string, want int) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, ok := v.(float64)
	if !ok || int(n) != want {
		return fmt.Errorf("field %q: expected %d, got %v", field, want, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldMatchPrefix(ctx context.Context, field, prefix string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	str, _ := v.(string)
	rest, ok := strings.CutPrefix(str, prefix)
	if !ok || rest == "" {
		return fmt.Errorf("field %q: expected %s followed by digits, got %q", field, prefix, str)
	}
	if _, err := strconv.ParseUint(rest, 10, 64); err != nil {
		return fmt.Errorf("field %q: non-numeric suffix in %q", field, str)
	}
	return nil
}

func (s *commonSteps) responseShouldContain(ctx context.Context, text string) error {
	if !strings.Contains(string(s.tc.GetResponseBody()), text) {
		return fmt.Errorf("response does not contain %q: %s", text, s.tc.GetResponseBody())
	}
	return nil
}

func (s *commonSteps) errorCodeShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldEqual(ctx, "error", code)
}

func (s *commonSteps) saveField(ctx context.Context, field, name string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	s.tc.Save(name, fmt.Sprint(v))
	return nil
}
