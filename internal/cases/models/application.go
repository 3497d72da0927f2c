package models

import (
	"strings"

	dErrors "govportal/pkg/domain-errors"
	pstrings "govportal/pkg/platform/strings"
)

// Application is a citizen's application to a welfare scheme.
type Application struct {
	Record
	SchemeName string
	SchemeID   string
	Documents  []string
	FormData   map[string]any
}

func (a *Application) Family() Family {
	return FamilyApplication
}

// ApplicationSubmission is the citizen input for a new application.
type ApplicationSubmission struct {
	UserID     string         `json:"userId"`
	SchemeName string         `json:"schemeName"`
	SchemeID   string         `json:"schemeId"`
	Documents  []string       `json:"documents"`
	FormData   map[string]any `json:"formData"`
}

// Validate trims the input and checks required fields.
func (r *ApplicationSubmission) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	r.SchemeName = strings.TrimSpace(r.SchemeName)
	r.SchemeID = strings.TrimSpace(r.SchemeID)
	r.Documents = pstrings.DedupeAndTrim(r.Documents)
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "userId is required")
	}
	if r.SchemeName == "" {
		return dErrors.New(dErrors.CodeValidation, "schemeName is required")
	}
	return nil
}

// NewApplication builds an unsubmitted application from validated input.
func NewApplication(r ApplicationSubmission) *Application {
	return &Application{
		Record:     Record{UserID: r.UserID},
		SchemeName: r.SchemeName,
		SchemeID:   r.SchemeID,
		Documents:  append([]string(nil), r.Documents...),
		FormData:   r.FormData,
	}
}
