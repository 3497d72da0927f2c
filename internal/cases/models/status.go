package models

import (
	"strings"

	dErrors "govportal/pkg/domain-errors"
)

// Status is a case lifecycle state. Values are lowercase.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusVerified    Status = "verified"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusAssigned    Status = "assigned"
	StatusInProgress  Status = "in_progress"
	StatusResolved    Status = "resolved"
	StatusClosed      Status = "closed"
	StatusIssued      Status = "issued"
)

// ParseStatus normalizes s (trimmed, lowercased). Empty input is a validation error.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return Status(normalized), nil
}

func (s Status) String() string {
	return string(s)
}

// Policy selects how strictly a lifecycle judges requested transitions.
type Policy string

const (
	// PolicyPermissive accepts any non-empty status.
	PolicyPermissive Policy = "permissive"
	// PolicyStrict accepts only the edges of the family's lifecycle.
	PolicyStrict Policy = "strict"
)

// ParsePolicy maps a configured policy name onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyPermissive, "":
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown transition policy: "+s)
	}
}
