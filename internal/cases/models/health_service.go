package models

import (
	"strings"
	"time"

	dErrors "govportal/pkg/domain-errors"
)

// HealthService is a request for a health document such as a birth certificate.
//
// Invariants:
//   - IssuedAt is set the first time the request reaches issued and is never
//     cleared or moved afterwards
//   - CertificateNumber only changes when an officer supplies a new one
type HealthService struct {
	Record
	ServiceType       string
	FormData          map[string]any
	CertificateNumber string
	IssuedAt          *time.Time
}

func (h *HealthService) Family() Family {
	return FamilyHealthService
}

// ApplyCertificate records a certificate number when given and stamps
// IssuedAt once the request is issued. Returns true when either changed.
func (h *HealthService) ApplyCertificate(number string, now time.Time) bool {
	changed := false
	if number != "" {
		h.CertificateNumber = number
		changed = true
	}
	if h.Status == StatusIssued && h.IssuedAt == nil {
		t := now
		h.IssuedAt = &t
		changed = true
	}
	return changed
}

// HealthServiceSubmission is the citizen input for a new health service request.
type HealthServiceSubmission struct {
	UserID      string         `json:"userId"`
	ServiceType string         `json:"serviceType"`
	FormData    map[string]any `json:"formData"`
}

// Validate trims the input and checks required fields.
func (r *HealthServiceSubmission) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "userId is required")
	}
	if r.ServiceType == "" {
		return dErrors.New(dErrors.CodeValidation, "serviceType is required")
	}
	return nil
}

// NewHealthService builds an unsubmitted health service request from validated input.
func NewHealthService(r HealthServiceSubmission) *HealthService {
	return &HealthService{
		Record:      Record{UserID: r.UserID},
		ServiceType: r.ServiceType,
		FormData:    r.FormData,
	}
}
