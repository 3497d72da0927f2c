package models

import (
	"strings"

	"govportal/internal/cases/timeline"
	dErrors "govportal/pkg/domain-errors"
)

// StatusUpdate is an officer's request to move a case.
// Resolution applies to complaints, CertificateNumber to health services;
// each family ignores the other's field.
type StatusUpdate struct {
	Status            string `json:"status"`
	OfficerName       string `json:"officerName"`
	OfficerID         string `json:"officerId"`
	Remarks           string `json:"remarks"`
	Resolution        string `json:"resolution"`
	CertificateNumber string `json:"certificateNumber"`
}

// Validate trims the input. Status itself is checked by ParseStatus.
func (u *StatusUpdate) Validate() error {
	if u == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	u.Status = strings.TrimSpace(u.Status)
	u.OfficerName = strings.TrimSpace(u.OfficerName)
	u.OfficerID = strings.TrimSpace(u.OfficerID)
	u.Remarks = strings.TrimSpace(u.Remarks)
	u.Resolution = strings.TrimSpace(u.Resolution)
	u.CertificateNumber = strings.TrimSpace(u.CertificateNumber)
	if u.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

// Officer returns the acting officer, System when none was named.
func (u StatusUpdate) Officer() timeline.Officer {
	return timeline.Officer{Name: u.OfficerName, ID: u.OfficerID}.OrSystem()
}

// Assignment hands a complaint to an officer.
type Assignment struct {
	OfficerID string `json:"officerId"`
}

// Validate trims the input and requires an officer.
func (a *Assignment) Validate() error {
	if a == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	a.OfficerID = strings.TrimSpace(a.OfficerID)
	if a.OfficerID == "" {
		return dErrors.New(dErrors.CodeValidation, "officerId is required")
	}
	return nil
}
