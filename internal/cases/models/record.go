package models

import (
	"time"

	"govportal/internal/cases/timeline"
)

// Family names a kind of case.
type Family string

const (
	FamilyApplication   Family = "application"
	FamilyComplaint     Family = "complaint"
	FamilyHealthService Family = "health_service"
)

// Label is the human form used in error messages.
func (f Family) Label() string {
	switch f {
	case FamilyHealthService:
		return "health service"
	default:
		return string(f)
	}
}

// Case is implemented by every family record.
type Case interface {
	Base() *Record
	Family() Family
}

// Record holds the fields every case family shares.
//
// Invariants:
//   - ID, TrackingID and UserID never change after Submit
//   - UpdatedAt never moves backwards
//   - Timeline is append-only and holds at least the submission entry once submitted
type Record struct {
	ID          string
	TrackingID  string
	UserID      string
	Status      Status
	Remarks     string
	SubmittedAt time.Time
	UpdatedAt   time.Time
	Timeline    []timeline.Entry

	// AssignedOfficer names the last officer who changed the status.
	AssignedOfficer string
}

// Base exposes the shared record of a family type.
func (r *Record) Base() *Record {
	return r
}

// ApplySubmission stamps identity, the initial status and the first
// timeline entry onto a new case.
func (r *Record) ApplySubmission(id, trackingID string, now time.Time) {
	r.ID = id
	r.TrackingID = trackingID
	r.Status = StatusSubmitted
	r.SubmittedAt = now
	r.UpdatedAt = now
	r.Timeline = timeline.Append(nil, timeline.StageFor(string(StatusSubmitted)), timeline.System, now)
}

// ApplyStatus moves the case to status and records who did it. A named
// officer also becomes the case's AssignedOfficer.
// Validate the transition with Lifecycle.CheckTransition first.
func (r *Record) ApplyStatus(status Status, officer timeline.Officer, now time.Time) {
	r.Status = status
	r.Touch(now)
	if officer.Name != "" && officer != timeline.System {
		r.AssignedOfficer = officer.Name
	}
	r.Timeline = timeline.Append(r.Timeline, timeline.StageFor(string(status)), officer.OrSystem(), r.UpdatedAt)
}

// Touch refreshes UpdatedAt without letting it move backwards.
func (r *Record) Touch(now time.Time) {
	if now.After(r.UpdatedAt) {
		r.UpdatedAt = now
	}
}
