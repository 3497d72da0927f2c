package models

import (
	"strings"
	"time"

	dErrors "govportal/pkg/domain-errors"
)

// Complaint priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Complaint is a grievance raised by a citizen.
//
// Invariants:
//   - ResolvedAt is set the first time the complaint reaches resolved or
//     closed and is never cleared or moved afterwards
type Complaint struct {
	Record
	Type        string
	Category    string
	Description string
	Priority    string
	AssignedTo  string
	Resolution  string
	ResolvedAt  *time.Time
}

func (c *Complaint) Family() Family {
	return FamilyComplaint
}

// ApplyResolution records resolution text when given and stamps ResolvedAt
// once the complaint is resolved or closed. Returns true when either changed.
func (c *Complaint) ApplyResolution(resolution string, now time.Time) bool {
	changed := false
	if resolution != "" {
		c.Resolution = resolution
		changed = true
	}
	if (c.Status == StatusResolved || c.Status == StatusClosed) && c.ResolvedAt == nil {
		t := now
		c.ResolvedAt = &t
		changed = true
	}
	return changed
}

// CanAssign checks that the complaint may be handed to an officer under policy.
// Reassigning an already assigned complaint is always allowed.
func (c *Complaint) CanAssign(policy Policy) error {
	if c.Status == StatusAssigned {
		return nil
	}
	return ComplaintLifecycle.CheckTransition(policy, c.Status, StatusAssigned)
}

// ApplyAssignment hands the complaint to officerID and forces status assigned.
// No timeline entry is written.
func (c *Complaint) ApplyAssignment(officerID string, now time.Time) {
	c.AssignedTo = officerID
	c.Status = StatusAssigned
	c.Touch(now)
}

// ComplaintSubmission is the citizen input for a new complaint.
type ComplaintSubmission struct {
	UserID      string `json:"userId"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate trims the input, defaults the priority and checks required fields.
func (r *ComplaintSubmission) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	r.Type = strings.TrimSpace(r.Type)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))

	switch {
	case r.UserID == "":
		return dErrors.New(dErrors.CodeValidation, "userId is required")
	case r.Type == "":
		return dErrors.New(dErrors.CodeValidation, "type is required")
	case r.Category == "":
		return dErrors.New(dErrors.CodeValidation, "category is required")
	case r.Description == "":
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}

	switch r.Priority {
	case "":
		r.Priority = PriorityMedium
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return dErrors.New(dErrors.CodeValidation, "priority must be low, medium or high")
	}
	return nil
}

// NewComplaint builds an unsubmitted complaint from validated input.
func NewComplaint(r ComplaintSubmission) *Complaint {
	priority := r.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return &Complaint{
		Record:      Record{UserID: r.UserID},
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Priority:    priority,
	}
}
