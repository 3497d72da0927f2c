package audit

import "time"

// Action names an audited domain event.
type Action string

const (
	ActionCaseSubmitted     Action = "case_submitted"
	ActionCaseStatusChanged Action = "case_status_changed"
	ActionComplaintAssigned Action = "complaint_assigned"
	ActionProfileSaved      Action = "profile_saved"
)

// Event is emitted from domain logic to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     Action    `json:"action"`
	Family     string    `json:"family,omitempty"`
	CaseID     string    `json:"caseId,omitempty"`
	TrackingID string    `json:"trackingId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	// ActorID is the officer acting on the citizen's case, empty for citizen actions.
	ActorID    string `json:"actorId,omitempty"`
	FromStatus string `json:"fromStatus,omitempty"`
	ToStatus   string `json:"toStatus,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

// Key is the partition key of the event: the case when there is one, else the user.
func (e Event) Key() string {
	if e.CaseID != "" {
		return e.CaseID
	}
	return e.UserID
}
