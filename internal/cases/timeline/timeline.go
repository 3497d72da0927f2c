// Package timeline records the human-readable history attached to every case.
package timeline

import (
	"strings"
	"time"
)

// StatusCompleted is the status of every recorded entry.
const StatusCompleted = "completed"

// Officer identifies who performed a step.
type Officer struct {
	Name string
	ID   string
}

// System is the officer recorded for automatic steps such as submission.
var System = Officer{Name: "System", ID: "system"}

// IsZero reports whether no officer was supplied.
func (o Officer) IsZero() bool {
	return o.Name == "" && o.ID == ""
}

// OrSystem returns o, or System when o is empty.
func (o Officer) OrSystem() Officer {
	if o.IsZero() {
		return System
	}
	return o
}

// Entry is one completed step in a case's history.
type Entry struct {
	Stage     string
	Status    string
	Timestamp time.Time
	Officer   Officer
}

var stages = map[string]string{
	"submitted":    "Submitted",
	"verified":     "Verified",
	"under_review": "Under Review",
	"approved":     "Approved",
	"rejected":     "Rejected",
}

// StageProcessing labels every status without a dedicated stage name.
const StageProcessing = "Processing"

// StageFor maps a status onto its display stage, ignoring case.
func StageFor(status string) string {
	if stage, ok := stages[strings.ToLower(strings.TrimSpace(status))]; ok {
		return stage
	}
	return StageProcessing
}

// Append returns a new slice holding entries plus one completed entry.
// The input backing array is never written.
func Append(entries []Entry, stage string, officer Officer, now time.Time) []Entry {
	out := make([]Entry, len(entries), len(entries)+1)
	copy(out, entries)
	return append(out, Entry{
		Stage:     stage,
		Status:    StatusCompleted,
		Timestamp: now,
		Officer:   officer,
	})
}
