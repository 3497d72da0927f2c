package models

import (
	"fmt"

	dErrors "govportal/pkg/domain-errors"
)

// Lifecycle is the state graph of one case family.
type Lifecycle struct {
	family Family
	edges  map[Status][]Status
}

// ApplicationLifecycle: submitted → verified → under_review → {approved | rejected}.
var ApplicationLifecycle = Lifecycle{
	family: FamilyApplication,
	edges: map[Status][]Status{
		StatusSubmitted:   {StatusVerified},
		StatusVerified:    {StatusUnderReview},
		StatusUnderReview: {StatusApproved, StatusRejected},
		StatusApproved:    nil,
		StatusRejected:    nil,
	},
}

// ComplaintLifecycle: submitted → assigned → in_progress → {resolved | closed}.
var ComplaintLifecycle = Lifecycle{
	family: FamilyComplaint,
	edges: map[Status][]Status{
		StatusSubmitted:  {StatusAssigned},
		StatusAssigned:   {StatusInProgress},
		StatusInProgress: {StatusResolved, StatusClosed},
		StatusResolved:   nil,
		StatusClosed:     nil,
	},
}

// HealthServiceLifecycle: submitted → verified → approved → {rejected | issued}.
var HealthServiceLifecycle = Lifecycle{
	family: FamilyHealthService,
	edges: map[Status][]Status{
		StatusSubmitted: {StatusVerified},
		StatusVerified:  {StatusApproved},
		StatusApproved:  {StatusRejected, StatusIssued},
		StatusRejected:  nil,
		StatusIssued:    nil,
	},
}

// Family returns the case family the lifecycle belongs to.
func (l Lifecycle) Family() Family {
	return l.family
}

// Knows reports whether s is a state of this lifecycle.
func (l Lifecycle) Knows(s Status) bool {
	_, ok := l.edges[s]
	return ok
}

// Allows reports whether from → to is an edge.
func (l Lifecycle) Allows(from, to Status) bool {
	for _, next := range l.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing edges.
func (l Lifecycle) Terminal(s Status) bool {
	next, ok := l.edges[s]
	return ok && len(next) == 0
}

// CheckTransition judges from → to under policy. Permissive accepts every
// target; strict rejects unknown targets as validation errors and missing
// edges as conflicts.
func (l Lifecycle) CheckTransition(policy Policy, from, to Status) error {
	if policy != PolicyStrict {
		return nil
	}
	if !l.Knows(to) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s status %q", l.family.Label(), to))
	}
	if !l.Allows(from, to) {
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s cannot move from %s to %s", l.family.Label(), from, to))
	}
	return nil
}
