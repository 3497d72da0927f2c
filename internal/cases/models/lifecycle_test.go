package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "govportal/pkg/domain-errors"
)

func TestLifecycleEdges(t *testing.T) {
	tests := []struct {
		name      string
		lifecycle Lifecycle
		from, to  Status
		allowed   bool
	}{
		{"application verify", ApplicationLifecycle, StatusSubmitted, StatusVerified, true},
		{"application review", ApplicationLifecycle, StatusVerified, StatusUnderReview, true},
		{"application approve", ApplicationLifecycle, StatusUnderReview, StatusApproved, true},
		{"application reject", ApplicationLifecycle, StatusUnderReview, StatusRejected, true},
		{"application skip review", ApplicationLifecycle, StatusSubmitted, StatusApproved, false},
		{"application reopen", ApplicationLifecycle, StatusApproved, StatusSubmitted, false},
		{"complaint assign", ComplaintLifecycle, StatusSubmitted, StatusAssigned, true},
		{"complaint start", ComplaintLifecycle, StatusAssigned, StatusInProgress, true},
		{"complaint resolve", ComplaintLifecycle, StatusInProgress, StatusResolved, true},
		{"complaint close", ComplaintLifecycle, StatusInProgress, StatusClosed, true},
		{"complaint resolve early", ComplaintLifecycle, StatusSubmitted, StatusResolved, false},
		{"health verify", HealthServiceLifecycle, StatusSubmitted, StatusVerified, true},
		{"health approve", HealthServiceLifecycle, StatusVerified, StatusApproved, true},
		{"health issue", HealthServiceLifecycle, StatusApproved, StatusIssued, true},
		{"health reject", HealthServiceLifecycle, StatusApproved, StatusRejected, true},
		{"health issue unapproved", HealthServiceLifecycle, StatusVerified, StatusIssued, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.lifecycle.Allows(tt.from, tt.to))
		})
	}
}

func TestLifecycleTerminal(t *testing.T) {
	assert.True(t, ApplicationLifecycle.Terminal(StatusApproved))
	assert.True(t, ComplaintLifecycle.Terminal(StatusClosed))
	assert.True(t, HealthServiceLifecycle.Terminal(StatusIssued))
	assert.False(t, HealthServiceLifecycle.Terminal(StatusApproved))
	assert.False(t, ApplicationLifecycle.Terminal(StatusIssued))
}

func TestCheckTransition(t *testing.T) {
	t.Run("permissive accepts anything", func(t *testing.T) {
		assert.NoError(t, ApplicationLifecycle.CheckTransition(PolicyPermissive, StatusApproved, "on_hold"))
		assert.NoError(t, ComplaintLifecycle.CheckTransition(PolicyPermissive, StatusSubmitted, StatusClosed))
	})

	t.Run("strict rejects unknown status as validation", func(t *testing.T) {
		err := ApplicationLifecycle.CheckTransition(PolicyStrict, StatusSubmitted, "on_hold")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("strict rejects illegal edge as conflict", func(t *testing.T) {
		err := HealthServiceLifecycle.CheckTransition(PolicyStrict, StatusSubmitted, StatusIssued)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(t, err.Error(), "health service cannot move from submitted to issued")
	})

	t.Run("strict accepts declared edge", func(t *testing.T) {
		assert.NoError(t, ComplaintLifecycle.CheckTransition(PolicyStrict, StatusInProgress, StatusResolved))
	})
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("  Under_Review ")
	assert.NoError(t, err)
	assert.Equal(t, StatusUnderReview, s)

	_, err = ParseStatus("   ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("STRICT")
	assert.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyPermissive, p)

	_, err = ParsePolicy("lenient")
	assert.Error(t, err)
}
