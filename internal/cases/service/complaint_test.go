package service

import (
	"context"
	"time"

	"govportal/internal/audit"
	"govportal/internal/cases/models"
	"govportal/internal/cases/trackingid"
	dErrors "govportal/pkg/domain-errors"
)

func (s *ServiceSuite) TestComplaintSubmit() {
	s.Run("defaults priority to medium", func() {
		c := s.submitComplaint("u-1")
		s.Equal(trackingid.Format(trackingid.PrefixComplaint, s.now), c.TrackingID)
		s.Equal(models.PriorityMedium, c.Priority)
		s.Equal(models.StatusSubmitted, c.Status)
		s.Empty(c.AssignedTo)
		s.Nil(c.ResolvedAt)
		s.Len(c.Timeline, 1)
	})

	s.Run("keeps an explicit priority", func() {
		c, err := s.complaints.Submit(s.at(0), models.ComplaintSubmission{
			UserID: "u-1", Type: "service", Category: "water", Description: "No supply", Priority: "HIGH",
		})
		s.Require().NoError(err)
		s.Equal(models.PriorityHigh, c.Priority)
	})

	s.Run("unknown priority is a validation error", func() {
		_, err := s.complaints.Submit(s.at(0), models.ComplaintSubmission{
			UserID: "u-1", Type: "service", Category: "water", Description: "No supply", Priority: "urgent",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing description is a validation error", func() {
		_, err := s.complaints.Submit(s.at(0), models.ComplaintSubmission{UserID: "u-1", Type: "service", Category: "water"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestComplaintAssign() {
	s.Run("assigns without a timeline entry", func() {
		c := s.submitComplaint("u-1")

		assigned, err := s.complaints.Assign(s.at(time.Minute), c.ID, "off-3")
		s.Require().NoError(err)
		s.Equal("off-3", assigned.AssignedTo)
		s.Equal(models.StatusAssigned, assigned.Status)
		s.Equal(s.now.Add(time.Minute), assigned.UpdatedAt)
		s.Len(assigned.Timeline, 1)
		s.Equal([]audit.Action{audit.ActionCaseSubmitted, audit.ActionComplaintAssigned}, s.auditActions(c.ID))
	})

	s.Run("reassignment replaces the officer", func() {
		c := s.submitComplaint("u-1")
		_, err := s.complaints.Assign(s.at(time.Minute), c.ID, "off-3")
		s.Require().NoError(err)

		again, err := s.complaints.Assign(s.at(2*time.Minute), c.ID, "off-4")
		s.Require().NoError(err)
		s.Equal("off-4", again.AssignedTo)
	})

	s.Run("blank officer is a validation error", func() {
		c := s.submitComplaint("u-1")
		_, err := s.complaints.Assign(s.at(time.Minute), c.ID, "  ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown complaint is not found", func() {
		_, err := s.complaints.Assign(s.at(time.Minute), "missing", "off-3")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("complaint not found", dErrors.Message(err))
	})
}

func (s *ServiceSuite) TestComplaintResolution() {
	s.Run("resolvedAt is stamped once", func() {
		c := s.submitComplaint("u-1")

		resolved, err := s.complaints.UpdateStatus(s.at(time.Hour), c.ID, models.StatusUpdate{
			Status: "resolved", Resolution: "Road patched", OfficerName: "K. Rao", OfficerID: "off-3",
		})
		s.Require().NoError(err)
		s.Require().NotNil(resolved.ResolvedAt)
		s.Equal(s.now.Add(time.Hour), *resolved.ResolvedAt)
		s.Equal("Road patched", resolved.Resolution)
		s.Equal("Processing", resolved.Timeline[1].Stage)

		closed, err := s.complaints.UpdateStatus(s.at(2*time.Hour), c.ID, models.StatusUpdate{Status: "closed"})
		s.Require().NoError(err)
		s.Equal(s.now.Add(time.Hour), *closed.ResolvedAt)
		s.Equal("Road patched", closed.Resolution)

		stored, err := s.complaints.Get(context.Background(), c.ID)
		s.Require().NoError(err)
		s.Require().NotNil(stored.ResolvedAt)
		s.True(stored.ResolvedAt.Equal(s.now.Add(time.Hour)))
		s.Equal(models.StatusClosed, stored.Status)
		s.Len(stored.Timeline, 3)
		s.Equal("K. Rao", stored.AssignedOfficer)
	})

	s.Run("in progress leaves resolvedAt unset", func() {
		c := s.submitComplaint("u-1")
		updated, err := s.complaints.UpdateStatus(s.at(time.Hour), c.ID, models.StatusUpdate{Status: "in_progress"})
		s.Require().NoError(err)
		s.Nil(updated.ResolvedAt)
	})
}

func (s *ServiceSuite) TestComplaintStrictPolicy() {
	s.strict()

	s.Run("assign then progress along the lifecycle", func() {
		c := s.submitComplaint("u-1")
		_, err := s.complaints.Assign(s.at(time.Minute), c.ID, "off-3")
		s.Require().NoError(err)
		_, err = s.complaints.UpdateStatus(s.at(2*time.Minute), c.ID, models.StatusUpdate{Status: "in_progress"})
		s.Require().NoError(err)
		_, err = s.complaints.UpdateStatus(s.at(3*time.Minute), c.ID, models.StatusUpdate{Status: "resolved"})
		s.Require().NoError(err)
	})

	s.Run("assigning a terminal complaint is a conflict", func() {
		c := s.submitComplaint("u-1")
		_, err := s.complaints.Assign(s.at(time.Minute), c.ID, "off-3")
		s.Require().NoError(err)
		_, err = s.complaints.UpdateStatus(s.at(2*time.Minute), c.ID, models.StatusUpdate{Status: "in_progress"})
		s.Require().NoError(err)
		_, err = s.complaints.UpdateStatus(s.at(3*time.Minute), c.ID, models.StatusUpdate{Status: "closed"})
		s.Require().NoError(err)

		_, err = s.complaints.Assign(s.at(4*time.Minute), c.ID, "off-4")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		stored, err := s.complaints.Get(context.Background(), c.ID)
		s.Require().NoError(err)
		s.Equal("off-3", stored.AssignedTo)
	})

	s.Run("skipping assignment is a conflict", func() {
		c := s.submitComplaint("u-1")
		_, err := s.complaints.UpdateStatus(s.at(time.Minute), c.ID, models.StatusUpdate{Status: "resolved"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}
