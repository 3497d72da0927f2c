package service

import (
	"context"
	"regexp"
	"time"

	"govportal/internal/audit"
	"govportal/internal/cases/models"
	"govportal/internal/cases/timeline"
	"govportal/internal/cases/trackingid"
	dErrors "govportal/pkg/domain-errors"
)

var appTrackingID = regexp.MustCompile(`^APP[0-9]+$`)

func (s *ServiceSuite) TestApplicationSubmit() {
	s.Run("creates a submitted application with one system entry", func() {
		a := s.submitApplication("u-1")

		s.NotEmpty(a.ID)
		s.Regexp(appTrackingID, a.TrackingID)
		s.Equal(trackingid.Format(trackingid.PrefixApplication, s.now), a.TrackingID)
		s.Equal(models.StatusSubmitted, a.Status)
		s.Equal(s.now, a.SubmittedAt)
		s.Equal(s.now, a.UpdatedAt)
		s.Require().Len(a.Timeline, 1)
		s.Equal(timeline.Entry{Stage: "Submitted", Status: "completed", Timestamp: s.now, Officer: timeline.System}, a.Timeline[0])

		stored, err := s.applications.Get(context.Background(), a.ID)
		s.Require().NoError(err)
		s.Equal(a.TrackingID, stored.TrackingID)
		s.Equal([]audit.Action{audit.ActionCaseSubmitted}, s.auditActions(a.ID))
	})

	s.Run("same millisecond submissions get distinct tracking ids", func() {
		a := s.submitApplication("u-2")
		b := s.submitApplication("u-2")
		s.NotEqual(a.TrackingID, b.TrackingID)
		s.NotEqual(a.ID, b.ID)
	})

	s.Run("missing scheme name is rejected before any write", func() {
		_, err := s.applications.Submit(s.at(0), models.ApplicationSubmission{UserID: "u-3"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		list, err := s.applications.ListByUser(context.Background(), "u-3")
		s.Require().NoError(err)
		s.Empty(list)
	})
}

func (s *ServiceSuite) TestApplicationLookups() {
	a := s.submitApplication("u-1")
	s.submitApplication("u-1")
	s.submitApplication("u-2")
	ctx := context.Background()

	s.Run("by tracking id", func() {
		got, err := s.applications.GetByTrackingID(ctx, a.TrackingID)
		s.Require().NoError(err)
		s.Equal(a.ID, got.ID)
	})

	s.Run("unknown tracking id is not found", func() {
		_, err := s.applications.GetByTrackingID(ctx, "APP0")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("application not found", dErrors.Message(err))
	})

	s.Run("unknown id is not found", func() {
		_, err := s.applications.Get(ctx, "missing")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("list by user", func() {
		mine, err := s.applications.ListByUser(ctx, "u-1")
		s.Require().NoError(err)
		s.Len(mine, 2)

		none, err := s.applications.ListByUser(ctx, "nobody")
		s.Require().NoError(err)
		s.NotNil(none)
		s.Empty(none)
	})

	s.Run("list all", func() {
		all, err := s.applications.ListAll(ctx)
		s.Require().NoError(err)
		s.Len(all, 3)
	})
}

func (s *ServiceSuite) TestApplicationUpdateStatus() {
	s.Run("records the acting officer and keeps history", func() {
		a := s.submitApplication("u-1")
		officer := models.StatusUpdate{Status: "verified", OfficerName: "R. Mehta", OfficerID: "off-7"}

		updated, err := s.applications.UpdateStatus(s.at(time.Hour), a.ID, officer)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, updated.Status)
		s.Equal(s.now.Add(time.Hour), updated.UpdatedAt)
		s.Require().Len(updated.Timeline, 2)
		s.Equal(a.Timeline[0], updated.Timeline[0])
		s.Equal("Verified", updated.Timeline[1].Stage)
		s.Equal(timeline.Officer{Name: "R. Mehta", ID: "off-7"}, updated.Timeline[1].Officer)
		s.Equal("R. Mehta", updated.AssignedOfficer)

		stored, err := s.applications.Get(context.Background(), a.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, stored.Status)
		s.Equal("R. Mehta", stored.AssignedOfficer)
		s.Len(stored.Timeline, 2)
		s.Equal("PM Kisan", stored.SchemeName)
		s.Equal(a.SubmittedAt, stored.SubmittedAt)
		s.Equal(a.TrackingID, stored.TrackingID)
		s.Equal([]audit.Action{audit.ActionCaseSubmitted, audit.ActionCaseStatusChanged}, s.auditActions(a.ID))
	})

	s.Run("status is normalized and unknown stages read Processing", func() {
		a := s.submitApplication("u-1")
		updated, err := s.applications.UpdateStatus(s.at(time.Minute), a.ID, models.StatusUpdate{Status: " Under_Review "})
		s.Require().NoError(err)
		s.Equal(models.StatusUnderReview, updated.Status)
		s.Equal("Under Review", updated.Timeline[1].Stage)
		s.Equal(timeline.System, updated.Timeline[1].Officer)
		s.Empty(updated.AssignedOfficer)

		updated, err = s.applications.UpdateStatus(s.at(2*time.Minute), a.ID, models.StatusUpdate{Status: "on_hold"})
		s.Require().NoError(err)
		s.Equal("Processing", updated.Timeline[2].Stage)
	})

	s.Run("remarks are stored", func() {
		a := s.submitApplication("u-1")
		_, err := s.applications.UpdateStatus(s.at(time.Minute), a.ID, models.StatusUpdate{Status: "rejected", Remarks: "income proof missing"})
		s.Require().NoError(err)

		stored, err := s.applications.Get(context.Background(), a.ID)
		s.Require().NoError(err)
		s.Equal("income proof missing", stored.Remarks)
	})

	s.Run("empty status is a validation error", func() {
		a := s.submitApplication("u-1")
		_, err := s.applications.UpdateStatus(s.at(time.Minute), a.ID, models.StatusUpdate{Status: "  "})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown case is not found", func() {
		_, err := s.applications.UpdateStatus(s.at(time.Minute), "missing", models.StatusUpdate{Status: "verified"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("updatedAt never moves backwards", func() {
		a := s.submitApplication("u-1")
		updated, err := s.applications.UpdateStatus(s.at(-time.Hour), a.ID, models.StatusUpdate{Status: "verified"})
		s.Require().NoError(err)
		s.Equal(s.now, updated.UpdatedAt)
	})
}

func (s *ServiceSuite) TestApplicationStrictPolicy() {
	s.strict()
	a := s.submitApplication("u-1")

	s.Run("illegal edge is a conflict and nothing is written", func() {
		_, err := s.applications.UpdateStatus(s.at(time.Minute), a.ID, models.StatusUpdate{Status: "approved"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		stored, err := s.applications.Get(context.Background(), a.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusSubmitted, stored.Status)
		s.Len(stored.Timeline, 1)
	})

	s.Run("unknown status is a validation error", func() {
		_, err := s.applications.UpdateStatus(s.at(time.Minute), a.ID, models.StatusUpdate{Status: "on_hold"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("the declared path succeeds", func() {
		for i, status := range []string{"verified", "under_review", "approved"} {
			_, err := s.applications.UpdateStatus(s.at(time.Duration(i+1)*time.Minute), a.ID, models.StatusUpdate{Status: status})
			s.Require().NoError(err, status)
		}
		stored, err := s.applications.Get(context.Background(), a.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, stored.Status)
		s.Len(stored.Timeline, 4)
	})
}
