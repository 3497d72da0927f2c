package service

import (
	"context"
	"time"

	"govportal/internal/cases/models"
	"govportal/internal/cases/trackingid"
	dErrors "govportal/pkg/domain-errors"
)

func (s *ServiceSuite) TestHealthServiceSubmitPrefixes() {
	cases := map[string]string{
		"birth-certificate":       "BIRTH",
		"Death-Certificate":       "DEATH",
		"health-card":             "HEALTH",
		"vaccination-certificate": "VAC",
		"disability-certificate":  "HLTH",
	}
	for serviceType, prefix := range cases {
		s.Run(serviceType, func() {
			h := s.submitHealth("u-1", serviceType)
			s.Regexp("^"+prefix+"[0-9]+$", h.TrackingID)
			s.Equal(serviceType, h.ServiceType)
			s.Equal(models.StatusSubmitted, h.Status)
			s.Equal("Anu", h.FormData["childName"])
		})
	}
}

func (s *ServiceSuite) TestHealthServiceSubmitRequiresType() {
	_, err := s.health.Submit(s.at(0), models.HealthServiceSubmission{UserID: "u-1"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestHealthServiceIssue() {
	s.Run("issuedAt is stamped once and the certificate kept", func() {
		h := s.submitHealth("u-1", "birth-certificate")
		s.Equal(trackingid.Format(trackingid.PrefixBirth, s.now), h.TrackingID)

		issued, err := s.health.UpdateStatus(s.at(time.Hour), h.ID, models.StatusUpdate{
			Status: "issued", CertificateNumber: "BC-2024-0001",
		})
		s.Require().NoError(err)
		s.Equal("BC-2024-0001", issued.CertificateNumber)
		s.Require().NotNil(issued.IssuedAt)
		s.Equal(s.now.Add(time.Hour), *issued.IssuedAt)

		again, err := s.health.UpdateStatus(s.at(2*time.Hour), h.ID, models.StatusUpdate{Status: "issued"})
		s.Require().NoError(err)
		s.Equal(s.now.Add(time.Hour), *again.IssuedAt)
		s.Equal("BC-2024-0001", again.CertificateNumber)

		stored, err := s.health.Get(context.Background(), h.ID)
		s.Require().NoError(err)
		s.Equal("BC-2024-0001", stored.CertificateNumber)
		s.Require().NotNil(stored.IssuedAt)
		s.True(stored.IssuedAt.Equal(s.now.Add(time.Hour)))
		s.Len(stored.Timeline, 3)
	})

	s.Run("leaving issued keeps issuedAt and the certificate", func() {
		h := s.submitHealth("u-2", "vaccination-certificate")
		_, err := s.health.UpdateStatus(s.at(time.Hour), h.ID, models.StatusUpdate{
			Status: "issued", CertificateNumber: "VAC-77",
		})
		s.Require().NoError(err)

		rejected, err := s.health.UpdateStatus(s.at(3*time.Hour), h.ID, models.StatusUpdate{Status: "rejected"})
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, rejected.Status)
		s.Equal("VAC-77", rejected.CertificateNumber)
		s.Require().NotNil(rejected.IssuedAt)
		s.Equal(s.now.Add(time.Hour), *rejected.IssuedAt)

		stored, err := s.health.Get(context.Background(), h.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, stored.Status)
		s.Equal("VAC-77", stored.CertificateNumber)
		s.Require().NotNil(stored.IssuedAt)
		s.True(stored.IssuedAt.Equal(s.now.Add(time.Hour)))
		s.Equal("Rejected", stored.Timeline[len(stored.Timeline)-1].Stage)
	})

	s.Run("verified leaves issuedAt unset", func() {
		h := s.submitHealth("u-1", "health-card")
		updated, err := s.health.UpdateStatus(s.at(time.Hour), h.ID, models.StatusUpdate{Status: "verified"})
		s.Require().NoError(err)
		s.Nil(updated.IssuedAt)
		s.Empty(updated.CertificateNumber)
	})
}

func (s *ServiceSuite) TestHealthServiceStrictPolicy() {
	s.strict()
	h := s.submitHealth("u-1", "death-certificate")

	_, err := s.health.UpdateStatus(s.at(time.Minute), h.ID, models.StatusUpdate{Status: "issued"})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.health.UpdateStatus(s.at(time.Minute), h.ID, models.StatusUpdate{Status: "under_review"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	for i, status := range []string{"verified", "approved", "issued"} {
		_, err := s.health.UpdateStatus(s.at(time.Duration(i+1)*time.Minute), h.ID, models.StatusUpdate{Status: status})
		s.Require().NoError(err, status)
	}
}
