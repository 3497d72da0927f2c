package store

import (
	"time"

	"govportal/internal/cases/models"
	"govportal/internal/cases/timeline"
)

// Document field names shared by every case collection.
const (
	FieldID                = "caseId"
	FieldTrackingID        = "trackingId"
	FieldUserID            = "userId"
	FieldStatus            = "status"
	FieldRemarks           = "remarks"
	FieldUpdatedAt         = "updatedAt"
	FieldTimeline          = "timeline"
	FieldAssignedTo        = "assignedTo"
	FieldAssignedOfficer   = "assignedOfficer"
	FieldResolution        = "resolution"
	FieldResolvedAt        = "resolvedAt"
	FieldCertificateNumber = "certificateNumber"
	FieldIssuedAt          = "issuedAt"
)

type officerDoc struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type timelineDoc struct {
	Stage     string     `json:"stage"`
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Officer   officerDoc `json:"officer"`
}

type recordDoc struct {
	ID          string        `json:"caseId"`
	TrackingID  string        `json:"trackingId"`
	UserID      string        `json:"userId"`
	Status      string        `json:"status"`
	Remarks     string        `json:"remarks,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Timeline    []timelineDoc `json:"timeline"`

	AssignedOfficer string `json:"assignedOfficer,omitempty"`
}

type applicationDoc struct {
	recordDoc
	SchemeName string         `json:"schemeName"`
	SchemeID   string         `json:"schemeId,omitempty"`
	Documents  []string       `json:"documents"`
	FormData   map[string]any `json:"formData,omitempty"`
}

type complaintDoc struct {
	recordDoc
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

type healthServiceDoc struct {
	recordDoc
	ServiceType       string         `json:"serviceType"`
	FormData          map[string]any `json:"formData,omitempty"`
	CertificateNumber string         `json:"certificateNumber,omitempty"`
	IssuedAt          *time.Time     `json:"issuedAt,omitempty"`
}

func fromRecord(r *models.Record) recordDoc {
	entries := make([]timelineDoc, 0, len(r.Timeline))
	for _, e := range r.Timeline {
		entries = append(entries, timelineDoc{
			Stage:     e.Stage,
			Status:    e.Status,
			Timestamp: e.Timestamp,
			Officer:   officerDoc{Name: e.Officer.Name, ID: e.Officer.ID},
		})
	}
	return recordDoc{
		ID:          r.ID,
		TrackingID:  r.TrackingID,
		UserID:      r.UserID,
		Status:      string(r.Status),
		Remarks:     r.Remarks,
		SubmittedAt: r.SubmittedAt,
		UpdatedAt:   r.UpdatedAt,
		Timeline:    entries,

		AssignedOfficer: r.AssignedOfficer,
	}
}

func (d recordDoc) toRecord() models.Record {
	entries := make([]timeline.Entry, 0, len(d.Timeline))
	for _, e := range d.Timeline {
		entries = append(entries, timeline.Entry{
			Stage:     e.Stage,
			Status:    e.Status,
			Timestamp: e.Timestamp,
			Officer:   timeline.Officer{Name: e.Officer.Name, ID: e.Officer.ID},
		})
	}
	return models.Record{
		ID:          d.ID,
		TrackingID:  d.TrackingID,
		UserID:      d.UserID,
		Status:      models.Status(d.Status),
		Remarks:     d.Remarks,
		SubmittedAt: d.SubmittedAt,
		UpdatedAt:   d.UpdatedAt,
		Timeline:    entries,

		AssignedOfficer: d.AssignedOfficer,
	}
}

func encodeApplication(a *models.Application) any {
	return applicationDoc{
		recordDoc:  fromRecord(&a.Record),
		SchemeName: a.SchemeName,
		SchemeID:   a.SchemeID,
		Documents:  a.Documents,
		FormData:   a.FormData,
	}
}

func decodeApplication(d *applicationDoc) *models.Application {
	return &models.Application{
		Record:     d.toRecord(),
		SchemeName: d.SchemeName,
		SchemeID:   d.SchemeID,
		Documents:  d.Documents,
		FormData:   d.FormData,
	}
}

func encodeComplaint(c *models.Complaint) any {
	return complaintDoc{
		recordDoc:   fromRecord(&c.Record),
		Type:        c.Type,
		Category:    c.Category,
		Description: c.Description,
		Priority:    c.Priority,
		AssignedTo:  c.AssignedTo,
		Resolution:  c.Resolution,
		ResolvedAt:  c.ResolvedAt,
	}
}

func decodeComplaint(d *complaintDoc) *models.Complaint {
	return &models.Complaint{
		Record:      d.toRecord(),
		Type:        d.Type,
		Category:    d.Category,
		Description: d.Description,
		Priority:    d.Priority,
		AssignedTo:  d.AssignedTo,
		Resolution:  d.Resolution,
		ResolvedAt:  d.ResolvedAt,
	}
}

func encodeHealthService(h *models.HealthService) any {
	return healthServiceDoc{
		recordDoc:         fromRecord(&h.Record),
		ServiceType:       h.ServiceType,
		FormData:          h.FormData,
		CertificateNumber: h.CertificateNumber,
		IssuedAt:          h.IssuedAt,
	}
}

func decodeHealthService(d *healthServiceDoc) *models.HealthService {
	return &models.HealthService{
		Record:            d.toRecord(),
		ServiceType:       d.ServiceType,
		FormData:          d.FormData,
		CertificateNumber: d.CertificateNumber,
		IssuedAt:          d.IssuedAt,
	}
}
