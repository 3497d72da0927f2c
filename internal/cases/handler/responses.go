package handler

import (
	"time"

	"govportal/internal/cases/models"
	"govportal/internal/cases/service"
)

type OfficerResponse struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type TimelineEntryResponse struct {
	Stage     string          `json:"stage"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Officer   OfficerResponse `json:"officer"`
}

// CaseResponse carries the fields every case family shares.
type CaseResponse struct {
	ID          string                  `json:"id"`
	TrackingID  string                  `json:"trackingId"`
	UserID      string                  `json:"userId"`
	Status      string                  `json:"status"`
	Remarks     string                  `json:"remarks,omitempty"`
	SubmittedAt time.Time               `json:"submittedAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Timeline    []TimelineEntryResponse `json:"timeline"`

	AssignedOfficer string `json:"assignedOfficer,omitempty"`
}

type ApplicationResponse struct {
	CaseResponse
	SchemeName string         `json:"schemeName"`
	SchemeID   string         `json:"schemeId,omitempty"`
	Documents  []string       `json:"documents"`
	FormData   map[string]any `json:"formData,omitempty"`
}

type ComplaintResponse struct {
	CaseResponse
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

type HealthServiceResponse struct {
	CaseResponse
	ServiceType       string         `json:"serviceType"`
	FormData          map[string]any `json:"formData,omitempty"`
	CertificateNumber string         `json:"certificateNumber,omitempty"`
	IssuedAt          *time.Time     `json:"issuedAt,omitempty"`
}

type DashboardStatsResponse struct {
	TotalApplications       int `json:"totalApplications"`
	PendingApplications     int `json:"pendingApplications"`
	TotalComplaints         int `json:"totalComplaints"`
	PendingComplaints       int `json:"pendingComplaints"`
	TotalHealthServices     int `json:"totalHealthServices"`
	PendingHealthServices   int `json:"pendingHealthServices"`
	ProcessedHealthServices int `json:"processedHealthServices"`
}

func fromRecord(r *models.Record) CaseResponse {
	entries := make([]TimelineEntryResponse, 0, len(r.Timeline))
	for _, e := range r.Timeline {
		entries = append(entries, TimelineEntryResponse{
			Stage:     e.Stage,
			Status:    e.Status,
			Timestamp: e.Timestamp,
			Officer:   OfficerResponse{Name: e.Officer.Name, ID: e.Officer.ID},
		})
	}
	return CaseResponse{
		ID:          r.ID,
		TrackingID:  r.TrackingID,
		UserID:      r.UserID,
		Status:      r.Status.String(),
		Remarks:     r.Remarks,
		SubmittedAt: r.SubmittedAt,
		UpdatedAt:   r.UpdatedAt,
		Timeline:    entries,

		AssignedOfficer: r.AssignedOfficer,
	}
}

func FromApplication(a *models.Application) *ApplicationResponse {
	documents := a.Documents
	if documents == nil {
		documents = []string{}
	}
	return &ApplicationResponse{
		CaseResponse: fromRecord(&a.Record),
		SchemeName:   a.SchemeName,
		SchemeID:     a.SchemeID,
		Documents:    documents,
		FormData:     a.FormData,
	}
}

func FromComplaint(c *models.Complaint) *ComplaintResponse {
	return &ComplaintResponse{
		CaseResponse: fromRecord(&c.Record),
		Type:         c.Type,
		Category:     c.Category,
		Description:  c.Description,
		Priority:     c.Priority,
		AssignedTo:   c.AssignedTo,
		Resolution:   c.Resolution,
		ResolvedAt:   c.ResolvedAt,
	}
}

func FromHealthService(h *models.HealthService) *HealthServiceResponse {
	return &HealthServiceResponse{
		CaseResponse:      fromRecord(&h.Record),
		ServiceType:       h.ServiceType,
		FormData:          h.FormData,
		CertificateNumber: h.CertificateNumber,
		IssuedAt:          h.IssuedAt,
	}
}

func FromDashboardStats(s *service.DashboardStats) *DashboardStatsResponse {
	return &DashboardStatsResponse{
		TotalApplications:       s.TotalApplications,
		PendingApplications:     s.PendingApplications,
		TotalComplaints:         s.TotalComplaints,
		PendingComplaints:       s.PendingComplaints,
		TotalHealthServices:     s.TotalHealthServices,
		PendingHealthServices:   s.PendingHealthServices,
		ProcessedHealthServices: s.ProcessedHealthServices,
	}
}
