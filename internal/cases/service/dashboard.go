package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"govportal/internal/cases/models"
)

// CaseLister lists every case of one family.
type CaseLister[T models.Case] interface {
	ListAll(ctx context.Context) ([]T, error)
}

// DashboardStats summarizes the officer queues. Pending means still submitted.
type DashboardStats struct {
	TotalApplications       int
	PendingApplications     int
	TotalComplaints         int
	PendingComplaints       int
	TotalHealthServices     int
	PendingHealthServices   int
	ProcessedHealthServices int
}

// Dashboard aggregates the three case families for officers.
type Dashboard struct {
	applications CaseLister[*models.Application]
	complaints   CaseLister[*models.Complaint]
	health       CaseLister[*models.HealthService]
}

func NewDashboard(
	applications CaseLister[*models.Application],
	complaints CaseLister[*models.Complaint],
	health CaseLister[*models.HealthService],
) *Dashboard {
	return &Dashboard{applications: applications, complaints: complaints, health: health}
}

// Stats reads the three families concurrently and counts them.
func (d *Dashboard) Stats(ctx context.Context) (*DashboardStats, error) {
	ctx, span := tracer.Start(ctx, "cases.dashboard_stats")
	defer span.End()

	var (
		applications []*models.Application
		complaints   []*models.Complaint
		health       []*models.HealthService
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		applications, err = d.applications.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		complaints, err = d.complaints.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		health, err = d.health.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fail(span, err)
	}

	return &DashboardStats{
		TotalApplications:       len(applications),
		PendingApplications:     countStatus(applications, models.StatusSubmitted),
		TotalComplaints:         len(complaints),
		PendingComplaints:       countStatus(complaints, models.StatusSubmitted),
		TotalHealthServices:     len(health),
		PendingHealthServices:   countStatus(health, models.StatusSubmitted),
		ProcessedHealthServices: countStatus(health, models.StatusIssued, models.StatusVerified),
	}, nil
}

func countStatus[T models.Case](cases []T, statuses ...models.Status) int {
	n := 0
	for _, c := range cases {
		for _, s := range statuses {
			if c.Base().Status == s {
				n++
				break
			}
		}
	}
	return n
}
