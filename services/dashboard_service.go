package services

import (
	"context"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
)

// RiskStats summarizes the overall scores of all plans
type RiskStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Dashboard holds the landing page counters
type Dashboard struct {
	SafetyPlans      int                       `json:"safetyPlans"`
	PlansByStatus    map[models.PlanStatus]int `json:"plansByStatus"`
	ExtremeRiskPlans int                       `json:"extremeRiskPlans"`
	Permits          int                       `json:"permits"`
	CraneInspections int                       `json:"craneInspections"`
	Calibrations     int                       `json:"calibrations"`
	Incidents        int                       `json:"incidents"`
	OpenIncidents    int                       `json:"openIncidents"`
	Documents        int                       `json:"documents"`
	Risk             RiskStats                 `json:"risk"`
}

// DashboardService interface defines the landing page aggregation
type DashboardService interface {
	Get(ctx context.Context) (*Dashboard, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	repos *repositories.Repositories
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repositories.Repositories) DashboardService {
	return &dashboardService{repos: repos}
}

func (s *dashboardService) Get(ctx context.Context) (*Dashboard, error) {
	plans, err := s.repos.SafetyPlans.List(ctx, models.SafetyPlanFilter{})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		SafetyPlans: len(plans),
		PlansByStatus: map[models.PlanStatus]int{
			models.StatusDraft:    0,
			models.StatusPending:  0,
			models.StatusApproved: 0,
			models.StatusRejected: 0,
		},
	}

	scores := make(stats.Float64Data, 0, len(plans))
	for i := range plans {
		d.PlansByStatus[plans[i].Status]++
		summary := models.Summarize(&plans[i])
		if summary.OverallCategory == models.RiskExtreme {
			d.ExtremeRiskPlans++
		}
		scores = append(scores, float64(summary.OverallScore))
	}
	if d.Risk, err = riskStats(scores); err != nil {
		return nil, err
	}

	counters := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&d.Permits, s.repos.Permits.Count},
		{&d.CraneInspections, s.repos.Inspections.Count},
		{&d.Calibrations, s.repos.Calibrations.Count},
		{&d.Documents, s.repos.Documents.Count},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx); err != nil {
			return nil, err
		}
	}

	incidents, err := s.repos.Incidents.List(ctx)
	if err != nil {
		return nil, err
	}
	d.Incidents = len(incidents)
	for _, i := range incidents {
		if i.Status != models.IncidentClosed {
			d.OpenIncidents++
		}
	}

	return d, nil
}

func riskStats(scores stats.Float64Data) (RiskStats, error) {
	if scores.Len() == 0 {
		return RiskStats{}, nil
	}
	mean, err := scores.Mean()
	if err != nil {
		return RiskStats{}, errors.Wrap(err, "failed to compute mean risk")
	}
	median, err := scores.Median()
	if err != nil {
		return RiskStats{}, errors.Wrap(err, "failed to compute median risk")
	}
	highest, err := scores.Max()
	if err != nil {
		return RiskStats{}, errors.Wrap(err, "failed to compute max risk")
	}
	return RiskStats{Mean: mean, Median: median, Max: highest}, nil
}
