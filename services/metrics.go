package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	planCreatedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ehs_safety_plans_created_total",
		Help: "Number of safety plans created, by initial status",
	}, []string{"status"})
	planTransitionMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ehs_safety_plan_transitions_total",
		Help: "Number of safety plan status changes",
	}, []string{"from", "to"})
	auditEntryMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ehs_audit_entries_total",
		Help: "Number of audit log entries appended, by action",
	}, []string{"action"})
	reportSnapshotMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ehs_report_snapshots_total",
		Help: "Number of report snapshots written",
	})
	loginMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ehs_logins_total",
		Help: "Number of local login attempts, by result",
	}, []string{"result"})
)
