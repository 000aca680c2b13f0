package models

import "time"

// JobDetailsReport is the job section of a report snapshot
type JobDetailsReport struct {
	SafetyPlanID  int64    `json:"safetyPlanId"`
	VersionID     string   `json:"versionId"`
	Group         string   `json:"group"`
	TaskName      string   `json:"taskName"`
	Date          string   `json:"date"`
	Location      string   `json:"location"`
	Shift         string   `json:"shift"`
	MachineNumber string   `json:"machineNumber"`
	Region        string   `json:"region"`
	System        string   `json:"system"`
	LeadName      string   `json:"leadName"`
	ApproverName  *string  `json:"approverName"`
	Engineers     []string `json:"engineers"`
	Comments      *string  `json:"comments"`
}

// SafetyQuestions is the screening block of a report snapshot
type SafetyQuestions struct {
	ScreeningAnswers
	CanSocialDistance string `json:"canSocialDistance"`
}

// SafetyRiskReport is the risk section of a report snapshot
type SafetyRiskReport struct {
	SafetyQuestions SafetyQuestions             `json:"safetyQuestions"`
	Hazards         []string                    `json:"hazards"`
	Assessments     map[string]HazardAssessment `json:"assessments"`
	OverallScore    int                         `json:"overallScore"`
	OverallCategory RiskCategory                `json:"overallCategory"`
}

// SRBReport is the Special Review Board section of a report snapshot
type SRBReport struct {
	Required            bool     `json:"required"`
	HazardsRequiringSRB []string `json:"hazardsRequiringSRB"`
	ChecklistsRequired  []string `json:"checklistsRequired"`
	Notes               *string  `json:"notes"`
}

// ApprovalVersion is one submitted version and its decision, if any
type ApprovalVersion struct {
	VersionID   string     `json:"versionId"`
	Status      PlanStatus `json:"status"`
	SubmittedBy string     `json:"submittedBy"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ApprovedBy  *string    `json:"approvedBy"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	Comments    *string    `json:"comments"`
}

// ApprovalInfo is the approval section of a report snapshot
type ApprovalInfo struct {
	CurrentStatus PlanStatus        `json:"currentStatus"`
	Versions      []ApprovalVersion `json:"versions"`
}

// ReportSnapshot is a denormalized copy of a submitted plan version. Written once, never updated.
type ReportSnapshot struct {
	ID                   int64            `json:"id"`
	SafetyPlanID         int64            `json:"safetyPlanId"`
	VersionID            string           `json:"versionId"`
	JobDetails           JobDetailsReport `json:"jobDetails"`
	SafetyRiskAssessment SafetyRiskReport `json:"safetyRiskAssessment"`
	SRBInfo              SRBReport        `json:"srbInfo"`
	ApprovalInfo         ApprovalInfo     `json:"approvalInfo"`
	CreatedAt            time.Time        `json:"createdAt"`
}
