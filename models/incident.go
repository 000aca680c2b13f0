package models

import (
	"strings"
	"time"
)

// Incident statuses
const (
	IncidentOpen          = "open"
	IncidentInvestigating = "investigating"
	IncidentClosed        = "closed"
)

// Incident is a reported safety incident or near miss
type Incident struct {
	ID                   int64     `json:"id"`
	Date                 string    `json:"date"`
	Type                 string    `json:"type"`
	Location             string    `json:"location"`
	Description          string    `json:"description"`
	Severity             int       `json:"severity"`
	AssignedInvestigator string    `json:"assignedInvestigator"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}

// IncidentForm is the submitted body for an incident. Severity 0 means unset.
type IncidentForm struct {
	Date                 string `json:"date"`
	Type                 string `json:"type"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	Severity             int    `json:"severity"`
	AssignedInvestigator string `json:"assignedInvestigator"`
	Status               string `json:"status"`
}

// Validate validates the incident form data
func (f *IncidentForm) Validate() ValidationErrors {
	var errs ValidationErrors

	requireDate(&errs, "date", "Date", f.Date)
	requireText(&errs, "type", "Type", f.Type)
	requireText(&errs, "location", "Location", f.Location)
	requireText(&errs, "description", "Description", f.Description)
	requireText(&errs, "assignedInvestigator", "Assigned investigator", f.AssignedInvestigator)

	if f.Severity != 0 && !ValidRating(f.Severity) {
		errs.Add("severity", "Severity must be between 1 and 4")
	}
	if f.Status != "" {
		requireOneOf(&errs, "status", f.Status, IncidentOpen, IncidentInvestigating, IncidentClosed)
	}

	return errs
}

// ToIncident validates the form and builds an incident
func (f *IncidentForm) ToIncident() (*Incident, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	severity := f.Severity
	if severity == 0 {
		severity = MinRating
	}
	return &Incident{
		Date:                 f.Date,
		Type:                 strings.TrimSpace(f.Type),
		Location:             strings.TrimSpace(f.Location),
		Description:          strings.TrimSpace(f.Description),
		Severity:             severity,
		AssignedInvestigator: strings.TrimSpace(f.AssignedInvestigator),
		Status:               withDefault(f.Status, IncidentOpen),
	}, nil
}
