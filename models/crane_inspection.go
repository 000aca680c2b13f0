package models

import (
	"strings"
	"time"
)

// Crane inspection outcomes
const (
	InspectionDraft     = "draft"
	InspectionCompleted = "completed"
	InspectionFailed    = "failed"
)

// CraneInspection is a pre-use crane check carried out by two inspectors
type CraneInspection struct {
	ID             int64     `json:"id"`
	Inspector      string    `json:"inspector"`
	BuddyInspector string    `json:"buddyInspector"`
	Bay            string    `json:"bay"`
	Machine        string    `json:"machine"`
	Date           string    `json:"date"`
	Q1             string    `json:"q1"`
	Q2             string    `json:"q2"`
	Q3             string    `json:"q3"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CraneInspectionForm is the submitted body for a crane inspection
type CraneInspectionForm struct {
	Inspector      string `json:"inspector"`
	BuddyInspector string `json:"buddyInspector"`
	Bay            string `json:"bay"`
	Machine        string `json:"machine"`
	Date           string `json:"date"`
	Q1             string `json:"q1"`
	Q2             string `json:"q2"`
	Q3             string `json:"q3"`
	Status         string `json:"status"`
}

// Validate validates the crane inspection form data
func (f *CraneInspectionForm) Validate() ValidationErrors {
	var errs ValidationErrors

	requireText(&errs, "inspector", "Inspector", f.Inspector)
	requireText(&errs, "buddyInspector", "Buddy inspector", f.BuddyInspector)
	requireText(&errs, "bay", "Bay", f.Bay)
	requireText(&errs, "machine", "Machine", f.Machine)
	requireDate(&errs, "date", "Date", f.Date)

	for field, v := range map[string]string{"q1": f.Q1, "q2": f.Q2, "q3": f.Q3} {
		if v != "" {
			requireYesNo(&errs, field, v)
		}
	}
	if f.Status != "" {
		requireOneOf(&errs, "status", f.Status, InspectionDraft, InspectionCompleted, InspectionFailed)
	}

	return errs
}

// ToCraneInspection validates the form and builds an inspection
func (f *CraneInspectionForm) ToCraneInspection() (*CraneInspection, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return &CraneInspection{
		Inspector:      strings.TrimSpace(f.Inspector),
		BuddyInspector: strings.TrimSpace(f.BuddyInspector),
		Bay:            strings.TrimSpace(f.Bay),
		Machine:        strings.TrimSpace(f.Machine),
		Date:           f.Date,
		Q1:             withDefault(f.Q1, AnswerNo),
		Q2:             withDefault(f.Q2, AnswerNo),
		Q3:             withDefault(f.Q3, AnswerNo),
		Status:         withDefault(f.Status, InspectionDraft),
	}, nil
}
