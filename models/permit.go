package models

import (
	"strings"
	"time"
)

// PermitStatus values
const (
	PermitDraft    = "draft"
	PermitPending  = "pending"
	PermitApproved = "approved"
	PermitRejected = "rejected"
)

// Permit is a permit-to-work record
type Permit struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	Submitter       string    `json:"submitter"`
	Manager         string    `json:"manager"`
	Location        string    `json:"location"`
	WorkType        string    `json:"workType"`
	WorkDescription string    `json:"workDescription"`
	Spq1            string    `json:"spq1"`
	Spq2            string    `json:"spq2"`
	Spq3            string    `json:"spq3"`
	Spq4            string    `json:"spq4"`
	Spq5            string    `json:"spq5"`
	AuthorityName   string    `json:"authorityName"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PermitForm is the submitted body for a permit
type PermitForm struct {
	Date            string `json:"date"`
	Submitter       string `json:"submitter"`
	Manager         string `json:"manager"`
	Location        string `json:"location"`
	WorkType        string `json:"workType"`
	WorkDescription string `json:"workDescription"`
	Spq1            string `json:"spq1"`
	Spq2            string `json:"spq2"`
	Spq3            string `json:"spq3"`
	Spq4            string `json:"spq4"`
	Spq5            string `json:"spq5"`
	AuthorityName   string `json:"authorityName"`
	Status          string `json:"status"`
}

// Validate validates the permit form data. Blank safety answers default to "no".
func (f *PermitForm) Validate() ValidationErrors {
	var errs ValidationErrors

	requireDate(&errs, "date", "Date", f.Date)
	requireText(&errs, "submitter", "Submitter", f.Submitter)
	requireText(&errs, "manager", "Manager", f.Manager)

	for field, v := range map[string]string{"spq1": f.Spq1, "spq2": f.Spq2, "spq3": f.Spq3, "spq4": f.Spq4, "spq5": f.Spq5} {
		if v != "" {
			requireYesNo(&errs, field, v)
		}
	}
	if f.Status != "" {
		requireOneOf(&errs, "status", f.Status, PermitDraft, PermitPending, PermitApproved, PermitRejected)
	}

	return errs
}

// ToPermit validates the form and builds a permit
func (f *PermitForm) ToPermit() (*Permit, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return &Permit{
		Date:            f.Date,
		Submitter:       strings.TrimSpace(f.Submitter),
		Manager:         strings.TrimSpace(f.Manager),
		Location:        strings.TrimSpace(f.Location),
		WorkType:        strings.TrimSpace(f.WorkType),
		WorkDescription: strings.TrimSpace(f.WorkDescription),
		Spq1:            withDefault(f.Spq1, AnswerNo),
		Spq2:            withDefault(f.Spq2, AnswerNo),
		Spq3:            withDefault(f.Spq3, AnswerNo),
		Spq4:            withDefault(f.Spq4, AnswerNo),
		Spq5:            withDefault(f.Spq5, AnswerNo),
		AuthorityName:   strings.TrimSpace(f.AuthorityName),
		Status:          withDefault(f.Status, PermitDraft),
	}, nil
}
