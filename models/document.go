package models

import (
	"strings"
	"time"
)

// Document is a library entry pointing at a SharePoint file
type Document struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	SharepointURL string    `json:"sharepointUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DocumentForm is the submitted body for a document
type DocumentForm struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	SharepointURL string `json:"sharepointUrl"`
}

// Validate validates the document form data
func (f *DocumentForm) Validate() ValidationErrors {
	var errs ValidationErrors
	requireText(&errs, "title", "Title", f.Title)
	requireText(&errs, "category", "Category", f.Category)
	requireText(&errs, "description", "Description", f.Description)
	if strings.TrimSpace(f.SharepointURL) == "" {
		errs.Add("sharepointUrl", "SharePoint URL is required")
	} else if !isHTTPURL(strings.TrimSpace(f.SharepointURL)) {
		errs.Add("sharepointUrl", "SharePoint URL must be an absolute http(s) URL")
	}
	return errs
}

// ToDocument validates the form and builds a document
func (f *DocumentForm) ToDocument() (*Document, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return &Document{
		Title:         strings.TrimSpace(f.Title),
		Category:      strings.TrimSpace(f.Category),
		Description:   strings.TrimSpace(f.Description),
		SharepointURL: strings.TrimSpace(f.SharepointURL),
	}, nil
}
