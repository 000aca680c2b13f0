package models

import (
	"net/url"
	"strings"
	"time"
)

// Common validation functions and utilities used across models

// Answer values for yes/no screening questions
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Add appends a field error
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// GetMessages returns all error messages as a slice of strings
func (ve ValidationErrors) GetMessages() []string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(ve.GetMessages(), ", ")
}

// Unwrap lets errors.Is match ErrValidation
func (ve ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Err returns nil when there are no errors so callers can `return form, errs.Err()`
func (ve ValidationErrors) Err() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

// FormatDate formats a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// requireText records an error when value is blank
func requireText(errs *ValidationErrors, field, label, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, label+" is required")
	}
}

// requireDate records an error when value is blank or not YYYY-MM-DD
func requireDate(errs *ValidationErrors, field, label, value string) {
	if value == "" {
		errs.Add(field, label+" is required")
		return
	}
	if _, err := ParseDate(value); err != nil {
		errs.Add(field, label+" must be in YYYY-MM-DD format")
	}
}

// requireYesNo records an error unless value is "yes" or "no"
func requireYesNo(errs *ValidationErrors, field, value string) {
	if value != AnswerYes && value != AnswerNo {
		errs.Add(field, field+" must be \"yes\" or \"no\"")
	}
}

// requireOneOf records an error unless value is one of allowed
func requireOneOf(errs *ValidationErrors, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	errs.Add(field, field+" must be one of: "+strings.Join(allowed, ", "))
}

// isHTTPURL checks for an absolute http(s) URL
func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// trimmedOrNil returns nil for blank strings
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// withDefault returns def when value is blank
func withDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
