package models

import (
	"strings"
	"time"
)

// Preference defaults for users that never saved any
const (
	DefaultPrefSystem = "Others"
	DefaultPrefGroup  = "Europe"
	DefaultPrefSite   = "F34 Intel Ireland"
)

// Roles a user can hold
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// UserPreferences are per-user defaults applied to new records
type UserPreferences struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	System      string    `json:"system"`
	Group       string    `json:"group"`
	Site        string    `json:"site"`
	IsFirstTime bool      `json:"isFirstTime"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the preferences of a user that has not saved any
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:      userID,
		System:      DefaultPrefSystem,
		Group:       DefaultPrefGroup,
		Site:        DefaultPrefSite,
		IsFirstTime: true,
		Role:        RoleUser,
	}
}

// UserPreferencesForm is the submitted body when saving preferences
type UserPreferencesForm struct {
	System      string `json:"system"`
	Group       string `json:"group"`
	Site        string `json:"site"`
	IsFirstTime *bool  `json:"isFirstTime"`
	Role        string `json:"role"`
}

// Validate validates the preferences form data
func (f *UserPreferencesForm) Validate() ValidationErrors {
	var errs ValidationErrors
	if f.System != "" {
		requireOneOf(&errs, "system", f.System, Systems...)
	}
	if f.Role != "" {
		requireOneOf(&errs, "role", f.Role, RoleUser, RoleManager, RoleAdmin)
	}
	return errs
}

// Apply validates the form and merges it over current
func (f *UserPreferencesForm) Apply(current UserPreferences) (*UserPreferences, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	next := current
	next.System = withDefault(f.System, current.System)
	next.Group = withDefault(f.Group, current.Group)
	next.Site = withDefault(f.Site, current.Site)
	next.Role = withDefault(strings.ToLower(f.Role), current.Role)
	if f.IsFirstTime != nil {
		next.IsFirstTime = *f.IsFirstTime
	}
	return &next, nil
}
