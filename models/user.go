package models

import "strings"

// AnonymousUser is the acting identity when authentication is disabled
const AnonymousUser = "anonymous"

// User is a local account
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// LoginForm is the body of a local login
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() ValidationErrors {
	var errs ValidationErrors
	requireText(&errs, "username", "Username", f.Username)
	if f.Password == "" {
		errs.Add("password", "Password is required")
	}
	return errs
}

// NormalizedUsername is the lookup key for a username
func NormalizedUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
