package userctx

import (
	"context"

	"github.com/blogem/ehs-records/models"
)

// Context key type
type contextKey string

const userKey contextKey = "user"
const preferencesKey contextKey = "user_preferences"

// SetUser adds the acting username to the request context
func SetUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// GetUser retrieves the acting username from the request context
func GetUser(ctx context.Context) string {
	username, ok := ctx.Value(userKey).(string)
	if !ok || username == "" {
		return models.AnonymousUser
	}
	return username
}

// IsAuthenticated reports whether a named user is acting
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != models.AnonymousUser
}

// SetPreferences attaches the acting user's preferences
func SetPreferences(ctx context.Context, prefs models.UserPreferences) context.Context {
	return context.WithValue(ctx, preferencesKey, prefs)
}

// GetPreferences returns the acting user's preferences, or the defaults for them
func GetPreferences(ctx context.Context) models.UserPreferences {
	if prefs, ok := ctx.Value(preferencesKey).(models.UserPreferences); ok {
		return prefs
	}
	return models.DefaultPreferences(GetUser(ctx))
}
