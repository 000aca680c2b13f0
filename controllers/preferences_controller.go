package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
	"github.com/blogem/ehs-records/userctx"
)

// PreferencesController handles per-user preference requests
type PreferencesController struct {
	services *services.Services
}

// NewPreferencesController creates a new preferences controller
func NewPreferencesController(services *services.Services) *PreferencesController {
	return &PreferencesController{
		services: services,
	}
}

// Get handles GET /api/user-preferences/{userId}
func (c *PreferencesController) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := checkOwner(r.Context(), userID); err != nil {
		respondWithError(w, err)
		return
	}

	prefs, err := c.services.Preferences.Get(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}

// Save handles PUT /api/user-preferences/{userId}
func (c *PreferencesController) Save(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := checkOwner(r.Context(), userID); err != nil {
		respondWithError(w, err)
		return
	}

	var form models.UserPreferencesForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	prefs, err := c.services.Preferences.Save(r.Context(), userID, &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}

// checkOwner lets a signed-in user reach only their own preferences.
// Anonymous callers only exist with authentication disabled.
func checkOwner(ctx context.Context, userID string) error {
	if !userctx.IsAuthenticated(ctx) {
		return nil
	}
	if user := userctx.GetUser(ctx); models.NormalizedUsername(userID) != models.NormalizedUsername(user) {
		return models.Forbiddenf("%s may not access the preferences of %s", user, userID)
	}
	return nil
}
