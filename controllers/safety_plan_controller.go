package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
)

// SafetyPlanController handles safety plan requests
type SafetyPlanController struct {
	services *services.Services
}

// NewSafetyPlanController creates a new safety plan controller
func NewSafetyPlanController(services *services.Services) *SafetyPlanController {
	return &SafetyPlanController{
		services: services,
	}
}

// List handles GET /api/safety-plans
func (c *SafetyPlanController) List(w http.ResponseWriter, r *http.Request) {
	filter := models.SafetyPlanFilter{Group: r.URL.Query().Get("group")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParsePlanStatus(raw)
		if err != nil {
			var errs models.ValidationErrors
			errs.Add("status", err.Error())
			respondWithError(w, errs)
			return
		}
		filter.Status = status
	}

	plans, err := c.services.SafetyPlans.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plans)
}

// Create handles POST /api/safety-plans
func (c *SafetyPlanController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.SafetyPlanForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	view, err := c.services.SafetyPlans.Create(r.Context(), &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/safety-plans/{id}
func (c *SafetyPlanController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	view, err := c.services.SafetyPlans.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// Update handles PUT /api/safety-plans/{id}
func (c *SafetyPlanController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	var form models.SafetyPlanForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	view, err := c.services.SafetyPlans.Update(r.Context(), id, &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// Transition handles POST /api/safety-plans/{id}/transition
func (c *SafetyPlanController) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req models.TransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	view, err := c.services.SafetyPlans.Transition(r.Context(), id, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// Share handles POST /api/safety-plans/{id}/share
func (c *SafetyPlanController) Share(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	token, err := c.services.SafetyPlans.Share(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"shareToken": token})
}

// Shared handles GET /api/shared/{token}
func (c *SafetyPlanController) Shared(w http.ResponseWriter, r *http.Request) {
	view, err := c.services.SafetyPlans.GetShared(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}
