package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/authenticator"
	"github.com/blogem/ehs-records/middleware"
	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
)

// errorResponse is the body of every non-2xx API response
type errorResponse struct {
	Error  string                   `json:"error"`
	Fields []models.ValidationError `json:"fields,omitempty"`
}

// respondWithJSON writes payload as a JSON body with the given status
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// respondWithError maps an error onto its HTTP status. Unclassified errors are logged
// and reported without their details.
func respondWithError(w http.ResponseWriter, err error) {
	var fields models.ValidationErrors
	switch {
	case errors.As(err, &fields):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
	case models.IsValidation(err):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case models.IsNotFound(err):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case models.IsConflict(err):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case models.IsUnauthorized(err):
		respondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case models.IsForbidden(err):
		respondWithJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		log.WithError(err).Error("request failed")
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrapf(models.ErrValidation, "invalid JSON body: %v", err)
	}
	return nil
}

// parseID reads a positive integer id from the named URL parameter
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(models.ErrValidation, "invalid %s %q", param, raw)
	}
	return id, nil
}

// Controllers holds all controller instances
type Controllers struct {
	Auth            *AuthController
	Dashboard       *DashboardController
	SafetyPlans     *SafetyPlanController
	Audit           *AuditController
	Permits         *RecordController[models.Permit, models.PermitForm]
	Inspections     *RecordController[models.CraneInspection, models.CraneInspectionForm]
	Calibrations    *RecordController[models.DraegerCalibration, models.DraegerCalibrationForm]
	Incidents       *RecordController[models.Incident, models.IncidentForm]
	Documents       *RecordController[models.Document, models.DocumentForm]
	UserPreferences *PreferencesController

	services    *services.Services
	authEnabled bool
}

// NewControllers creates and initializes all controller instances. provider may be nil
// when OpenID Connect login is not configured.
func NewControllers(services *services.Services, provider authenticator.Provider, authEnabled bool) *Controllers {
	return &Controllers{
		Auth:            NewAuthController(services, provider),
		Dashboard:       NewDashboardController(services),
		SafetyPlans:     NewSafetyPlanController(services),
		Audit:           NewAuditController(services),
		Permits:         NewRecordController(services.Permits),
		Inspections:     NewRecordController(services.Inspections),
		Calibrations:    NewRecordController(services.Calibrations),
		Incidents:       NewRecordController(services.Incidents),
		Documents:       NewRecordController(services.Documents),
		UserPreferences: NewPreferencesController(services),
		services:        services,
		authEnabled:     authEnabled,
	}
}

// Routes mounts every route. Session middleware must already be installed on r.
func (c *Controllers) Routes(r chi.Router) {
	r.Get("/health", c.Dashboard.Health)

	if c.Auth.provider != nil {
		r.Get("/login", c.Auth.Login)
		r.Get("/callback", c.Auth.Callback)
	}

	r.Route("/api", func(r chi.Router) {
		// PUBLIC ROUTES
		r.Post("/login", c.Auth.LocalLogin)
		r.Post("/logout", c.Auth.Logout)
		r.Get("/hazards", c.Dashboard.Hazards)
		r.Get("/shared/{token}", c.SafetyPlans.Shared)

		// PROTECTED ROUTES
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(c.authEnabled))
			r.Use(middleware.Preferences(c.services.Preferences))
			r.Use(middleware.AuditLogger)

			r.Get("/me", c.Auth.Me)
			r.Get("/dashboard", c.Dashboard.Index)

			r.Route("/safety-plans", func(r chi.Router) {
				r.Get("/", c.SafetyPlans.List)
				r.Post("/", c.SafetyPlans.Create)
				r.Get("/{id}", c.SafetyPlans.Get)
				r.Put("/{id}", c.SafetyPlans.Update)
				r.Post("/{id}/transition", c.SafetyPlans.Transition)
				r.Post("/{id}/share", c.SafetyPlans.Share)
				r.Get("/{id}/reports", c.Audit.PlanReports)
			})

			r.Get("/audit-logs", c.Audit.List)
			r.Post("/audit-logs", c.Audit.Create)
			r.Get("/report-list", c.Audit.Reports)

			mountRecords(r, "/permits", c.Permits)
			mountRecords(r, "/crane-inspections", c.Inspections)
			mountRecords(r, "/draeger-calibrations", c.Calibrations)
			mountRecords(r, "/incidents", c.Incidents)
			mountRecords(r, "/documents", c.Documents)

			r.Get("/user-preferences/{userId}", c.UserPreferences.Get)
			r.Put("/user-preferences/{userId}", c.UserPreferences.Save)
		})
	})
}
