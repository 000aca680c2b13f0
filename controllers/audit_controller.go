package controllers

import (
	"net/http"
	"strconv"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
)

// AuditController handles audit log and report list requests
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{
		services: services,
	}
}

// planIDQuery reads the safetyPlanId query parameter. ok is false when it is absent.
func planIDQuery(r *http.Request) (id int64, ok bool, err error) {
	raw := r.URL.Query().Get("safetyPlanId")
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		var errs models.ValidationErrors
		errs.Add("safetyPlanId", "safetyPlanId must be a positive integer")
		return 0, true, errs
	}
	return id, true, nil
}

// List handles GET /api/audit-logs?safetyPlanId=
func (c *AuditController) List(w http.ResponseWriter, r *http.Request) {
	id, ok, err := planIDQuery(r)
	if err == nil && !ok {
		var errs models.ValidationErrors
		errs.Add("safetyPlanId", "safetyPlanId is required")
		err = errs
	}
	if err != nil {
		respondWithError(w, err)
		return
	}

	entries, err := c.services.Audit.List(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// Create handles POST /api/audit-logs
func (c *AuditController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.AuditLogForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	entry, err := c.services.Audit.Append(r.Context(), &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entry)
}

// Reports handles GET /api/report-list[?safetyPlanId=]
func (c *AuditController) Reports(w http.ResponseWriter, r *http.Request) {
	id, ok, err := planIDQuery(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var reports []models.ReportSnapshot
	if ok {
		reports, err = c.services.Reports.ListForPlan(r.Context(), id)
	} else {
		reports, err = c.services.Reports.List(r.Context())
	}
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reports)
}

// PlanReports handles GET /api/safety-plans/{id}/reports
func (c *AuditController) PlanReports(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	reports, err := c.services.Reports.ListForPlan(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reports)
}
