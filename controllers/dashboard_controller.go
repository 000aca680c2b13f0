package controllers

import (
	"net/http"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
)

// DashboardController handles the landing page, catalog and health requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET /api/dashboard
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	dashboard, err := c.services.Dashboard.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// Hazards handles GET /api/hazards
func (c *DashboardController) Hazards(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, struct {
		Hazards   []models.HazardDefinition  `json:"hazards"`
		Questions []models.ScreeningQuestion `json:"questions"`
		Systems   []string                   `json:"systems"`
	}{
		Hazards:   models.Hazards(),
		Questions: models.ScreeningQuestions,
		Systems:   models.Systems,
	})
}

// Health handles GET /health
func (c *DashboardController) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "ehs-records"})
}
