package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/ehs-records/services"
)

// RecordController handles CRUD requests for one kind of EHS record
type RecordController[T any, F any] struct {
	service services.RecordService[T, F]
}

// NewRecordController creates a new record controller
func NewRecordController[T any, F any](service services.RecordService[T, F]) *RecordController[T, F] {
	return &RecordController[T, F]{service: service}
}

func mountRecords[T any, F any](r chi.Router, path string, c *RecordController[T, F]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
	})
}

// List handles GET /api/<records>
func (c *RecordController[T, F]) List(w http.ResponseWriter, r *http.Request) {
	records, err := c.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// Create handles POST /api/<records>
func (c *RecordController[T, F]) Create(w http.ResponseWriter, r *http.Request) {
	var form F
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	record, err := c.service.Create(r.Context(), &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, record)
}

// Get handles GET /api/<records>/{id}
func (c *RecordController[T, F]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	record, err := c.service.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

// Update handles PUT /api/<records>/{id}
func (c *RecordController[T, F]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, err)
		return
	}

	var form F
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	record, err := c.service.Update(r.Context(), id, &form)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}
