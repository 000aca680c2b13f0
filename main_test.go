package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blogem/ehs-records/controllers"
	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
	"github.com/blogem/ehs-records/services"
	"github.com/blogem/ehs-records/userctx"
)

func TestSeeder(t *testing.T) {
	var data seedData
	require.NoError(t, yaml.Unmarshal(seedYAML, &data))
	require.NotEmpty(t, data.Users)

	srvs := services.NewServices(repositories.NewMemoryRepositories())
	s := &seeder{srvs: srvs, data: data, rnd: rand.New(rand.NewPCG(1, 1))}
	ctx := userctx.SetUser(context.Background(), "seed")

	require.NoError(t, s.run(ctx, 10, 5))

	plans, err := srvs.SafetyPlans.List(ctx, models.SafetyPlanFilter{})
	require.NoError(t, err)
	assert.Len(t, plans, 10)

	incidents, err := srvs.Incidents.List(ctx)
	require.NoError(t, err)
	assert.Len(t, incidents, 5)

	documents, err := srvs.Documents.List(ctx)
	require.NoError(t, err)
	assert.Len(t, documents, len(data.Documents))

	_, err = srvs.Users.Authenticate(ctx, &models.LoginForm{Username: "admin", Password: "admin123"})
	assert.NoError(t, err)

	// users already present are skipped on a second run
	require.NoError(t, s.users(ctx, 0))
}

func TestSetupRouter(t *testing.T) {
	srvs := services.NewServices(repositories.NewMemoryRepositories())
	router, err := setupRouter(controllers.NewControllers(srvs, nil, false), false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
