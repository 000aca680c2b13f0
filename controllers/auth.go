package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/authenticator"
	"github.com/blogem/ehs-records/middleware"
	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
	"github.com/blogem/ehs-records/userctx"
)

// AuthController handles local and OpenID Connect login
type AuthController struct {
	services *services.Services
	provider authenticator.Provider
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, provider authenticator.Provider) *AuthController {
	return &AuthController{
		services: services,
		provider: provider,
	}
}

// meResponse describes the caller
type meResponse struct {
	Username      string                 `json:"username"`
	Authenticated bool                   `json:"authenticated"`
	Preferences   models.UserPreferences `json:"preferences"`
}

// LocalLogin handles POST /api/login
func (ac *AuthController) LocalLogin(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithError(w, err)
		return
	}

	user, err := ac.services.Users.Authenticate(r.Context(), &form)
	if err != nil {
		respondWithError(w, err)
		return
	}

	sess := session.GetSession(r)
	if err := sess.Set(middleware.SessionUserID, user.ID); err != nil {
		respondWithError(w, err)
		return
	}
	if err := sess.Set(middleware.SessionUsername, user.Username); err != nil {
		respondWithError(w, err)
		return
	}

	log.WithField("user", user.Username).Info("user logged in")
	respondWithJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.GetSession(r).Flush(); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, meResponse{
		Username:      userctx.GetUser(r.Context()),
		Authenticated: userctx.IsAuthenticated(r.Context()),
		Preferences:   userctx.GetPreferences(r.Context()),
	})
}

// Login handles GET /login and starts the OpenID Connect code flow
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	if err := session.GetSession(r).Set(middleware.SessionState, state); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from the identity provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	storedState, _ := sess.Get(middleware.SessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange authorization code for a token", http.StatusUnauthorized)
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		log.WithError(err).Warn("rejected ID token")
		http.Error(w, "Failed to verify ID Token", http.StatusUnauthorized)
		return
	}

	_ = sess.Set(middleware.SessionUserID, claims.Subject())
	_ = sess.Set(middleware.SessionUsername, claims.DisplayName())
	_ = sess.Delete(middleware.SessionState)

	log.WithField("user", claims.DisplayName()).Info("user logged in through OpenID Connect")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
