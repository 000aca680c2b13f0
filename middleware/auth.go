package middleware

import (
	"encoding/json"
	"net/http"

	"gitea.com/go-chi/session"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
	"github.com/blogem/ehs-records/userctx"
)

// Session keys shared with the login handlers
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionState    = "state"
)

// RequireAuth resolves the acting user. With authentication enabled a request without a
// session user gets a 401 JSON body; with it disabled every caller acts as anonymous.
func RequireAuth(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), models.AnonymousUser)))
				return
			}

			username, _ := session.GetSession(r).Get(SessionUsername).(string)
			if username == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), username)))
		})
	}
}

// Preferences loads the acting user's saved preferences into the request context.
// A lookup failure is logged and the defaults are used instead.
func Preferences(prefs services.PreferencesService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userctx.GetUser(r.Context())
			p, err := prefs.Get(r.Context(), user)
			if err != nil {
				log.WithError(err).WithField("user", user).Warn("could not load user preferences")
				p = models.DefaultPreferences(user)
			}
			next.ServeHTTP(w, r.WithContext(userctx.SetPreferences(r.Context(), p)))
		})
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
