package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blogem/ehs-records/authenticator"
	"github.com/blogem/ehs-records/config"
	"github.com/blogem/ehs-records/controllers"
	"github.com/blogem/ehs-records/middleware"
	"github.com/blogem/ehs-records/services"
)

type ServeFlags struct {
	StorageFlags *config.StorageFlags
	AuthFlags    *config.AuthFlags
	ServerFlags  *config.ServerFlags
}

func NewServeFlags() *ServeFlags {
	return &ServeFlags{
		StorageFlags: config.NewStorageFlags(),
		AuthFlags:    config.NewAuthFlags(),
		ServerFlags:  config.NewServerFlags(),
	}
}

func (f *ServeFlags) BindFlags(fs *pflag.FlagSet) {
	f.StorageFlags.BindFlags(fs)
	f.AuthFlags.BindFlags(fs)
	f.ServerFlags.BindFlags(fs)
}

func (f *ServeFlags) Validate() error {
	if err := f.StorageFlags.Validate(); err != nil {
		return err
	}
	if err := f.AuthFlags.Validate(); err != nil {
		return err
	}
	return f.ServerFlags.Validate()
}

func NewServeCommand() *cobra.Command {
	f := NewServeFlags()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the EHS records API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			repos, db, err := f.StorageFlags.GetRepositories(ctx)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			var provider authenticator.Provider
			if f.AuthFlags.OpenID.Enabled() {
				if provider, err = authenticator.NewOpenIDProvider(ctx, f.AuthFlags.OpenID); err != nil {
					return err
				}
			}

			ctrl := controllers.NewControllers(services.NewServices(repos), provider, f.AuthFlags.Enabled)
			router, err := setupRouter(ctrl, f.AuthFlags.SecureCookies)
			if err != nil {
				return err
			}

			// Serve our metrics endpoint for prometheus to scrape
			if f.ServerFlags.MetricsAddr != "" {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(f.ServerFlags.MetricsAddr, mux); err != nil { //nolint
						log.WithError(err).Error("metrics server stopped")
					}
				}()
			}

			return serve(ctx, f.ServerFlags.ListenAddr, router)
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}

// setupRouter configures the middleware stack and all routes
func setupRouter(ctrl *controllers.Controllers, secureCookies bool) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second)) // OAuth callbacks can be slow
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.HTTPMetrics(prometheus.DefaultRegisterer))

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "ehs_session",
		Secure:         secureCookies,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize session")
	}
	r.Use(sessionHandler)

	ctrl.Routes(r)
	return r, nil
}

// serve runs the API server until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("serving EHS records API")
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
