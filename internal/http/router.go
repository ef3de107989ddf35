package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/micro-ha/cudy-monitor/internal/http/handlers"
)

// NewRouter builds full HTTP routing tree for backend API and static frontend.
func NewRouter(api *handlers.API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverJSON)
	r.Use(middleware.Timeout(45 * time.Second))
	r.Use(StripIngressPrefix)
	r.Use(RequestLogger(api))

	r.Get("/healthz", api.Health)
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Get("/snapshot", api.GetSnapshot)
		apiRouter.Get("/devices", api.ListDevices)
		apiRouter.Get("/devices/{key}", func(w http.ResponseWriter, r *http.Request) {
			api.GetDevice(w, r, chi.URLParam(r, "key"))
		})
		apiRouter.Post("/refresh", api.Refresh)
		apiRouter.Post("/validate", api.Validate)
		apiRouter.Post("/reboot", api.Reboot)
	})

	r.Get("/*", api.Static)
	r.Get("/", api.Static)
	return r
}

// RunServer starts and gracefully stops HTTP server with context cancellation.
func RunServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
