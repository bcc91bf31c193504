package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/api/docs"
	"github.com/futig/mock-interview/internal/api/middleware"
	proxyapi "github.com/futig/mock-interview/internal/api/proxy"
	sessionapi "github.com/futig/mock-interview/internal/api/session"
	"github.com/futig/mock-interview/internal/pkg/response"
)

// requestTimeout covers one model round trip plus report rendering.
const requestTimeout = 90 * time.Second

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	proxyHandler *proxyapi.Handler,
	sessionHandler *sessionapi.Handler,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handle)
			proxyapi.RegisterRoutes(r, proxyHandler)
		})
		sessionapi.RegisterRoutes(r, sessionHandler, limiter.Handle)
	})

	return r
}
