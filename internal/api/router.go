// Package api exposes the ranking pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/topsis-cli/internal/config"
)

// NewRouter builds the HTTP handler for the ranking server.
func NewRouter(cfg config.ServerConfig, m *Metrics, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	rank := NewRankHandler(m, log)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter))
		r.Use(MaxBodyMiddleware(int64(cfg.MaxBodyMB) << 20))

		r.Post("/rank", rank.Rank)
		r.Post("/rank/csv", rank.RankCSV)
	})

	return r
}
