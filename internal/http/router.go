package http

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/acuenca/tienda/internal/http/product"
	"github.com/acuenca/tienda/internal/http/purchase"
	"github.com/acuenca/tienda/internal/http/user"
	"github.com/acuenca/tienda/internal/metrics"
)

func New(
	db *sql.DB,
	purchasesV1 *purchase.Handler,
	productsV1 *product.Handler,
	usersV1 *user.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/healthz", healthz(db))
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			usersV1.Routes(r)
		})
	})

	return router
}

// healthz runs a round trip against the database so the check reflects more
// than process liveness.
func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}
