package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akagifreeez/trade-values/pkg/ratelimit"
)

// NewRouter wires every API route
func NewRouter(catalogHandler *CatalogHandler, sessionHandler *SessionHandler, limiter ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	health := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}

	// Health check
	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(limiter))

		// The socket outlives any request timeout and cannot be compressed
		r.Get("/sessions/{sid}/ws", sessionHandler.ServeBaskets)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Use(Gzip)

			r.Get("/health", health)

			// Catalog
			r.Get("/items", catalogHandler.ListItems)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Route("/items/{id}", func(r chi.Router) {
				r.Get("/", catalogHandler.GetItem)
				r.Get("/history", catalogHandler.GetHistory)
				r.Get("/chart.png", catalogHandler.GetChart)
				// /items/{name}/{id}: the first segment is only the slug
				r.Get("/{itemID}", catalogHandler.GetItem)
			})

			// Sessions
			r.Post("/sessions", sessionHandler.CreateSession)
			r.Route("/sessions/{sid}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Delete("/", sessionHandler.DeleteSession)

				r.Put("/list/filter", sessionHandler.UpdateListFilter)
				r.Put("/list/tab", sessionHandler.SelectTab)
				r.Put("/list/page", sessionHandler.ChangePage)
				r.Put("/calculator/filter", sessionHandler.UpdateCalculatorFilter)

				r.Get("/baskets", sessionHandler.GetBaskets)
				r.Post("/baskets/{side}", sessionHandler.AddToBasket)
				r.Delete("/baskets/{side}/{key}", sessionHandler.RemoveFromBasket)
			})
		})
	})

	return r
}
