package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/molweight-api/internal/api"
	apiMiddleware "github.com/phrazzld/molweight-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	formulaHandler := api.NewFormulaHandler(app.compoundService)
	elementHandler := api.NewElementHandler(app.elementStore)
	compoundHandler := api.NewCompoundHandler(app.compoundService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/formulas/analyze", formulaHandler.Analyze)
		r.Get("/elements", elementHandler.ListElements)
		r.Get("/elements/{symbol}", elementHandler.GetElement)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/compounds", compoundHandler.CreateCompound)
			r.Get("/compounds", compoundHandler.ListCompounds)
			r.Get("/compounds/{id}", compoundHandler.GetCompound)
			r.Put("/compounds/{id}", compoundHandler.UpdateCompound)
			r.Delete("/compounds/{id}", compoundHandler.DeleteCompound)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
