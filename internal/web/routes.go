package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/fotokiosk/kiosk/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	ordersHandler := handlers.NewOrdersHandler(s.db, s.registry, s.dispatcher)
	uploadHandler := handlers.NewUploadHandler(s.config.Paths.TempUploads)
	previewHandler := handlers.NewPreviewHandler(s.renderer)
	formatsHandler := handlers.NewFormatsHandler(s.registry)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Orders
		r.Post("/orders", ordersHandler.Create)
		r.Get("/orders", ordersHandler.List)
		r.Get("/orders/{id}", ordersHandler.Get)
		r.Post("/orders/{id}/pay", ordersHandler.Pay)
		r.Post("/orders/{id}/cancel", ordersHandler.Cancel)
		r.Post("/orders/{id}/validate", ordersHandler.Validate)

		// Photos
		r.Post("/upload", uploadHandler.Upload)
		r.Post("/photos/preview", previewHandler.Preview)

		// Formats
		r.Get("/formats", formatsHandler.List)
	})
}
