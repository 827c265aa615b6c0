// internal/app/features/files/routes.go
package files

import "github.com/go-chi/chi/v5"

// Routes returns the file API subrouter, mounted under /api/files.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/upload-url", h.UploadURL)
	r.Put("/blob/*", h.PutBlob)
	r.Get("/blob/*", h.GetBlob)
	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Delete("/", h.Delete)
		r.Post("/restore", h.Restore)
		r.Post("/favorite", h.Favorite)
		r.Get("/download", h.Download)
	})

	return r
}
