// internal/app/features/favorites/routes.go
package favorites

import "github.com/go-chi/chi/v5"

// Routes returns the favorites subrouter, mounted under /api/favorites.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
