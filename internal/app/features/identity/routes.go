// internal/app/features/identity/routes.go
package identity

import "github.com/go-chi/chi/v5"

// Routes returns the identity subrouter, mounted under /api/identity.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/sync", h.Sync)
	return r
}
