// internal/app/features/activity/routes.go
package activity

import "github.com/go-chi/chi/v5"

// Routes returns the audit feed subrouter, mounted under /api/audit.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Feed)
	return r
}
