// internal/app/features/mosque/routes.go
package mosque

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the mosque info routes. Typically:
// r.Mount("/mosque", mosque.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeInfo)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireSignedIn)
		ar.Use(sm.RequireRole("admin"))
		ar.Get("/edit", h.ServeEdit)
		ar.Post("/edit", h.HandleEdit)
	})

	return r
}
