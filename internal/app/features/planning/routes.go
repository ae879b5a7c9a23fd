// internal/app/features/planning/routes.go
package planning

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the planning routes. Typically:
// r.Mount("/planning", planning.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
