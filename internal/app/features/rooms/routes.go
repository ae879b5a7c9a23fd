// internal/app/features/rooms/routes.go
package rooms

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the room routes. Room management is admin-only:
// r.Mount("/rooms", rooms.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireSignedIn)
		ar.Use(sm.RequireRole("admin"))

		ar.Get("/", h.ServeList)
		ar.Get("/new", h.ServeNew)
		ar.Post("/new", h.HandleCreate)
		ar.Get("/{id}/edit", h.ServeEdit)
		ar.Post("/{id}/edit", h.HandleEdit)
		ar.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
