// internal/app/features/settings/routes.go
package settings

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the settings routes. Settings are admin-only:
// r.Mount("/settings", settings.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireSignedIn)
		ar.Use(sm.RequireRole("admin"))

		ar.Get("/", h.ServeSettings)
		ar.Post("/", h.HandleSettings)
		ar.Get("/activity", h.ServeActivity)
	})

	return r
}
