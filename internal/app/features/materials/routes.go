// internal/app/features/materials/routes.go
package materials

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the material routes. Typically:
// r.Mount("/materials", materials.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/assign", h.HandleAssign)
		pr.Post("/{id}/return", h.HandleReturn)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireSignedIn)
		ar.Use(sm.RequireRole("admin"))

		ar.Get("/manage", h.ServeManage)
		ar.Post("/manage", h.HandleManageCreate)
		ar.Post("/manage/{id}/delete", h.HandleManageDelete)
	})

	return r
}
