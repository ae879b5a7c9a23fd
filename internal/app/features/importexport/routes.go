// internal/app/features/importexport/routes.go
package importexport

import (
	"github.com/go-chi/chi/v5"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

// Routes mounts the import/export routes. Typically:
// r.Mount("/import-export", importexport.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServePage)
		pr.Get("/volunteers.csv", h.ServeCSV)
		pr.Get("/volunteers.pdf", h.ServePDF)
		pr.Post("/import", h.HandleImport)
	})

	return r
}
