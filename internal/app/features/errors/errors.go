// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/system/authz"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Geen toegang",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "Je hebt geen rechten om deze pagina te bekijken.",
		BackURL:    "/",
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Aanmelden vereist",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "Meld je aan om verder te gaan.",
		BackURL:    "/login",
	}

	templates.Render(w, r, "error_unauthorized", data)
}

// NotFound renders a friendly "page not found" page.
// Fallback handler for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Pagina niet gevonden",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "Deze pagina bestaat niet of is verplaatst.",
		BackURL:    "/",
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", data)
}
